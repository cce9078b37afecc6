package node

import (
	"strconv"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// MemoKey identifies one computation. Generation changes on every engine load, so a key
// never survives a reload even when the grammar text is identical.
type MemoKey struct {
	Hash       uint64
	Generation uint64
	Iterations uint
	Angle      float64
	Step       float64
}

// Memo remembers the last computed geometry. It is not safe for concurrent use.
type Memo struct {
	key      MemoKey
	branches []domain.Branch
	valid    bool
}

// Lookup returns the memoized branches if key matches the last stored computation.
func (m *Memo) Lookup(key MemoKey) ([]domain.Branch, bool) {
	if !m.valid || m.key != key {
		return nil, false
	}
	return m.branches, true
}

// Store replaces the memoized computation.
func (m *Memo) Store(key MemoKey, branches []domain.Branch) {
	m.key = key
	m.branches = branches
	m.valid = true
}

// Reset forgets the memoized computation.
func (m *Memo) Reset() {
	*m = Memo{}
}

// CacheKey builds the shared cache key for a computation. The load generation is local to
// one engine and is left out; seed is nil when the result does not depend on randomness.
func CacheKey(hash uint64, iterations uint, angle, step float64, seed *int64) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(hash, 16))
	b.WriteString("-i")
	b.WriteString(strconv.FormatUint(uint64(iterations), 10))
	b.WriteString("-a")
	b.WriteString(strconv.FormatFloat(angle, 'g', -1, 64))
	b.WriteString("-s")
	b.WriteString(strconv.FormatFloat(step, 'g', -1, 64))
	if seed != nil {
		b.WriteString("-r")
		b.WriteString(strconv.FormatInt(*seed, 10))
	}
	return b.String()
}
