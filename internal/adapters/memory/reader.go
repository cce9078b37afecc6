package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Reader implements ports.GrammarReader using an in-memory map of path to grammar text.
// Set can be called while readers are active, which makes it handy for reload tests.
type Reader struct {
	mu       sync.RWMutex
	grammars map[string]string
	reads    int
}

// NewReader creates a new Reader with the provided grammars.
func NewReader(grammars map[string]string) *Reader {
	data := make(map[string]string, len(grammars))
	for k, v := range grammars {
		data[k] = v
	}
	return &Reader{grammars: data}
}

// ReadGrammar returns the grammar text registered under path.
func (r *Reader) ReadGrammar(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++

	text, ok := r.grammars[path]
	if !ok {
		return "", fmt.Errorf("grammar not found: %s", path)
	}
	return text, nil
}

// Set registers or replaces the grammar text for path.
func (r *Reader) Set(path, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grammars[path] = text
}

// Paths returns all registered paths.
func (r *Reader) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.grammars))
	for k := range r.grammars {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys
}

// Reads returns how many times ReadGrammar was called.
func (r *Reader) Reads() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reads
}
