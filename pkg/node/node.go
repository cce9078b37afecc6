package node

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/cespare/xxhash/v2"
)

// Node turns Attributes into branches, recomputing only what changed.
// A Node is not safe for concurrent use.
type Node struct {
	reader ports.GrammarReader
	cache  ports.BranchCache
	logger *slog.Logger
	seed   *int64
	rnd    *rand.Rand
	engine *arbor.Engine

	hash     uint64
	loaded   bool
	memo     Memo
	computed int
}

// Option configures a Node.
type Option func(*Node)

// WithCache shares computed geometry through cache.
// Stochastic grammars are only cached when a seed is set.
func WithCache(cache ports.BranchCache) Option {
	return func(n *Node) {
		n.cache = cache
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Node) {
		n.logger = logger
	}
}

// WithSeed reseeds the random source before every computation so equal inputs always give
// equal geometry, stochastic grammars included.
func WithSeed(seed int64) Option {
	return func(n *Node) {
		n.seed = &seed
	}
}

// New creates a node reading grammars through reader.
func New(reader ports.GrammarReader, opts ...Option) *Node {
	n := &Node{reader: reader}
	for _, opt := range opts {
		opt(n)
	}
	if n.logger == nil {
		n.logger = slog.New(slog.DiscardHandler)
	}

	engineOpts := []arbor.Option{arbor.WithLogger(n.logger)}
	if n.seed != nil {
		n.rnd = rand.New(rand.NewSource(*n.seed))
		engineOpts = append(engineOpts, arbor.WithRandSource(n.rnd))
	}
	n.engine = arbor.New(engineOpts...)
	return n
}

// Compute returns the branches for attrs.
//
// An empty grammar path yields no geometry and no error. The grammar file is read on every
// call; the engine reloads only when its content hash changed. When neither the program nor
// the numeric inputs changed, the previous result is returned without rewriting.
// The returned slice must not be modified.
func (n *Node) Compute(ctx context.Context, attrs Attributes) ([]domain.Branch, error) {
	if attrs.Grammar == "" {
		return nil, nil
	}

	text, err := n.reader.ReadGrammar(ctx, attrs.Grammar)
	if err != nil {
		return nil, fmt.Errorf("could not open grammar file %s: %w", attrs.Grammar, err)
	}

	hash := xxhash.Sum64String(text)
	if !n.loaded || hash != n.hash {
		if err := n.engine.LoadProgram(text); err != nil {
			return nil, fmt.Errorf("grammar %s: %w", attrs.Grammar, err)
		}
		n.hash = hash
		n.loaded = true
		n.logger.Debug("grammar reloaded", "path", attrs.Grammar, "hash", hash)
	}

	key := MemoKey{
		Hash:       hash,
		Generation: n.engine.Generation(),
		Iterations: attrs.Iterations(),
		Angle:      attrs.Angle,
		Step:       attrs.StepSize,
	}
	if branches, ok := n.memo.Lookup(key); ok {
		return branches, nil
	}

	cacheKey, shared := n.sharedKey(key)
	if shared {
		branches, err := n.cache.Get(ctx, cacheKey)
		switch {
		case err == nil:
			n.memo.Store(key, branches)
			return branches, nil
		case !errors.Is(err, domain.ErrCacheMiss):
			n.logger.Warn("branch cache read failed", "key", cacheKey, "err", err)
		}
	}

	n.engine.SetDefaultAngle(key.Angle)
	n.engine.SetDefaultStep(key.Step)
	if n.rnd != nil {
		n.rnd.Seed(*n.seed)
	}

	var branches []domain.Branch
	if err := n.engine.Process(key.Iterations, &branches); err != nil {
		return nil, fmt.Errorf("grammar %s: %w", attrs.Grammar, err)
	}
	n.computed++
	n.memo.Store(key, branches)

	if shared {
		if err := n.cache.Put(ctx, cacheKey, branches); err != nil {
			n.logger.Warn("branch cache write failed", "key", cacheKey, "err", err)
		}
	}
	return branches, nil
}

// Computations returns how many times the node actually rewrote and interpreted a grammar.
func (n *Node) Computations() int {
	return n.computed
}

// Invalidate forgets the memoized result so the next Compute rewrites again.
func (n *Node) Invalidate() {
	n.memo.Reset()
}

func (n *Node) sharedKey(key MemoKey) (string, bool) {
	if n.cache == nil {
		return "", false
	}
	if n.seed == nil && n.engine.Program().IsStochastic() {
		return "", false
	}
	var seed *int64
	if n.engine.Program().IsStochastic() {
		seed = n.seed
	}
	return CacheKey(key.Hash, key.Iterations, key.Angle, key.Step, seed), true
}
