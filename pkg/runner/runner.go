package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/node"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/cespare/xxhash/v2"
)

// Runner implements ports.Generator. It is safe for concurrent use.
type Runner struct {
	registry      *registry.Registry
	cache         ports.BranchCache
	locker        ports.DistributedLocker
	lockTTL       time.Duration
	maxIterations uint
	logger        *slog.Logger
	hooks         domain.LifecycleHooks

	mu    sync.Mutex
	locks map[string]*lockEntry
}

// New creates a Runner. Without options it serves inline grammars only, has no cache and
// caps iterations at domain.PracticalIterations.
func New(opts ...Option) *Runner {
	r := &Runner{
		maxIterations: domain.PracticalIterations,
		lockTTL:       DefaultLockTTL,
		locks:         make(map[string]*lockEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	if r.registry == nil {
		r.registry = registry.NewRegistry()
	}
	return r
}

// MaxIterations returns the configured iteration cap.
func (r *Runner) MaxIterations() uint {
	return r.maxIterations
}

// Presets lists the names of the registered presets.
func (r *Runner) Presets() []string {
	return r.registry.Names()
}

// Registry returns the preset catalog.
func (r *Runner) Registry() *registry.Registry {
	return r.registry
}

// Generate expands and interprets the requested grammar.
func (r *Runner) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResult, error) {
	eng, source, err := r.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	key, shared := r.cacheKey(eng, source, req)
	if !shared {
		return r.compute(ctx, eng, req.Iterations)
	}

	var res *domain.GenerateResult
	err = r.withLock(ctx, key, func(ctx context.Context) error {
		branches, err := r.cache.Get(ctx, key)
		if err == nil {
			res = result(eng, branches, 0)
			res.Cached = true
			return nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			r.logger.Warn("branch cache read failed", "key", key, "err", err)
		}

		res, err = r.compute(ctx, eng, req.Iterations)
		if err != nil {
			return err
		}
		if err := r.cache.Put(ctx, key, res.Branches); err != nil {
			r.logger.Warn("branch cache write failed", "key", key, "err", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Expand rewrites the requested grammar without interpreting it.
func (r *Runner) Expand(ctx context.Context, req domain.GenerateRequest) (*domain.ExpandResult, error) {
	eng, _, err := r.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	symbols, err := eng.Expand(req.Iterations)
	if err != nil {
		return nil, err
	}
	return &domain.ExpandResult{
		Sequence: domain.SequenceString(symbols),
		Symbols:  len(symbols),
		Draws:    domain.CountKind(symbols, domain.KindDraw),
	}, nil
}

// prepare validates the request and returns an engine with the grammar loaded and the
// overrides applied, plus the grammar source the engine was loaded from.
func (r *Runner) prepare(ctx context.Context, req domain.GenerateRequest) (*arbor.Engine, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if req.Iterations > r.maxIterations {
		return nil, "", &domain.IterationLimitError{Requested: req.Iterations, Max: r.maxIterations}
	}

	source, err := r.source(req)
	if err != nil {
		return nil, "", err
	}

	opts := []arbor.Option{
		arbor.WithLogger(r.logger),
		arbor.WithLifecycleHooks(r.hooks),
	}
	if req.Seed != nil {
		opts = append(opts, arbor.WithSeed(*req.Seed))
	}
	eng := arbor.New(opts...)

	switch req.Format {
	case domain.FormatYAML:
		err = eng.LoadProgramYAML([]byte(source))
	case "", domain.FormatText:
		err = eng.LoadProgram(source)
	default:
		err = fmt.Errorf("%w: unknown grammar format %q", domain.ErrInvalidRequest, req.Format)
	}
	if err != nil {
		return nil, "", err
	}

	if req.Angle != nil {
		eng.SetDefaultAngle(*req.Angle)
	}
	if req.Step != nil {
		eng.SetDefaultStep(*req.Step)
	}
	return eng, source, nil
}

func (r *Runner) source(req domain.GenerateRequest) (string, error) {
	switch {
	case req.Grammar != "" && req.Preset != "":
		return "", fmt.Errorf("%w: grammar and preset are mutually exclusive", domain.ErrInvalidRequest)
	case req.Preset != "":
		if req.Format != "" && req.Format != domain.FormatText {
			return "", fmt.Errorf("%w: presets are text grammars", domain.ErrInvalidRequest)
		}
		p, err := r.registry.Get(req.Preset)
		if err != nil {
			return "", err
		}
		return p.Grammar, nil
	case req.Grammar != "":
		return req.Grammar, nil
	default:
		return "", fmt.Errorf("%w: grammar or preset is required", domain.ErrInvalidRequest)
	}
}

// cacheKey reports whether the request may use the shared cache, and under which key.
// Unseeded stochastic grammars give a different tree on every call and are never cached.
func (r *Runner) cacheKey(eng *arbor.Engine, source string, req domain.GenerateRequest) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	var seed *int64
	if eng.Program().IsStochastic() {
		if req.Seed == nil {
			return "", false
		}
		seed = req.Seed
	}

	h := xxhash.New()
	_, _ = h.WriteString(string(req.Format))
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(source)
	return node.CacheKey(h.Sum64(), req.Iterations, eng.DefaultAngle(), eng.DefaultStep(), seed), true
}

func (r *Runner) compute(ctx context.Context, eng *arbor.Engine, iterations uint) (*domain.GenerateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	symbols, err := eng.Expand(iterations)
	if err != nil {
		return nil, err
	}
	branches, err := eng.Interpret(symbols)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("generated", "iterations", iterations, "symbols", len(symbols), "branches", len(branches))
	return result(eng, branches, len(symbols)), nil
}

func result(eng *arbor.Engine, branches []domain.Branch, symbols int) *domain.GenerateResult {
	if branches == nil {
		branches = []domain.Branch{}
	}
	box := domain.Bounds(branches)
	return &domain.GenerateResult{
		Branches: branches,
		Symbols:  symbols,
		Min:      box.Min,
		Max:      box.Max,
		Angle:    eng.DefaultAngle(),
		Step:     eng.DefaultStep(),
	}
}
