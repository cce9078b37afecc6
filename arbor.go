package arbor

import (
	"io"
	"log/slog"

	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/domain"
)

// RandSource supplies uniform numbers in [0, 1) for stochastic productions.
type RandSource = runtime.RandSource

// Engine is the high-level entry point for the arbor library.
// It wraps the internal runtime and provides a simplified API for consumers.
//
// An Engine is synchronous and not safe for concurrent use. Serialize access or keep one
// Engine per goroutine.
type Engine struct {
	runtime *runtime.Engine
	rand    RandSource
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	Name    string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRandSource injects the random source used for stochastic productions.
func WithRandSource(rnd RandSource) Option {
	return func(e *Engine) {
		e.rand = rnd
	}
}

// WithSeed makes stochastic expansion reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rand = runtime.NewRandSource(seed)
	}
}

// WithName labels the engine's log records (e.g. with the grammar file name).
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// New initializes an Engine with no program loaded.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("grammar", eng.Name)
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithRandSource(eng.rand),
	)
	return eng
}

// LoadProgram parses grammar text and replaces the current program.
// A failing load returns a *domain.GrammarSyntaxError and keeps the previous program.
func (e *Engine) LoadProgram(text string) error {
	return e.runtime.LoadProgram(text)
}

// LoadProgramYAML parses a YAML grammar document and replaces the current program.
func (e *Engine) LoadProgramYAML(data []byte) error {
	return e.runtime.LoadProgramYAML(data)
}

// SetProgram installs a program built in Go (see pkg/dsl).
func (e *Engine) SetProgram(prog *domain.Program) error {
	return e.runtime.SetProgram(prog)
}

// SetDefaultAngle changes the turn angle (degrees) without reparsing.
func (e *Engine) SetDefaultAngle(degrees float64) {
	e.runtime.SetDefaultAngle(degrees)
}

// SetDefaultStep changes the forward step length without reparsing.
func (e *Engine) SetDefaultStep(length float64) {
	e.runtime.SetDefaultStep(length)
}

// DefaultAngle returns the angle used by the next Process call.
func (e *Engine) DefaultAngle() float64 {
	return e.runtime.DefaultAngle()
}

// DefaultStep returns the step used by the next Process call.
func (e *Engine) DefaultStep() float64 {
	return e.runtime.DefaultStep()
}

// Program returns the loaded program, or nil before the first successful load.
func (e *Engine) Program() *domain.Program {
	return e.runtime.Program()
}

// Generation identifies the loaded program. It changes on every successful load, even
// when the text is identical, so caches keyed on it invalidate conservatively.
func (e *Engine) Generation() uint64 {
	return e.runtime.Generation()
}

// Expand rewrites the axiom the given number of times.
// Output grows exponentially; bound iterations before calling (see domain.PracticalIterations).
func (e *Engine) Expand(iterations uint) ([]domain.Symbol, error) {
	return e.runtime.Expand(iterations)
}

// Interpret walks symbols with the current defaults and returns the drawn branches.
func (e *Engine) Interpret(symbols []domain.Symbol) ([]domain.Branch, error) {
	return e.runtime.Interpret(symbols)
}

// Process expands and interprets, appending the branches to out. out is not cleared
// first; reset it when a fresh list is wanted.
func (e *Engine) Process(iterations uint, out *[]domain.Branch) error {
	return e.runtime.Process(iterations, out)
}
