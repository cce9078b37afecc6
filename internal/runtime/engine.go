package runtime

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/arbor/internal/compiler"
	"github.com/aretw0/arbor/pkg/domain"
)

// Engine owns one grammar program plus the mutable default angle and step.
// It is synchronous and not safe for concurrent use; callers serialize access or keep one
// engine per goroutine.
type Engine struct {
	parser     *compiler.Parser
	program    *domain.Program
	angle      float64
	step       float64
	generation uint64
	rand       RandSource
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
}

// EngineOption configures the runtime engine.
type EngineOption func(*Engine)

// WithRandSource sets the source used for stochastic productions.
func WithRandSource(rnd RandSource) EngineOption {
	return func(e *Engine) {
		if rnd != nil {
			e.rand = rnd
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine without a program.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		parser: compiler.NewParser(),
		angle:  domain.DefaultAngle,
		step:   domain.DefaultStep,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rand == nil {
		e.rand = &lazySource{}
	}
	return e
}

// LoadProgram parses grammar text and replaces the current program wholesale.
// On error the previous program, defaults and generation are left untouched.
func (e *Engine) LoadProgram(text string) error {
	prog, err := e.parser.Parse(text)
	if err == nil {
		err = ValidateProgram(prog)
	}
	if err != nil {
		e.logger.Debug("grammar rejected", "err", err)
		return err
	}
	e.install(prog)
	return nil
}

// LoadProgramYAML is LoadProgram for YAML grammar documents.
func (e *Engine) LoadProgramYAML(data []byte) error {
	prog, err := e.parser.ParseYAML(data)
	if err == nil {
		err = ValidateProgram(prog)
	}
	if err != nil {
		e.logger.Debug("grammar rejected", "err", err)
		return err
	}
	e.install(prog)
	return nil
}

// SetProgram installs an already built program after checking its invariants.
func (e *Engine) SetProgram(prog *domain.Program) error {
	if err := ValidateProgram(prog); err != nil {
		return err
	}
	e.install(prog)
	return nil
}

func (e *Engine) install(prog *domain.Program) {
	e.program = prog
	e.angle = prog.DefaultAngle
	e.step = prog.DefaultStep
	e.generation++

	e.logger.Debug("grammar loaded",
		"generation", e.generation,
		"rules", len(prog.Rules),
		"axiom", domain.SequenceString(prog.Axiom),
	)
	if e.hooks.OnLoad != nil {
		e.hooks.OnLoad(&domain.LoadEvent{
			EventBase:    domain.EventBase{Timestamp: time.Now(), Type: domain.EventLoad},
			Generation:   e.generation,
			Rules:        len(prog.Rules),
			AxiomLength:  len(prog.Axiom),
			IsStochastic: prog.IsStochastic(),
		})
	}
}

// Program returns the loaded program, or nil.
func (e *Engine) Program() *domain.Program {
	return e.program
}

// Generation increases on every successful load, identical text included.
func (e *Engine) Generation() uint64 {
	return e.generation
}

// SetDefaultAngle overrides the turn angle (degrees) without reparsing.
func (e *Engine) SetDefaultAngle(degrees float64) {
	e.angle = degrees
}

// SetDefaultStep overrides the step length without reparsing.
func (e *Engine) SetDefaultStep(length float64) {
	e.step = length
}

// DefaultAngle returns the current turn angle.
func (e *Engine) DefaultAngle() float64 {
	return e.angle
}

// DefaultStep returns the current step length.
func (e *Engine) DefaultStep() float64 {
	return e.step
}

// Expand rewrites the loaded program.
func (e *Engine) Expand(iterations uint) ([]domain.Symbol, error) {
	if e.program == nil {
		return nil, domain.ErrNoProgram
	}

	start := time.Now()
	symbols := Expand(e.program, iterations, e.rand)

	if e.hooks.OnExpand != nil {
		e.hooks.OnExpand(&domain.ExpandEvent{
			EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventExpand},
			Iterations: iterations,
			Symbols:    len(symbols),
			Duration:   time.Since(start),
		})
	}
	return symbols, nil
}

// Interpret walks symbols with the current default angle and step.
func (e *Engine) Interpret(symbols []domain.Symbol) ([]domain.Branch, error) {
	start := time.Now()
	branches, err := Interpret(symbols, e.angle, e.step)

	if e.hooks.OnInterpret != nil {
		e.hooks.OnInterpret(&domain.InterpretEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventInterpret},
			Branches:  len(branches),
			Angle:     e.angle,
			Step:      e.step,
			Duration:  time.Since(start),
			IsError:   err != nil,
		})
	}
	return branches, err
}

// Process expands the program and interprets the result, appending the branches to out.
// out is never cleared; callers reset it when they want a fresh list. On error out is
// left as it was.
func (e *Engine) Process(iterations uint, out *[]domain.Branch) error {
	symbols, err := e.Expand(iterations)
	if err != nil {
		return err
	}
	branches, err := e.Interpret(symbols)
	if err != nil {
		e.logger.Debug("interpretation failed", "iterations", iterations, "err", err)
		return err
	}

	e.logger.Debug("processed",
		"iterations", iterations,
		"symbols", len(symbols),
		"branches", len(branches),
	)
	*out = append(*out, branches...)
	return nil
}
