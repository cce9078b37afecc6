package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/arbor/internal/compiler"
	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/domain"
)

// Builder manages the grammar construction.
// Errors are collected and reported together by Build.
type Builder struct {
	angle float64
	step  float64
	axiom string
	rules []*RuleBuilder
	errs  []error
}

// New creates a new grammar builder carrying the package defaults.
func New() *Builder {
	return &Builder{
		angle: domain.DefaultAngle,
		step:  domain.DefaultStep,
	}
}

// Angle sets the default turn angle in degrees.
func (b *Builder) Angle(degrees float64) *Builder {
	b.angle = degrees
	return b
}

// Step sets the default forward step length.
func (b *Builder) Step(length float64) *Builder {
	b.step = length
	return b
}

// Axiom sets the start sequence, written in grammar notation (e.g. "F(2)[+F]").
func (b *Builder) Axiom(sequence string) *Builder {
	b.axiom = sequence
	return b
}

// Rule starts a production for predecessor. Calling Rule again with the same predecessor
// adds a stochastic alternative.
func (b *Builder) Rule(predecessor rune) *RuleBuilder {
	rb := &RuleBuilder{pred: predecessor, weight: domain.DefaultWeight, builder: b}
	b.rules = append(b.rules, rb)
	return rb
}

// Build compiles the grammar into a validated Program.
func (b *Builder) Build() (*domain.Program, error) {
	errs := append([]error(nil), b.errs...)

	prog := domain.NewProgram()
	prog.DefaultAngle = b.angle
	prog.DefaultStep = b.step

	axiom, err := compiler.ParseSequence(b.axiom)
	if err != nil {
		errs = append(errs, fmt.Errorf("axiom: %w", err))
	}
	prog.Axiom = axiom

	for _, rb := range b.rules {
		if rb.successor == nil {
			errs = append(errs, fmt.Errorf("rule %q: missing successor", rb.pred))
			continue
		}
		if sym, err := compiler.ParseSequence(string(rb.pred)); err != nil || len(sym) != 1 || compiler.IsReservedPredecessor(rb.pred) {
			errs = append(errs, &domain.GrammarSyntaxError{
				Text:   string(rb.pred),
				Reason: fmt.Sprintf("predecessor %q is a reserved character", rb.pred),
			})
			continue
		}
		succ, err := compiler.ParseSequence(*rb.successor)
		if err != nil {
			errs = append(errs, fmt.Errorf("rule %q: %w", rb.pred, err))
			continue
		}
		prog.Rules[rb.pred] = append(prog.Rules[rb.pred], domain.Production{
			Weight:    rb.weight,
			Successor: succ,
		})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := runtime.ValidateProgram(prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// MustBuild is Build for grammars known to be valid at compile time. It panics on error.
func (b *Builder) MustBuild() *domain.Program {
	prog, err := b.Build()
	if err != nil {
		panic(err)
	}
	return prog
}

// Text renders the grammar in the text format accepted by arbor.Engine.LoadProgram.
func (b *Builder) Text() (string, error) {
	prog, err := b.Build()
	if err != nil {
		return "", err
	}
	return compiler.Format(prog), nil
}
