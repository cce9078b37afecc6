package runtime

import (
	"fmt"
	"math"

	"github.com/aretw0/arbor/internal/compiler"
	"github.com/aretw0/arbor/pkg/domain"
)

// ValidateProgram checks a program's invariants: a non-empty axiom, valid defaults, usable
// predecessors, positive weights and valid symbol parameters.
func ValidateProgram(prog *domain.Program) error {
	if prog == nil {
		return domain.ErrNoProgram
	}
	if len(prog.Axiom) == 0 {
		return &domain.GrammarSyntaxError{Reason: "axiom is empty"}
	}
	if err := ValidateDefaults(prog.DefaultAngle, prog.DefaultStep); err != nil {
		return err
	}
	if err := validateSequence(prog.Axiom); err != nil {
		return fmt.Errorf("axiom: %w", err)
	}
	for pred, prods := range prog.Rules {
		if compiler.IsReservedPredecessor(pred) {
			return &domain.GrammarSyntaxError{Reason: fmt.Sprintf("predecessor %q is a reserved character", pred)}
		}
		if len(prods) == 0 {
			return &domain.GrammarSyntaxError{Reason: fmt.Sprintf("predecessor %q has no productions", pred)}
		}
		for _, prod := range prods {
			if !(prod.Weight > 0) || math.IsInf(prod.Weight, 1) {
				return &domain.GrammarSyntaxError{Reason: fmt.Sprintf("predecessor %q has a non-positive weight", pred)}
			}
			if err := validateSequence(prod.Successor); err != nil {
				return fmt.Errorf("rule %q: %w", pred, err)
			}
		}
	}
	return nil
}

func validateSequence(seq []domain.Symbol) error {
	for _, sym := range seq {
		if err := ValidateSymbol(sym); err != nil {
			return err
		}
	}
	return nil
}
