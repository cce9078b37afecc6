package compiler

import (
	"fmt"
	"math"

	"github.com/aretw0/arbor/pkg/domain"
)

// programBuilder accumulates statements and enforces the grammar invariants shared by the
// text and YAML front-ends.
type programBuilder struct {
	prog     *domain.Program
	stepSet  bool
	angleSet bool
	axiomSet bool
}

func newProgramBuilder() *programBuilder {
	return &programBuilder{prog: domain.NewProgram()}
}

func (b *programBuilder) setStep(text string) string {
	if b.stepSet {
		return "duplicate step statement"
	}
	v, reason := parseNumber(text)
	if reason != "" {
		return "step " + reason
	}
	if v <= 0 {
		return "step must be positive"
	}
	b.prog.DefaultStep = v
	b.stepSet = true
	return ""
}

func (b *programBuilder) setAngle(text string) string {
	if b.angleSet {
		return "duplicate angle statement"
	}
	v, reason := parseNumber(text)
	if reason != "" {
		return "angle " + reason
	}
	b.prog.DefaultAngle = v
	b.angleSet = true
	return ""
}

func (b *programBuilder) setAxiom(text string) string {
	if b.axiomSet {
		return "duplicate axiom statement"
	}
	seq, reason := scanSequence(text)
	if reason != "" {
		return "axiom: " + reason
	}
	if len(seq) == 0 {
		return "axiom is empty"
	}
	b.prog.Axiom = seq
	b.axiomSet = true
	return ""
}

func (b *programBuilder) addRule(pred, successor string, weight float64) string {
	runes := []rune(pred)
	switch {
	case len(runes) == 0:
		return "rule has no predecessor symbol"
	case len(runes) > 1:
		return fmt.Sprintf("predecessor %q must be a single symbol", pred)
	case IsReservedPredecessor(runes[0]):
		return fmt.Sprintf("predecessor %q is a reserved character", pred)
	}
	if !(weight > 0) || math.IsInf(weight, 1) {
		return "weight must be a positive finite number"
	}
	seq, reason := scanSequence(successor)
	if reason != "" {
		return "successor: " + reason
	}
	b.prog.Rules[runes[0]] = append(b.prog.Rules[runes[0]], domain.Production{
		Weight:    weight,
		Successor: seq,
	})
	return ""
}

func (b *programBuilder) build() (*domain.Program, error) {
	if !b.axiomSet {
		return nil, &domain.GrammarSyntaxError{Reason: "missing axiom statement"}
	}
	return b.prog, nil
}
