package compiler

import (
	"strconv"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// Format renders a program as canonical grammar text. Predecessors are sorted and
// alternatives keep their order, so Parse(Format(p)) reproduces p.
func Format(p *domain.Program) string {
	var sb strings.Builder
	sb.WriteString("step: " + formatFloat(p.DefaultStep) + "\n")
	sb.WriteString("angle: " + formatFloat(p.DefaultAngle) + "\n")
	sb.WriteString("axiom: " + domain.SequenceString(p.Axiom) + "\n")

	for _, pred := range p.Predecessors() {
		for _, prod := range p.Rules[pred] {
			sb.WriteString(string(pred) + " -> " + domain.SequenceString(prod.Successor))
			if prod.Weight != domain.DefaultWeight {
				sb.WriteString(" : " + formatFloat(prod.Weight))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
