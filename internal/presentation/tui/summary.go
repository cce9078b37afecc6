package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/internal/compiler"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/domain"
)

// Stats describes one expansion of a program.
type Stats struct {
	Iterations uint
	Symbols    int
	Branches   int
	Bounds     [2][3]float64
}

// Summary renders a program (and optionally its expansion statistics) as markdown.
func Summary(name string, p *domain.Program, stats *Stats) string {
	var sb strings.Builder

	if name == "" {
		name = "grammar"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	fmt.Fprintf(&sb, "- **Axiom:** `%s`\n", domain.SequenceString(p.Axiom))
	fmt.Fprintf(&sb, "- **Angle:** %g°\n", p.DefaultAngle)
	fmt.Fprintf(&sb, "- **Step:** %g\n", p.DefaultStep)
	if p.IsStochastic() {
		sb.WriteString("- **Stochastic:** yes\n")
	}

	sb.WriteString("\n## Rules\n\n")
	if len(p.Rules) == 0 {
		sb.WriteString("_No rules: the axiom is drawn as is._\n")
	} else {
		sb.WriteString("| Predecessor | Successor | Probability |\n")
		sb.WriteString("|---|---|---|\n")
		for _, pred := range p.Predecessors() {
			total := p.TotalWeight(pred)
			for _, prod := range p.Rules[pred] {
				fmt.Fprintf(&sb, "| `%c` | `%s` | %.2f |\n",
					pred, escapeCell(domain.SequenceString(prod.Successor)), prod.Weight/total)
			}
		}
	}

	reach := graph.Reachable(p)
	var dead []string
	for _, pred := range p.Predecessors() {
		if !reach[pred] {
			dead = append(dead, fmt.Sprintf("`%c`", pred))
		}
	}
	if len(dead) > 0 {
		fmt.Fprintf(&sb, "\n> Unreachable from the axiom: %s\n", strings.Join(dead, ", "))
	}

	if stats != nil {
		sb.WriteString("\n## Expansion\n\n")
		fmt.Fprintf(&sb, "- **Iterations:** %d\n", stats.Iterations)
		fmt.Fprintf(&sb, "- **Symbols:** %d\n", stats.Symbols)
		fmt.Fprintf(&sb, "- **Branches:** %d\n", stats.Branches)
		fmt.Fprintf(&sb, "- **Bounds:** (%.3g, %.3g, %.3g) to (%.3g, %.3g, %.3g)\n",
			stats.Bounds[0][0], stats.Bounds[0][1], stats.Bounds[0][2],
			stats.Bounds[1][0], stats.Bounds[1][1], stats.Bounds[1][2])
	}

	sb.WriteString("\n## Source\n\n```\n")
	sb.WriteString(compiler.Format(p))
	sb.WriteString("```\n")
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
