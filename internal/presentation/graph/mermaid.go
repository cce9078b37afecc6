package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of the rule dependencies of a program.
// It applies semantic styling:
// - Axiom: ((Circle))
// - Predecessor with rules: [Rectangle]
// - Terminal draw/move symbol without rules: [[Subroutine]]
// Stochastic alternatives label their edges with the selection probability.
// Predecessors the axiom can never reach are styled as unreachable.
func GenerateMermaid(p *domain.Program) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    axiom((\"axiom\"))\n")

	declared := make(map[rune]bool)
	var declare func(r rune)
	declare = func(r rune) {
		if declared[r] {
			return
		}
		declared[r] = true
		opener, closer := "[", "]"
		if _, ok := p.Rules[r]; !ok {
			opener, closer = "[[", "]]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", nodeID(r), opener, label(r), closer))
	}

	for _, pred := range p.Predecessors() {
		declare(pred)
	}

	for _, r := range targets(p, p.Axiom) {
		declare(r)
		sb.WriteString(fmt.Sprintf("    axiom --> %s\n", nodeID(r)))
	}

	for _, pred := range p.Predecessors() {
		prods := p.Rules[pred]
		total := p.TotalWeight(pred)
		for _, prod := range prods {
			arrow := "-->"
			if len(prods) > 1 {
				prob := strconv.FormatFloat(prod.Weight/total, 'f', 2, 64)
				arrow = fmt.Sprintf("-- \"p=%s\" -->", prob)
			}
			for _, r := range targets(p, prod.Successor) {
				declare(r)
				sb.WriteString(fmt.Sprintf("    %s %s %s\n", nodeID(pred), arrow, nodeID(r)))
			}
		}
	}

	reach := Reachable(p)
	var unreachable []string
	for _, pred := range p.Predecessors() {
		if !reach[pred] {
			unreachable = append(unreachable, nodeID(pred))
		}
	}
	if len(unreachable) > 0 {
		sb.WriteString("\n    %% Unreachable rules\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme
		sb.WriteString("    classDef unreachable fill:#eeeeee,stroke:#9e9e9e,stroke-dasharray:4,color:#000;\n")
		for _, id := range unreachable {
			sb.WriteString(fmt.Sprintf("    class %s unreachable;\n", id))
		}
	}

	return sb.String()
}

// Reachable reports which symbols can appear in some expansion of the axiom.
func Reachable(p *domain.Program) map[rune]bool {
	seen := make(map[rune]bool)
	queue := make([]rune, 0, len(p.Axiom))
	for _, sym := range p.Axiom {
		if !seen[sym.Char] {
			seen[sym.Char] = true
			queue = append(queue, sym.Char)
		}
	}
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		for _, prod := range p.Rules[r] {
			for _, sym := range prod.Successor {
				if !seen[sym.Char] {
					seen[sym.Char] = true
					queue = append(queue, sym.Char)
				}
			}
		}
	}
	return seen
}

// targets lists, once each and in order of appearance, the symbols of seq worth drawing as
// graph nodes: anything with rules, plus the draw and move symbols.
func targets(p *domain.Program, seq []domain.Symbol) []rune {
	var out []rune
	seen := make(map[rune]bool)
	for _, sym := range seq {
		if seen[sym.Char] {
			continue
		}
		_, rewritable := p.Rules[sym.Char]
		kind := sym.Kind()
		if rewritable || kind == domain.KindDraw || kind == domain.KindMove {
			seen[sym.Char] = true
			out = append(out, sym.Char)
		}
	}
	return out
}

// Mermaid IDs are case-insensitive in places and reject most punctuation, so symbols are
// keyed by code point.
func nodeID(r rune) string {
	return "s" + strconv.FormatInt(int64(r), 16)
}

func label(r rune) string {
	if r == '"' {
		return "#quot;"
	}
	return string(r)
}
