package compiler

import (
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// Parser converts grammar text into a Program.
//
// The format is line oriented:
//
//	# comment
//	step: 1
//	angle: 25.7
//	axiom: F
//	F -> F[+F]F
//	F -> F[-F]F : 2
//
// Blank lines and lines starting with "#" or "//" are ignored. Any other line must be a
// step, angle, axiom or rule statement.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes the grammar text. Errors are *domain.GrammarSyntaxError.
func (p *Parser) Parse(text string) (*domain.Program, error) {
	b := newProgramBuilder()

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		if reason := parseStatement(b, line); reason != "" {
			return nil, &domain.GrammarSyntaxError{Line: i + 1, Text: line, Reason: reason}
		}
	}

	return b.build()
}

func parseStatement(b *programBuilder, line string) string {
	if pred, rest, ok := strings.Cut(line, "->"); ok {
		weight := domain.DefaultWeight
		if j := strings.LastIndex(rest, ":"); j >= 0 {
			v, reason := parseNumber(rest[j+1:])
			if reason != "" {
				return "weight " + reason
			}
			weight = v
			rest = rest[:j]
		}
		return b.addRule(strings.TrimSpace(pred), rest, weight)
	}

	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return "unrecognized statement"
	}
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "step":
		return b.setStep(value)
	case "angle":
		return b.setAngle(value)
	case "axiom":
		return b.setAxiom(value)
	default:
		return "unrecognized statement"
	}
}
