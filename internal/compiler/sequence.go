package compiler

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/aretw0/arbor/pkg/domain"
)

// ParseSequence decodes a symbol sequence such as "F[+F(0.5)]F".
// Whitespace is ignored. "(", ")" and ":" are reserved.
func ParseSequence(text string) ([]domain.Symbol, error) {
	seq, reason := scanSequence(text)
	if reason != "" {
		return nil, &domain.GrammarSyntaxError{Text: text, Reason: reason}
	}
	return seq, nil
}

func scanSequence(text string) ([]domain.Symbol, string) {
	runes := []rune(text)
	seq := make([]domain.Symbol, 0, len(runes))

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '(':
			if len(seq) == 0 {
				return nil, "parameter without a symbol"
			}
			last := &seq[len(seq)-1]
			if last.HasParam {
				return nil, fmt.Sprintf("symbol %q has more than one parameter", last.Char)
			}
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == ')' {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, "unterminated parameter"
			}
			v, reason := parseNumber(string(runes[i+1 : end]))
			if reason != "" {
				return nil, "parameter " + reason
			}
			last.Param = v
			last.HasParam = true
			i = end
		case r == ')':
			return nil, "unexpected ')'"
		case r == ':':
			return nil, "reserved character ':'"
		default:
			seq = append(seq, domain.Sym(r))
		}
	}
	return seq, ""
}

func parseNumber(text string) (float64, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, "is empty"
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Sprintf("%q is not a number", text)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Sprintf("%q is not finite", text)
	}
	return v, ""
}

func isReserved(r rune) bool {
	return r == '(' || r == ')' || r == ':' || unicode.IsSpace(r)
}

// IsReservedPredecessor reports whether r cannot start a rule line. '#' is a valid symbol
// inside sequences but a rule line starting with it reads as a comment.
func IsReservedPredecessor(r rune) bool {
	return isReserved(r) || r == '#'
}
