package domain

import (
	"strconv"
	"strings"
)

// Kind is the turtle effect triggered by a symbol.
type Kind uint8

const (
	// KindNone symbols are ignored by the turtle (bookkeeping markers for renderers).
	KindNone Kind = iota
	KindDraw
	KindMove
	KindYawLeft
	KindYawRight
	KindPitchUp
	KindPitchDown
	KindRollLeft
	KindRollRight
	KindPush
	KindPop
)

var kindNames = [...]string{
	KindNone:      "none",
	KindDraw:      "draw",
	KindMove:      "move",
	KindYawLeft:   "yaw_left",
	KindYawRight:  "yaw_right",
	KindPitchUp:   "pitch_up",
	KindPitchDown: "pitch_down",
	KindRollLeft:  "roll_left",
	KindRollRight: "roll_right",
	KindPush:      "push",
	KindPop:       "pop",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// KindOf maps an alphabet character to its turtle effect.
func KindOf(r rune) Kind {
	switch r {
	case 'F', 'G':
		return KindDraw
	case 'f', 'g':
		return KindMove
	case '+':
		return KindYawLeft
	case '-':
		return KindYawRight
	case '^':
		return KindPitchUp
	case '&':
		return KindPitchDown
	case '\\':
		return KindRollLeft
	case '/':
		return KindRollRight
	case '[':
		return KindPush
	case ']':
		return KindPop
	default:
		return KindNone
	}
}

// Symbol is a single rewriting-alphabet character with an optional numeric parameter.
// The parameter overrides the current step (draw/move) or angle (rotations) for that
// occurrence only.
type Symbol struct {
	Char     rune    `json:"char" yaml:"char"`
	Param    float64 `json:"param,omitempty" yaml:"param,omitempty"`
	HasParam bool    `json:"has_param,omitempty" yaml:"has_param,omitempty"`
}

// Sym returns a plain symbol.
func Sym(r rune) Symbol {
	return Symbol{Char: r}
}

// SymParam returns a symbol carrying a parameter.
func SymParam(r rune, v float64) Symbol {
	return Symbol{Char: r, Param: v, HasParam: true}
}

// Kind returns the turtle effect of the symbol.
func (s Symbol) Kind() Kind {
	return KindOf(s.Char)
}

func (s Symbol) String() string {
	if !s.HasParam {
		return string(s.Char)
	}
	return string(s.Char) + "(" + strconv.FormatFloat(s.Param, 'g', -1, 64) + ")"
}

// SequenceString renders symbols back into grammar notation.
func SequenceString(seq []Symbol) string {
	var sb strings.Builder
	for _, s := range seq {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// CountKind returns how many symbols of the given kind the sequence holds.
func CountKind(seq []Symbol, k Kind) int {
	n := 0
	for _, s := range seq {
		if s.Kind() == k {
			n++
		}
	}
	return n
}
