package runtime

import (
	"math"

	"github.com/aretw0/arbor/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

// Interpret walks the sequence with a fresh turtle and returns the drawn branches in order.
//
// A pop with an empty stack aborts with *domain.UnbalancedBracketError and no branches.
// Pushes left open at the end are fine. Invalid symbol parameters and moves that leave
// the float64 range abort with *domain.InvalidParameterError and no branches.
func Interpret(symbols []domain.Symbol, angle, step float64) ([]domain.Branch, error) {
	if err := ValidateDefaults(angle, step); err != nil {
		return nil, err
	}

	turtle := NewTurtle(step, angle)
	var stack []Turtle
	branches := make([]domain.Branch, 0, domain.CountKind(symbols, domain.KindDraw))

	for i, sym := range symbols {
		switch sym.Kind() {
		case domain.KindDraw:
			start := turtle.Position
			d, err := distance(turtle, sym)
			if err != nil {
				return nil, err
			}
			end := turtle.Forward(d)
			if !finite(end) {
				return nil, outOfRange(sym, d)
			}
			branches = append(branches, domain.Branch{Start: start, End: end})
		case domain.KindMove:
			d, err := distance(turtle, sym)
			if err != nil {
				return nil, err
			}
			if !finite(turtle.Forward(d)) {
				return nil, outOfRange(sym, d)
			}
		case domain.KindYawLeft, domain.KindYawRight, domain.KindPitchUp,
			domain.KindPitchDown, domain.KindRollLeft, domain.KindRollRight:
			a, err := turn(turtle, sym)
			if err != nil {
				return nil, err
			}
			rotate(&turtle, sym.Kind(), a)
		case domain.KindPush:
			stack = append(stack, turtle)
		case domain.KindPop:
			if len(stack) == 0 {
				return nil, &domain.UnbalancedBracketError{Index: i}
			}
			turtle = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		case domain.KindNone:
			// markers meaningful only to renderers
		}
	}

	return branches, nil
}

// ValidateDefaults checks the ambient angle and step used by Interpret.
func ValidateDefaults(angle, step float64) error {
	if math.IsNaN(step) || math.IsInf(step, 0) {
		return &domain.InvalidParameterError{Name: "step", Value: step, Reason: "must be finite"}
	}
	if step <= 0 {
		return &domain.InvalidParameterError{Name: "step", Value: step, Reason: "must be positive"}
	}
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return &domain.InvalidParameterError{Name: "angle", Value: angle, Reason: "must be finite"}
	}
	return nil
}

// ValidateSymbol checks a symbol's own parameter: draw and move lengths must be finite and
// positive, rotation angles finite. Symbols without a parameter always pass.
func ValidateSymbol(sym domain.Symbol) error {
	if !sym.HasParam {
		return nil
	}
	name := string(sym.Char) + " parameter"
	if math.IsNaN(sym.Param) || math.IsInf(sym.Param, 0) {
		return &domain.InvalidParameterError{Name: name, Value: sym.Param, Reason: "must be finite"}
	}
	switch sym.Kind() {
	case domain.KindDraw, domain.KindMove:
		if sym.Param <= 0 {
			return &domain.InvalidParameterError{Name: name, Value: sym.Param, Reason: "must be positive"}
		}
	}
	return nil
}

func distance(t Turtle, sym domain.Symbol) (float64, error) {
	if !sym.HasParam {
		return t.Step, nil
	}
	if err := ValidateSymbol(sym); err != nil {
		return 0, err
	}
	return sym.Param, nil
}

func turn(t Turtle, sym domain.Symbol) (float64, error) {
	if !sym.HasParam {
		return t.Angle, nil
	}
	if err := ValidateSymbol(sym); err != nil {
		return 0, err
	}
	return sym.Param, nil
}

func rotate(t *Turtle, k domain.Kind, degrees float64) {
	switch k {
	case domain.KindYawLeft:
		t.Yaw(degrees)
	case domain.KindYawRight:
		t.Yaw(-degrees)
	case domain.KindPitchUp:
		t.Pitch(degrees)
	case domain.KindPitchDown:
		t.Pitch(-degrees)
	case domain.KindRollLeft:
		t.Roll(degrees)
	case domain.KindRollRight:
		t.Roll(-degrees)
	}
}

func finite(v r3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func outOfRange(sym domain.Symbol, d float64) error {
	return &domain.InvalidParameterError{
		Name:   string(sym.Char) + " distance",
		Value:  d,
		Reason: "moves the turtle out of the representable range",
	}
}
