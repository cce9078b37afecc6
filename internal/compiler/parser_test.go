package compiler_test

import (
	"errors"
	"testing"

	"github.com/aretw0/arbor/internal/compiler"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bushGrammar = `# fractal bush
step: 0.5
angle: 25

axiom: F
// main production
F -> F[+F]F[-F]F
`

func TestParser_Parse(t *testing.T) {
	prog, err := compiler.NewParser().Parse(bushGrammar)
	require.NoError(t, err)

	assert.Equal(t, 0.5, prog.DefaultStep)
	assert.Equal(t, 25.0, prog.DefaultAngle)
	assert.Equal(t, "F", domain.SequenceString(prog.Axiom))
	require.Len(t, prog.Rules['F'], 1)
	assert.Equal(t, "F[+F]F[-F]F", domain.SequenceString(prog.Rules['F'][0].Successor))
	assert.Equal(t, domain.DefaultWeight, prog.Rules['F'][0].Weight)
}

func TestParser_Defaults(t *testing.T) {
	prog, err := compiler.NewParser().Parse("axiom: X\nX -> F[+X]F[-X]+X\nF -> FF")
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultStep, prog.DefaultStep)
	assert.Equal(t, domain.DefaultAngle, prog.DefaultAngle)
	assert.Len(t, prog.Rules, 2)
}

func TestParser_StochasticRules(t *testing.T) {
	text := `axiom: F
F -> F[+F]F : 3
F -> F[-F]F
F -> F : 0.5`
	prog, err := compiler.NewParser().Parse(text)
	require.NoError(t, err)

	prods := prog.Rules['F']
	require.Len(t, prods, 3)
	assert.Equal(t, 3.0, prods[0].Weight)
	assert.Equal(t, 1.0, prods[1].Weight)
	assert.Equal(t, 0.5, prods[2].Weight)
	assert.Equal(t, "F[-F]F", domain.SequenceString(prods[1].Successor))
	assert.Equal(t, 4.5, prog.TotalWeight('F'))
	assert.True(t, prog.IsStochastic())
}

func TestParser_Parameters(t *testing.T) {
	prog, err := compiler.NewParser().Parse("axiom: F(2) +(90) F\nF -> F(0.5)[-(30)F]")
	require.NoError(t, err)

	assert.Equal(t, []domain.Symbol{
		domain.SymParam('F', 2),
		domain.SymParam('+', 90),
		domain.Sym('F'),
	}, prog.Axiom)
	assert.Equal(t, "F(0.5)[-(30)F]", domain.SequenceString(prog.Rules['F'][0].Successor))
}

func TestParser_KeysAreCaseInsensitive(t *testing.T) {
	prog, err := compiler.NewParser().Parse("STEP: 2\nAngle: -45\nAxiom: F")
	require.NoError(t, err)
	assert.Equal(t, 2.0, prog.DefaultStep)
	assert.Equal(t, -45.0, prog.DefaultAngle)
}

func TestParser_EmptySuccessor(t *testing.T) {
	prog, err := compiler.NewParser().Parse("axiom: FX\nX ->")
	require.NoError(t, err)
	require.Len(t, prog.Rules['X'], 1)
	assert.Empty(t, prog.Rules['X'][0].Successor)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
	}{
		{"missing predecessor", "axiom: F\n -> FF", 2},
		{"multi symbol predecessor", "axiom: F\nFF -> F", 2},
		{"reserved predecessor", "axiom: F\n( -> F", 2},
		{"unknown statement", "axiom: F\nthis is not a rule", 2},
		{"unknown key", "axiom: F\ncolour: red", 2},
		{"missing axiom", "step: 1\nF -> FF", 0},
		{"empty axiom", "axiom:   ", 1},
		{"duplicate axiom", "axiom: F\naxiom: G", 2},
		{"duplicate step", "step: 1\nstep: 2\naxiom: F", 2},
		{"step not a number", "step: abc\naxiom: F", 1},
		{"step zero", "step: 0\naxiom: F", 1},
		{"step negative", "step: -1\naxiom: F", 1},
		{"step NaN", "step: NaN\naxiom: F", 1},
		{"angle infinite", "angle: +Inf\naxiom: F", 1},
		{"unterminated parameter", "axiom: F(2", 1},
		{"empty parameter", "axiom: F()", 1},
		{"parameter without symbol", "axiom: (2)F", 1},
		{"double parameter", "axiom: F(1)(2)", 1},
		{"stray close paren", "axiom: F)", 1},
		{"bad weight", "axiom: F\nF -> FF : heavy", 2},
		{"zero weight", "axiom: F\nF -> FF : 0", 2},
		{"negative weight", "axiom: F\nF -> FF : -1", 2},
		{"bad successor parameter", "axiom: F\nF -> F(x)", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := compiler.NewParser().Parse(tt.text)
			require.Error(t, err)
			assert.Nil(t, prog)
			assert.ErrorIs(t, err, domain.ErrGrammarSyntax)

			var syntaxErr *domain.GrammarSyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			assert.Equal(t, tt.line, syntaxErr.Line)
			assert.NotEmpty(t, syntaxErr.Reason)
		})
	}
}

func TestParser_Deterministic(t *testing.T) {
	p := compiler.NewParser()
	a, err := p.Parse(bushGrammar)
	require.NoError(t, err)
	b, err := p.Parse(bushGrammar)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFormat_RoundTrip(t *testing.T) {
	text := `step: 0.25
angle: 30
axiom: X(2)#
X -> F[+X][-X]FX : 2
X -> F[&X]^X
F -> F#F`
	p := compiler.NewParser()
	prog, err := p.Parse(text)
	require.NoError(t, err)

	formatted := compiler.Format(prog)
	assert.Equal(t, "step: 0.25\nangle: 30\naxiom: X(2)#\nF -> F#F\nX -> F[+X][-X]FX : 2\nX -> F[&X]^X\n", formatted)

	again, err := p.Parse(formatted)
	require.NoError(t, err)
	assert.Equal(t, prog, again)
}

func TestParseSequence(t *testing.T) {
	seq, err := compiler.ParseSequence(" F [ +F ] ")
	require.NoError(t, err)
	assert.Equal(t, "F[+F]", domain.SequenceString(seq))

	_, err = compiler.ParseSequence("F:")
	assert.ErrorIs(t, err, domain.ErrGrammarSyntax)
}
