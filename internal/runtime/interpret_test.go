package runtime_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/aretw0/arbor/internal/compiler"
	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func mustSequence(t *testing.T, text string) []domain.Symbol {
	t.Helper()
	seq, err := compiler.ParseSequence(text)
	require.NoError(t, err)
	return seq
}

func TestInterpret_YawScenario(t *testing.T) {
	prog := mustParse(t, "angle: 90\nstep: 1\naxiom: F\nF -> F+F-F")
	symbols := runtime.Expand(prog, 1, nil)
	require.Equal(t, "F+F-F", domain.SequenceString(symbols))

	branches, err := runtime.Interpret(symbols, prog.DefaultAngle, prog.DefaultStep)
	require.NoError(t, err)
	require.Len(t, branches, 3)

	for _, b := range branches {
		assert.InDelta(t, 1, b.Length(), tolerance)
	}

	first, second, third := branches[0], branches[1], branches[2]
	assertVecNear(t, r3.Vec{}, first.Start)
	assertVecNear(t, r3.Vec{Y: 1}, first.End)

	// second departs from the first's end, yawed +90 about the initial up axis
	assertVecNear(t, first.End, second.Start)
	assertVecNear(t, r3.Rotate(first.Direction(), math.Pi/2, runtime.InitialUp), second.Direction())

	assertVecNear(t, second.End, third.Start)
	assertVecNear(t, first.Direction(), third.Direction())
}

func TestInterpret_BranchingScenario(t *testing.T) {
	prog := mustParse(t, "angle: 45\nstep: 1\naxiom: F\nF -> F[+F]F")
	symbols := runtime.Expand(prog, 2, nil)

	branches, err := runtime.Interpret(symbols, 45, 1)
	require.NoError(t, err)
	assert.Len(t, branches, domain.CountKind(symbols, domain.KindDraw))

	// trunk: F F F F along +Y with the side shoots skipped by push/pop
	assertVecNear(t, r3.Vec{Y: 4}, branches[len(branches)-1].End)
}

func TestInterpret_PushPopRestoresState(t *testing.T) {
	branches, err := runtime.Interpret(mustSequence(t, "F[+F^F\\F(3)&(10)F]F"), 30, 1)
	require.NoError(t, err)
	require.Len(t, branches, 6)

	first, last := branches[0], branches[5]
	assertVecNear(t, first.End, last.Start)
	assertVecNear(t, first.Direction(), last.Direction())
	assert.InDelta(t, 1, last.Length(), tolerance)
}

func TestInterpret_BalancedRoundTripProperty(t *testing.T) {
	alphabet := []rune("FFf+-^&\\/X")
	rnd := rand.New(rand.NewSource(11))
	randomRun := func(n int) []domain.Symbol {
		seq := make([]domain.Symbol, n)
		for i := range seq {
			seq[i] = domain.Sym(alphabet[rnd.Intn(len(alphabet))])
		}
		return seq
	}

	for trial := 0; trial < 200; trial++ {
		prefix, inner, suffix := randomRun(rnd.Intn(12)), randomRun(rnd.Intn(12)), randomRun(1+rnd.Intn(12))

		var bracketed []domain.Symbol
		bracketed = append(bracketed, prefix...)
		bracketed = append(bracketed, domain.Sym('['))
		bracketed = append(bracketed, inner...)
		bracketed = append(bracketed, domain.Sym(']'))
		bracketed = append(bracketed, suffix...)

		plain := append(append([]domain.Symbol{}, prefix...), suffix...)

		withBranch, err := runtime.Interpret(bracketed, 27, 1.5)
		require.NoError(t, err)
		without, err := runtime.Interpret(plain, 27, 1.5)
		require.NoError(t, err)

		nPrefix := domain.CountKind(prefix, domain.KindDraw)
		nInner := domain.CountKind(inner, domain.KindDraw)
		require.Len(t, withBranch, len(without)+nInner)

		tail := withBranch[nPrefix+nInner:]
		for i, b := range without[nPrefix:] {
			assertVecNear(t, b.Start, tail[i].Start, "trial %d branch %d", trial, i)
			assertVecNear(t, b.End, tail[i].End, "trial %d branch %d", trial, i)
		}
	}
}

func TestInterpret_UnbalancedPop(t *testing.T) {
	branches, err := runtime.Interpret(mustSequence(t, "F[F]]F"), 25, 1)
	require.Error(t, err)
	assert.Nil(t, branches)
	assert.ErrorIs(t, err, domain.ErrUnbalancedBracket)

	var bracketErr *domain.UnbalancedBracketError
	require.True(t, errors.As(err, &bracketErr))
	assert.Equal(t, 4, bracketErr.Index)
}

func TestInterpret_OpenPushIsAllowed(t *testing.T) {
	branches, err := runtime.Interpret(mustSequence(t, "F[+F[-F"), 25, 1)
	require.NoError(t, err)
	assert.Len(t, branches, 3)
}

func TestInterpret_ParametersAreLocal(t *testing.T) {
	branches, err := runtime.Interpret(mustSequence(t, "F(2)F+(90)F+F"), 45, 1)
	require.NoError(t, err)
	require.Len(t, branches, 4)

	assert.InDelta(t, 2, branches[0].Length(), tolerance)
	assert.InDelta(t, 1, branches[1].Length(), tolerance, "step override must not leak")
	assertVecNear(t, r3.Vec{X: -1}, branches[2].Direction())

	// ambient 45 degrees after the 90 degree override: 135 degrees from +Y
	want := r3.Vec{X: -math.Sqrt2 / 2, Y: -math.Sqrt2 / 2}
	assertVecNear(t, want, branches[3].Direction())
}

func TestInterpret_MoveDoesNotDraw(t *testing.T) {
	branches, err := runtime.Interpret(mustSequence(t, "f(3)Fg"), 25, 1)
	require.NoError(t, err)
	require.Len(t, branches, 1)
	assertVecNear(t, r3.Vec{Y: 3}, branches[0].Start)
	assertVecNear(t, r3.Vec{Y: 4}, branches[0].End)
}

func TestInterpret_UnknownSymbolsAreIgnored(t *testing.T) {
	branches, err := runtime.Interpret(mustSequence(t, "XFLAF*"), 25, 1)
	require.NoError(t, err)
	assert.Len(t, branches, 2)
}

func TestInterpret_InvalidParameters(t *testing.T) {
	seq := mustSequence(t, "F")
	cases := []struct {
		name        string
		angle, step float64
	}{
		{"nan step", 25, math.NaN()},
		{"infinite step", 25, math.Inf(1)},
		{"zero step", 25, 0},
		{"negative step", 25, -1},
		{"nan angle", math.NaN(), 1},
		{"infinite angle", math.Inf(-1), 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			branches, err := runtime.Interpret(seq, c.angle, c.step)
			assert.Nil(t, branches)
			assert.ErrorIs(t, err, domain.ErrInvalidParameter)
		})
	}
}

func TestInterpret_InvalidSymbolParameters(t *testing.T) {
	cases := []struct {
		name string
		seq  []domain.Symbol
	}{
		{"negative draw", []domain.Symbol{domain.SymParam('F', -3)}},
		{"zero draw", []domain.Symbol{domain.Sym('F'), domain.SymParam('F', 0)}},
		{"nan draw", []domain.Symbol{domain.SymParam('F', math.NaN())}},
		{"negative move", []domain.Symbol{domain.SymParam('f', -1), domain.Sym('F')}},
		{"infinite move", []domain.Symbol{domain.SymParam('g', math.Inf(1))}},
		{"nan yaw", []domain.Symbol{domain.SymParam('+', math.NaN()), domain.Sym('F')}},
		{"infinite roll", []domain.Symbol{domain.Sym('F'), domain.SymParam('/', math.Inf(-1))}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			branches, err := runtime.Interpret(c.seq, 25, 1)
			assert.Nil(t, branches)
			assert.ErrorIs(t, err, domain.ErrInvalidParameter)
		})
	}
}

func TestInterpret_NegativeRotationParameterIsAllowed(t *testing.T) {
	branches, err := runtime.Interpret(mustSequence(t, "+(-90)F"), 25, 1)
	require.NoError(t, err)
	require.Len(t, branches, 1)
	assert.InDelta(t, 1, branches[0].End.X, tolerance)
}

func TestInterpret_PositionOverflow(t *testing.T) {
	branches, err := runtime.Interpret(mustSequence(t, "FF"), 0, 1e308)
	assert.Nil(t, branches)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = runtime.Interpret(mustSequence(t, "ffF"), 0, 1e308)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestValidateSymbol(t *testing.T) {
	assert.NoError(t, runtime.ValidateSymbol(domain.Sym('F')))
	assert.NoError(t, runtime.ValidateSymbol(domain.SymParam('F', 0.5)))
	assert.NoError(t, runtime.ValidateSymbol(domain.SymParam('&', -30)))
	assert.NoError(t, runtime.ValidateSymbol(domain.SymParam('X', -2)))

	err := runtime.ValidateSymbol(domain.SymParam('F', -3))
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	assert.EqualError(t, err, "invalid F parameter -3: must be positive")
	assert.ErrorIs(t, runtime.ValidateSymbol(domain.SymParam('X', math.NaN())), domain.ErrInvalidParameter)
}
