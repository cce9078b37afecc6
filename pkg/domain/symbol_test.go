package domain

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		r    rune
		want Kind
	}{
		{'F', KindDraw}, {'G', KindDraw},
		{'f', KindMove}, {'g', KindMove},
		{'+', KindYawLeft}, {'-', KindYawRight},
		{'^', KindPitchUp}, {'&', KindPitchDown},
		{'\\', KindRollLeft}, {'/', KindRollRight},
		{'[', KindPush}, {']', KindPop},
		{'A', KindNone}, {'S', KindNone}, {'|', KindNone},
	}
	for _, tt := range tests {
		if got := KindOf(tt.r); got != tt.want {
			t.Errorf("KindOf(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestKind_String(t *testing.T) {
	if got := KindPitchDown.String(); got != "pitch_down" {
		t.Errorf("got %q", got)
	}
	if got := Kind(42).String(); got != "kind(42)" {
		t.Errorf("got %q", got)
	}
}

func TestSequenceString(t *testing.T) {
	seq := []Symbol{Sym('F'), SymParam('+', 90), Sym('['), SymParam('F', 1.5), Sym(']')}
	if got, want := SequenceString(seq), "F+(90)[F(1.5)]"; got != want {
		t.Errorf("SequenceString = %q, want %q", got, want)
	}
	if got := CountKind(seq, KindDraw); got != 2 {
		t.Errorf("CountKind(draw) = %d, want 2", got)
	}
}

func TestBranch(t *testing.T) {
	b := Branch{Start: r3.Vec{X: 1, Y: 1}, End: r3.Vec{X: 1, Y: 4}}
	if got := b.Length(); got != 3 {
		t.Errorf("Length = %v, want 3", got)
	}
	if got := b.Direction(); got != (r3.Vec{Y: 1}) {
		t.Errorf("Direction = %v, want +Y", got)
	}
}

func TestBounds(t *testing.T) {
	if got := Bounds(nil); got != (r3.Box{}) {
		t.Errorf("Bounds(nil) = %v, want zero box", got)
	}

	branches := []Branch{
		{Start: r3.Vec{}, End: r3.Vec{X: -1, Y: 2}},
		{Start: r3.Vec{X: -1, Y: 2}, End: r3.Vec{X: 3, Y: 1, Z: -5}},
	}
	want := r3.Box{Min: r3.Vec{X: -1, Z: -5}, Max: r3.Vec{X: 3, Y: 2}}
	if got := Bounds(branches); got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
}

func TestProgram(t *testing.T) {
	p := NewProgram()
	if p.DefaultAngle != DefaultAngle || p.DefaultStep != DefaultStep {
		t.Fatalf("defaults = (%v, %v)", p.DefaultAngle, p.DefaultStep)
	}

	p.Rules['X'] = []Production{{Weight: 1, Successor: []Symbol{Sym('F')}}}
	p.Rules['F'] = []Production{
		{Weight: 1, Successor: []Symbol{Sym('F')}},
		{Weight: 2.5, Successor: []Symbol{Sym('F'), Sym('F')}},
	}

	if got := string(p.Predecessors()); got != "FX" {
		t.Errorf("Predecessors = %q, want FX", got)
	}
	if !p.IsStochastic() {
		t.Error("expected a stochastic program")
	}
	if got := p.TotalWeight('F'); got != 3.5 {
		t.Errorf("TotalWeight = %v, want 3.5", got)
	}
	if got := p.TotalWeight('Q'); got != 0 {
		t.Errorf("TotalWeight of unknown symbol = %v", got)
	}
}
