package domain

import "gonum.org/v1/gonum/spatial/r3"

// Branch is one drawn segment. Branches are emitted in drawing order, which says nothing about
// spatial adjacency: consumers relate branches through shared endpoints.
type Branch struct {
	Start r3.Vec `json:"start" yaml:"start"`
	End   r3.Vec `json:"end" yaml:"end"`
}

// Length returns the euclidean length of the segment.
func (b Branch) Length() float64 {
	return r3.Norm(r3.Sub(b.End, b.Start))
}

// Direction returns the unit vector from Start to End.
func (b Branch) Direction() r3.Vec {
	return r3.Unit(r3.Sub(b.End, b.Start))
}

// Bounds returns the axis-aligned box enclosing all branches.
// The zero box is returned for an empty slice.
func Bounds(branches []Branch) r3.Box {
	if len(branches) == 0 {
		return r3.Box{}
	}
	box := r3.Box{Min: branches[0].Start, Max: branches[0].Start}
	for _, b := range branches {
		for _, p := range [2]r3.Vec{b.Start, b.End} {
			box.Min.X = min(box.Min.X, p.X)
			box.Min.Y = min(box.Min.Y, p.Y)
			box.Min.Z = min(box.Min.Z, p.Z)
			box.Max.X = max(box.Max.X, p.X)
			box.Max.Y = max(box.Max.Y, p.Y)
			box.Max.Z = max(box.Max.Z, p.Z)
		}
	}
	return box
}
