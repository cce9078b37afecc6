package node

import (
	"math"

	"github.com/aretw0/arbor/internal/dto"
	"github.com/aretw0/arbor/pkg/domain"
)

// DefaultTime is the time attribute of a new node: two rewriting iterations.
const DefaultTime = 2

// Attributes are the inputs of a grammar node.
type Attributes struct {
	Grammar  string
	StepSize float64
	Angle    float64
	Time     float64
}

// DefaultAttributes returns the attributes of a freshly created node.
func DefaultAttributes() Attributes {
	return Attributes{
		StepSize: domain.DefaultStep,
		Angle:    domain.DefaultAngle,
		Time:     DefaultTime,
	}
}

// DecodeAttributes reads attributes from a loosely typed map (e.g. decoded JSON or a host's
// attribute table). Missing keys keep their defaults.
func DecodeAttributes(raw map[string]any) (Attributes, error) {
	var in dto.NodeAttributes
	if err := dto.Decode(raw, &in); err != nil {
		return Attributes{}, err
	}

	attrs := DefaultAttributes()
	attrs.Grammar = in.Grammar
	if in.StepSize != nil {
		attrs.StepSize = *in.StepSize
	}
	if in.Angle != nil {
		attrs.Angle = *in.Angle
	}
	if in.Time != nil {
		attrs.Time = *in.Time
	}
	return attrs, nil
}

// Iterations converts the time attribute into a rewriting depth: floor(time), at least 1.
func (a Attributes) Iterations() uint {
	t := math.Floor(a.Time)
	if math.IsNaN(t) || t < 1 {
		return 1
	}
	if t > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint(t)
}
