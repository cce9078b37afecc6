package domain

import "gonum.org/v1/gonum/spatial/r3"

// GrammarFormat selects the grammar source syntax.
type GrammarFormat string

const (
	FormatText GrammarFormat = "text"
	FormatYAML GrammarFormat = "yaml"
)

// GenerateRequest describes one stateless generation: a grammar (inline or a named preset),
// the number of rewriting iterations and optional overrides of the grammar's defaults.
type GenerateRequest struct {
	Grammar    string        `json:"grammar,omitempty" yaml:"grammar,omitempty"`
	Format     GrammarFormat `json:"format,omitempty" yaml:"format,omitempty"`
	Preset     string        `json:"preset,omitempty" yaml:"preset,omitempty"`
	Iterations uint          `json:"iterations" yaml:"iterations"`
	Angle      *float64      `json:"angle,omitempty" yaml:"angle,omitempty"`
	Step       *float64      `json:"step,omitempty" yaml:"step,omitempty"`
	Seed       *int64        `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// GenerateResult is the geometry produced for a GenerateRequest.
// Symbols is zero when the branches were served from a cache.
type GenerateResult struct {
	Branches []Branch `json:"branches"`
	Symbols  int      `json:"symbols,omitempty"`
	Min      r3.Vec   `json:"min"`
	Max      r3.Vec   `json:"max"`
	Angle    float64  `json:"angle"`
	Step     float64  `json:"step"`
	Cached   bool     `json:"cached,omitempty"`
}

// ExpandResult is the rewritten sequence for a GenerateRequest, without interpretation.
type ExpandResult struct {
	Sequence string `json:"sequence"`
	Symbols  int    `json:"symbols"`
	Draws    int    `json:"draws"`
}
