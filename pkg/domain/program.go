package domain

import "sort"

// Production is one weighted successor for a predecessor symbol.
type Production struct {
	Weight    float64  `json:"weight" yaml:"weight"`
	Successor []Symbol `json:"successor" yaml:"successor"`
}

// Program is a parsed grammar. It is treated as immutable once built: the engine keeps its
// own mutable copies of the default angle and step.
type Program struct {
	Axiom        []Symbol              `json:"axiom" yaml:"axiom"`
	DefaultAngle float64               `json:"default_angle" yaml:"default_angle"`
	DefaultStep  float64               `json:"default_step" yaml:"default_step"`
	Rules        map[rune][]Production `json:"rules" yaml:"rules"`
}

// NewProgram returns an empty program carrying the package defaults.
func NewProgram() *Program {
	return &Program{
		DefaultAngle: DefaultAngle,
		DefaultStep:  DefaultStep,
		Rules:        make(map[rune][]Production),
	}
}

// Predecessors returns the rule keys in ascending order.
func (p *Program) Predecessors() []rune {
	keys := make([]rune, 0, len(p.Rules))
	for r := range p.Rules {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// IsStochastic reports whether any predecessor has more than one alternative.
func (p *Program) IsStochastic() bool {
	for _, prods := range p.Rules {
		if len(prods) > 1 {
			return true
		}
	}
	return false
}

// TotalWeight sums the weights of a predecessor's alternatives.
func (p *Program) TotalWeight(pred rune) float64 {
	total := 0.0
	for _, prod := range p.Rules[pred] {
		total += prod.Weight
	}
	return total
}
