package dsl

import "github.com/aretw0/arbor/pkg/domain"

// RuleBuilder provides a fluent API for configuring one production.
type RuleBuilder struct {
	pred      rune
	successor *string
	weight    float64
	builder   *Builder
}

// To sets the successor sequence in grammar notation.
func (r *RuleBuilder) To(sequence string) *RuleBuilder {
	r.successor = &sequence
	return r
}

// Weight sets the relative probability among alternatives for the same predecessor.
func (r *RuleBuilder) Weight(w float64) *RuleBuilder {
	r.weight = w
	return r
}

// Rule starts the next production, for chaining.
func (r *RuleBuilder) Rule(predecessor rune) *RuleBuilder {
	return r.builder.Rule(predecessor)
}

// Build compiles the whole grammar. See Builder.Build.
func (r *RuleBuilder) Build() (*domain.Program, error) {
	return r.builder.Build()
}
