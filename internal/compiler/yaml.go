package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/arbor/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a grammar.
//
//	step: 1
//	angle: 25
//	axiom: F
//	rules:
//	  - from: F
//	    to: F[+F]F
//	    weight: 2
type Document struct {
	Step  *float64       `yaml:"step,omitempty"`
	Angle *float64       `yaml:"angle,omitempty"`
	Axiom string         `yaml:"axiom"`
	Rules []DocumentRule `yaml:"rules,omitempty"`
}

// DocumentRule is one production of a Document.
type DocumentRule struct {
	From   string   `yaml:"from"`
	To     string   `yaml:"to"`
	Weight *float64 `yaml:"weight,omitempty"`
}

// ParseYAML decodes a YAML grammar document. Unknown keys are rejected, mirroring the
// text format's refusal of unknown statements.
func (p *Parser) ParseYAML(data []byte) (*domain.Program, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &domain.GrammarSyntaxError{Reason: fmt.Sprintf("yaml: %v", err)}
	}

	b := newProgramBuilder()
	if doc.Step != nil {
		if reason := b.setStep(formatFloat(*doc.Step)); reason != "" {
			return nil, &domain.GrammarSyntaxError{Reason: reason}
		}
	}
	if doc.Angle != nil {
		if reason := b.setAngle(formatFloat(*doc.Angle)); reason != "" {
			return nil, &domain.GrammarSyntaxError{Reason: reason}
		}
	}
	if doc.Axiom != "" {
		if reason := b.setAxiom(doc.Axiom); reason != "" {
			return nil, &domain.GrammarSyntaxError{Text: doc.Axiom, Reason: reason}
		}
	}
	for i, r := range doc.Rules {
		weight := domain.DefaultWeight
		if r.Weight != nil {
			weight = *r.Weight
		}
		if reason := b.addRule(r.From, r.To, weight); reason != "" {
			return nil, &domain.GrammarSyntaxError{
				Text:   r.From + " -> " + r.To,
				Reason: fmt.Sprintf("rule %d: %s", i+1, reason),
			}
		}
	}
	return b.build()
}

// FormatYAML renders a program as a YAML grammar document.
func FormatYAML(p *domain.Program) ([]byte, error) {
	step, angle := p.DefaultStep, p.DefaultAngle
	doc := Document{
		Step:  &step,
		Angle: &angle,
		Axiom: domain.SequenceString(p.Axiom),
	}
	for _, pred := range p.Predecessors() {
		for _, prod := range p.Rules[pred] {
			rule := DocumentRule{From: string(pred), To: domain.SequenceString(prod.Successor)}
			if prod.Weight != domain.DefaultWeight {
				w := prod.Weight
				rule.Weight = &w
			}
			doc.Rules = append(doc.Rules, rule)
		}
	}
	return yaml.Marshal(&doc)
}
