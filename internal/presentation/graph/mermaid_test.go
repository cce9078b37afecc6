package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/arbor/internal/compiler"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) *domain.Program {
	t.Helper()
	prog, err := compiler.NewParser().Parse(text)
	require.NoError(t, err)
	return prog
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name        string
		grammar     string
		contains    []string
		notContains []string
	}{
		{
			name:    "Axiom And Rule Shapes",
			grammar: "axiom: X\nX -> F[+X]F\n",
			contains: []string{
				"graph TD",
				`axiom(("axiom"))`,
				`s58["X"]`,
				`s46[["F"]]`,
				"axiom --> s58",
				"s58 --> s46",
				"s58 --> s58",
			},
			notContains: []string{"s2b", "s5b", "p="},
		},
		{
			name:    "Stochastic Probabilities",
			grammar: "axiom: F\nF -> F[+F]F : 3\nF -> F : 1\n",
			contains: []string{
				`s46["F"]`,
				`s46 -- "p=0.75" --> s46`,
				`s46 -- "p=0.25" --> s46`,
			},
		},
		{
			name:    "Case Sensitive Symbols",
			grammar: "axiom: Ff\n",
			contains: []string{
				`s46[["F"]]`,
				`s66[["f"]]`,
			},
		},
		{
			name:    "Unreachable Rules",
			grammar: "axiom: F\nF -> FF\nA -> F\n",
			contains: []string{
				"classDef unreachable",
				"class s41 unreachable;",
			},
			notContains: []string{"class s46 unreachable;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := graph.GenerateMermaid(mustParse(t, tt.grammar))
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestGenerateMermaid_DeclaresNodesOnce(t *testing.T) {
	out := graph.GenerateMermaid(mustParse(t, "axiom: FFF\nF -> F[+F]F\n"))
	assert.Equal(t, 1, strings.Count(out, `s46["F"]`))
	assert.Equal(t, 1, strings.Count(out, "axiom --> s46"))
}

func TestReachable(t *testing.T) {
	reach := graph.Reachable(mustParse(t, "axiom: A\nA -> B\nB -> F\nC -> A\n"))
	assert.True(t, reach['A'])
	assert.True(t, reach['B'])
	assert.True(t, reach['F'])
	assert.False(t, reach['C'])
}
