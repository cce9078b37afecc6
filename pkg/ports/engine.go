package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
)

// Generator is the stateless face of the grammar engine used by adapters (HTTP, MCP) that
// serve concurrent callers. Each call builds its own engine.
type Generator interface {
	// Generate expands and interprets the requested grammar.
	Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResult, error)

	// Expand rewrites the requested grammar without interpreting it.
	Expand(ctx context.Context, req domain.GenerateRequest) (*domain.ExpandResult, error)

	// Presets lists the names of the grammars available by name.
	Presets() []string
}
