package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/arbor/internal/adapters/memory"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.BranchCache   = (*memory.Cache)(nil)
	_ ports.GrammarReader = (*memory.Reader)(nil)
)

func TestMemoryCache_Contract(t *testing.T) {
	cache := memory.New()
	ports.RunBranchCacheContract(t, cache)
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryReader(t *testing.T) {
	ctx := context.Background()
	reader := memory.NewReader(map[string]string{"tree.lsys": "axiom: F"})

	text, err := reader.ReadGrammar(ctx, "tree.lsys")
	require.NoError(t, err)
	assert.Equal(t, "axiom: F", text)

	_, err = reader.ReadGrammar(ctx, "missing.lsys")
	assert.ErrorContains(t, err, "grammar not found")

	reader.Set("bush.lsys", "axiom: X")
	assert.Equal(t, []string{"bush.lsys", "tree.lsys"}, reader.Paths())
	assert.Equal(t, 2, reader.Reads())

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = reader.ReadGrammar(cancelled, "tree.lsys")
	assert.ErrorIs(t, err, context.Canceled)
}
