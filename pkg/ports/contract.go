package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// RunBranchCacheContract runs a suite of tests to verify that a BranchCache implementation
// adheres to the defined interface contract.
func RunBranchCacheContract(t *testing.T, cache BranchCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	branches := []domain.Branch{
		{Start: r3.Vec{}, End: r3.Vec{Y: 1}},
		{Start: r3.Vec{Y: 1}, End: r3.Vec{X: -0.5, Y: 1.5, Z: 0.25}},
	}

	t.Run("Put and Get", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, branches), "Put should not return error")

		loaded, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, branches, loaded)
	})

	t.Run("Get returns a copy", func(t *testing.T) {
		loaded, err := cache.Get(ctx, key)
		require.NoError(t, err)
		loaded[0].End = r3.Vec{X: 99}

		again, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, branches[0], again[0])
	})

	t.Run("Put replaces", func(t *testing.T) {
		other := key + "-replace"
		require.NoError(t, cache.Put(ctx, other, branches))
		require.NoError(t, cache.Put(ctx, other, branches[:1]))

		loaded, err := cache.Get(ctx, other)
		require.NoError(t, err)
		assert.Len(t, loaded, 1)
		_ = cache.Delete(ctx, other)
	})

	t.Run("Empty geometry is a hit", func(t *testing.T) {
		empty := key + "-empty"
		require.NoError(t, cache.Put(ctx, empty, nil))

		loaded, err := cache.Get(ctx, empty)
		require.NoError(t, err)
		assert.Empty(t, loaded)
		_ = cache.Delete(ctx, empty)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := cache.Get(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, branches))
		require.NoError(t, cache.Delete(ctx, key), "Delete should not return error")

		_, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss, "Get after Delete should return ErrCacheMiss")

		assert.NoError(t, cache.Delete(ctx, key), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := key + "-1"
		id2 := key + "-2"
		require.NoError(t, cache.Put(ctx, id1, branches))
		require.NoError(t, cache.Put(ctx, id2, branches))

		defer func() {
			_ = cache.Delete(ctx, id1)
			_ = cache.Delete(ctx, id2)
		}()

		keys, err := cache.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, id1)
		assert.Contains(t, keys, id2)
	})
}
