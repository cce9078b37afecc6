package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/arbor/internal/adapters/redis"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ ports.BranchCache = (*redis.Cache)(nil)

func newCache(t *testing.T, opts ...redis.Option) (*redis.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	cache := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestRedisCache_Contract(t *testing.T) {
	cache, _ := newCache(t)
	ports.RunBranchCacheContract(t, cache)
}

func TestRedisCache_PrefixAndTTL(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t, redis.WithPrefix("test:"), redis.WithTTL(time.Minute))

	branches := []domain.Branch{{End: r3.Vec{Y: 1}}}
	require.NoError(t, cache.Put(ctx, "k1", branches))
	require.NoError(t, cache.Ping(ctx))

	assert.True(t, mr.Exists("test:k1"))
	assert.Equal(t, time.Minute, mr.TTL("test:k1"))

	mr.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, "k1")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t)

	require.NoError(t, mr.Set(redis.DefaultPrefix+"broken", "{not json"))

	_, err := cache.Get(ctx, "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCacheMiss)
	assert.Contains(t, err.Error(), "unmarshal")
}
