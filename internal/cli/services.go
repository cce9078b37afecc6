package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/arbor/internal/adapters/file"
	"github.com/aretw0/arbor/internal/adapters/memory"
	"github.com/aretw0/arbor/internal/adapters/redis"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/runner"
	backend "github.com/redis/go-redis/v9"
)

// NewRunner builds the generator shared by serve and mcp. The branch cache is Redis when
// an address is configured (with a distributed lock so replicas fill each key once), a
// directory when cache_dir is set, and process memory otherwise.
// The returned close function releases the cache connection.
func (a *App) NewRunner(ctx context.Context, hooks domain.LifecycleHooks) (*runner.Runner, func() error, error) {
	opts := []runner.Option{
		runner.WithRegistry(a.Registry),
		runner.WithMaxIterations(a.Config.MaxIterations),
		runner.WithLogger(a.Logger),
		runner.WithLifecycleHooks(hooks),
	}
	closeFn := func() error { return nil }

	var cache ports.BranchCache
	switch {
	case a.Config.Redis.Address != "":
		rc := a.Config.Redis
		client := backend.NewClient(&backend.Options{
			Addr:     rc.Address,
			Password: rc.Password,
			DB:       rc.DB,
		})
		prefix := rc.Prefix
		if prefix == "" {
			prefix = redis.DefaultPrefix
		}
		rcache := redis.NewFromClient(client, redis.WithPrefix(prefix), redis.WithTTL(rc.TTL))
		if err := rcache.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", rc.Address, err)
		}
		cache = rcache
		closeFn = client.Close
		opts = append(opts, runner.WithLocker(redis.NewLocker(client, prefix), runner.DefaultLockTTL))
		a.Logger.Info("Using redis branch cache", "address", rc.Address, "prefix", prefix, "ttl", rc.TTL)
	case a.Config.CacheDir != "":
		cache = file.NewCache(a.Config.CacheDir)
		a.Logger.Info("Using file branch cache", "dir", a.Config.CacheDir)
	default:
		cache = memory.New()
	}

	opts = append(opts, runner.WithCache(cache))
	return runner.New(opts...), closeFn, nil
}
