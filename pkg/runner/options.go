package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/registry"
)

// DefaultLockTTL bounds how long a replica may hold a cache key while computing it.
const DefaultLockTTL = 30 * time.Second

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithRegistry sets the catalog used to resolve GenerateRequest.Preset.
func WithRegistry(reg *registry.Registry) Option {
	return func(r *Runner) {
		r.registry = reg
	}
}

// WithCache shares computed geometry through cache.
func WithCache(cache ports.BranchCache) Option {
	return func(r *Runner) {
		r.cache = cache
	}
}

// WithLocker coordinates cache fills across replicas.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(r *Runner) {
		r.locker = locker
		if ttl > 0 {
			r.lockTTL = ttl
		}
	}
}

// WithMaxIterations caps the rewriting depth of a request.
func WithMaxIterations(n uint) Option {
	return func(r *Runner) {
		r.maxIterations = n
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithLifecycleHooks registers hooks installed on every per-request engine.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.hooks = hooks
	}
}
