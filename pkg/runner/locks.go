package runner

import (
	"context"
	"fmt"
	"sync"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(key) after unlocking.
func (r *Runner) acquire(key string) *lockEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.locks[key]
	if !exists {
		entry = &lockEntry{}
		r.locks[key] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (r *Runner) release(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.locks[key]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(r.locks, key)
	}
}

// withLock executes fn while holding the lock for key, locally and, when configured,
// across replicas.
func (r *Runner) withLock(ctx context.Context, key string, fn func(context.Context) error) error {
	entry := r.acquire(key)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		r.release(key)
	}()

	if r.locker != nil {
		unlock, err := r.locker.Lock(ctx, key, r.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				r.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"key", key,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// pending returns the number of keys with waiters or holders.
func (r *Runner) pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.locks)
}
