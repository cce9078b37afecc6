package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
)

// Cache implements ports.BranchCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string][]domain.Branch
	mu   sync.RWMutex
}

// New creates a new in-memory branch cache.
func New() *Cache {
	return &Cache{
		data: make(map[string][]domain.Branch),
	}
}

// Put stores a copy of branches under key.
func (c *Cache) Put(ctx context.Context, key string, branches []domain.Branch) error {
	// Copy to ensure isolation, similar to serialization
	copied := make([]domain.Branch, len(branches))
	copy(copied, branches)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = copied
	return nil
}

// Get retrieves a copy of the branches stored under key.
func (c *Cache) Get(ctx context.Context, key string) ([]domain.Branch, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	branches, ok := c.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}

	// Copy on read so callers can't mutate cached geometry through the slice
	ret := make([]domain.Branch, len(branches))
	copy(ret, branches)
	return ret, nil
}

// Delete removes the key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// List returns the cached keys in ascending order.
func (c *Cache) List(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
