package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
)

// BranchCache stores interpreted geometry so identical requests skip rewriting.
// Keys are opaque strings built by the caller (see node.CacheKey).
type BranchCache interface {
	// Put stores the branches under key, replacing any previous value.
	Put(ctx context.Context, key string, branches []domain.Branch) error

	// Get returns the branches stored under key.
	// Returns domain.ErrCacheMiss if the key is unknown or expired.
	Get(ctx context.Context, key string) ([]domain.Branch, error)

	// Delete removes the key. Deleting an unknown key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys currently held.
	List(ctx context.Context) ([]string, error)
}
