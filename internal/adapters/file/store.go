package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// Cache implements ports.BranchCache using the local filesystem.
// Each key is stored as a JSON file in a configured directory.
type Cache struct {
	BasePath string
}

// NewCache creates a new Cache with the given base path.
// If basePath is empty, it defaults to ".arbor/cache".
func NewCache(basePath string) *Cache {
	if basePath == "" {
		basePath = filepath.Join(".arbor", "cache")
	}
	return &Cache{BasePath: basePath}
}

func (c *Cache) path(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("cache key cannot be empty")
	}
	if strings.ContainsAny(key, `/\:`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid cache key %q", key)
	}
	return filepath.Join(c.BasePath, key+".json"), nil
}

// Put persists the branches to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (c *Cache) Put(ctx context.Context, key string, branches []domain.Branch) error {
	destPath, err := c.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure cache directory: %w", err)
	}

	data, err := json.Marshal(branches)
	if err != nil {
		return fmt.Errorf("failed to marshal branches: %w", err)
	}

	// Same directory as the destination so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(c.BasePath, "tmp-*.partial")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing cache file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file into cache: %w", err)
	}
	return nil
}

// Get reads the branches stored under key.
func (c *Cache) Get(ctx context.Context, key string) ([]domain.Branch, error) {
	filePath, err := c.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var branches []domain.Branch
	if err := json.Unmarshal(data, &branches); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached branches: %w", err)
	}
	return branches, nil
}

// Delete removes the cache file.
func (c *Cache) Delete(ctx context.Context, key string) error {
	filePath, err := c.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// List returns all cached keys.
func (c *Cache) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(c.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list cache: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && filepath.Ext(name) == ".json" {
			keys = append(keys, strings.TrimSuffix(name, ".json"))
		}
	}
	return keys, nil
}
