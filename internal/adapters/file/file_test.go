package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/arbor/internal/adapters/file"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.BranchCache   = (*file.Cache)(nil)
	_ ports.GrammarReader = (*file.Reader)(nil)
	_ ports.Watchable     = (*file.Reader)(nil)
)

func TestFileCache_Contract(t *testing.T) {
	ports.RunBranchCacheContract(t, file.NewCache(t.TempDir()))
}

func TestFileCache_MissingDirectoryListsNothing(t *testing.T) {
	cache := file.NewCache(filepath.Join(t.TempDir(), "never-created"))
	keys, err := cache.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFileCache_RejectsPathKeys(t *testing.T) {
	cache := file.NewCache(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"", "..", "../escape", `a\b`, "a:b"} {
		assert.Error(t, cache.Put(ctx, key, nil), "key %q", key)
	}
}

func TestReader_ReadGrammar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.lsys")
	require.NoError(t, os.WriteFile(path, []byte("axiom: F\n"), 0644))

	reader := file.NewReader()
	text, err := reader.ReadGrammar(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "axiom: F\n", text)

	_, err = reader.ReadGrammar(context.Background(), filepath.Join(dir, "missing.lsys"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReader_WatchEmitsNewContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.lsys")
	require.NoError(t, os.WriteFile(path, []byte("axiom: F\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &file.Reader{Debounce: 20 * time.Millisecond}
	updates, err := reader.Watch(ctx, path)
	require.NoError(t, err)

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.lsys"), []byte("axiom: G\n"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("axiom: FF\n"), 0644))

	select {
	case text := <-updates:
		assert.Equal(t, "axiom: FF\n", text)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for grammar update")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-updates:
			return !ok
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}
