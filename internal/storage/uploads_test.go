package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWritesUnderUserDirectory(t *testing.T) {
	store := NewUploadStore(t.TempDir())

	path, err := store.Save("user-1", "statement.csv", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "statement.csv", filepath.Base(path))
	assert.Equal(t, "user-1", filepath.Base(filepath.Dir(path)))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
}

func TestSaveStripsDirectoryComponents(t *testing.T) {
	root := t.TempDir()
	store := NewUploadStore(root)

	path, err := store.Save("user-1", "../../evil.csv", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "user-1", "evil.csv"), path)
}

func TestMarkImportedRenamesOnce(t *testing.T) {
	store := NewUploadStore(t.TempDir())

	path, err := store.Save("user-1", "statement.csv", strings.NewReader("data"))
	require.NoError(t, err)

	imported, err := store.MarkImported(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(imported, ".imported"))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// A second upload under the same name cannot be claimed again.
	path2, err := store.Save("user-1", "statement.csv", strings.NewReader("data"))
	require.NoError(t, err)
	_, err = store.MarkImported(path2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already imported")
}

func TestPruneImportedRemovesOnlyOldConsumedFiles(t *testing.T) {
	root := t.TempDir()
	store := NewUploadStore(root)

	oldPath, err := store.Save("user-1", "old.csv", strings.NewReader("data"))
	require.NoError(t, err)
	oldImported, err := store.MarkImported(oldPath)
	require.NoError(t, err)
	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldImported, stale, stale))

	freshPath, err := store.Save("user-1", "fresh.csv", strings.NewReader("data"))
	require.NoError(t, err)
	freshImported, err := store.MarkImported(freshPath)
	require.NoError(t, err)

	pendingPath, err := store.Save("user-2", "pending.csv", strings.NewReader("data"))
	require.NoError(t, err)

	removed, err := store.PruneImported(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(oldImported)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(freshImported)
	assert.NoError(t, err)
	_, err = os.Stat(pendingPath)
	assert.NoError(t, err)
}

func TestPruneImportedMissingRoot(t *testing.T) {
	store := NewUploadStore(filepath.Join(t.TempDir(), "does-not-exist"))
	removed, err := store.PruneImported(time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
