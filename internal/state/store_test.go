package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	_, ok := store.Load()
	assert.False(t, ok, "empty store must report not-found")

	require.NoError(t, store.Save("memory=8192,cpus=4"))

	got, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "memory=8192,cpus=4", got)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "memory=8192,cpus=4", string(data))
}

func TestFileStoreCreatesParentDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deeper")
	store := NewFileStore(dir)

	require.NoError(t, store.Save("memory=16384,cpus=8"))

	got, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "memory=16384,cpus=8", got)
}

func TestFileStoreClear(t *testing.T) {
	store := NewFileStore(t.TempDir())

	// Clearing an absent profile is not an error.
	require.NoError(t, store.Clear())

	require.NoError(t, store.Save("memory=4096,cpus=2"))
	require.NoError(t, store.Clear())

	_, ok := store.Load()
	assert.False(t, ok)
}

func TestDefaultDirHonorsOverride(t *testing.T) {
	t.Setenv("KNUP_HOME", "/tmp/knup-test-home")

	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/knup-test-home", dir)
}

func TestDefaultDirFallsBackToHome(t *testing.T) {
	t.Setenv("KNUP_HOME", "")

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory in this environment")
	}

	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".knup"), dir)
}
