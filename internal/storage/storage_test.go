package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cristianoliveira/rmgrid/internal/colors"
	"github.com/cristianoliveira/rmgrid/internal/config"
	"github.com/cristianoliveira/rmgrid/internal/storage/sqlite"
	"github.com/cristianoliveira/rmgrid/internal/storage/tomlfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConfig(t *testing.T, backend string) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("RMGRID_STORAGE_BACKEND", backend)
	colors.SetOutput(io.Discard, io.Discard)
	t.Cleanup(func() { colors.SetOutput(nil, nil) })
	config.Load()
	return tmp
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, ok, err := s.Get("darkMode")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("darkMode", "true"))
	require.NoError(t, s.Set("a", "1"))
	v, ok, err := s.Get("darkMode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "darkMode"}, keys)

	require.NoError(t, s.Delete("darkMode"))
	_, ok, err = s.Get("darkMode")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Close())
	_, _, err = s.Get("a")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Set("a", "2"), ErrClosed)
	assert.ErrorIs(t, s.Delete("a"), ErrClosed)
	_, err = s.Keys()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestNewFromConfigDefaultsToTOML(t *testing.T) {
	tmp := setupConfig(t, "")

	store, err := NewFromConfig()
	require.NoError(t, err)
	defer store.Close()

	toml, ok := store.(*tomlfile.Store)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(tmp, "config", "rmgrid", tomlfile.FileName), toml.Path())
}

func TestNewFromConfigSQLite(t *testing.T) {
	tmp := setupConfig(t, "sqlite")

	store, err := NewFromConfig()
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*sqlite.Store)
	require.True(t, ok)
	_, err = os.Stat(filepath.Join(tmp, "state", "rmgrid", sqlite.FileName))
	assert.NoError(t, err)
}

func TestNewForBackendUnknownFallsBack(t *testing.T) {
	setupConfig(t, "")

	store, err := NewForBackend("redis")
	require.NoError(t, err)
	defer store.Close()
	_, ok := store.(*tomlfile.Store)
	assert.True(t, ok)
}

func TestNewForBackendSQLiteFailureFallsBack(t *testing.T) {
	tmp := setupConfig(t, "")
	blocker := filepath.Join(tmp, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	t.Setenv("RMGRID_STATE_DIR", blocker)
	config.Load()

	store, err := NewForBackend(BackendSQLite)
	require.NoError(t, err)
	defer store.Close()
	_, ok := store.(*tomlfile.Store)
	assert.True(t, ok)
}
