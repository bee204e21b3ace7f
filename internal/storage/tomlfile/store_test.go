package tomlfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "nested", FileName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetMissingFile(t *testing.T) {
	s := newTestStore(t)

	v, ok, err := s.Get("darkMode")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, v)
}

func TestSetGetDelete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("darkMode", "true"))
	v, ok, err := s.Get("darkMode")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "true", v)

	require.NoError(t, s.Set("other", "x"))
	keys, err := s.Keys()
	require.NoError(t, err)
	require.Equal(t, []string{"darkMode", "other"}, keys)

	require.NoError(t, s.Delete("darkMode"))
	require.NoError(t, s.Delete("darkMode"))
	_, ok, err = s.Get("darkMode")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	first, err := New(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("darkMode", "true"))
	require.NoError(t, first.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "darkMode")

	second, err := New(path)
	require.NoError(t, err)
	v, ok, err := second.Get("darkMode")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "true", v)
}

func TestCorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("not = [valid"), 0o644))

	_, _, err := s.Get("darkMode")
	require.Error(t, err)
	require.Error(t, s.Set("darkMode", "true"))
}

func TestClosed(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Close())

	_, _, err := s.Get("k")
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, s.Set("k", "v"), ErrClosed)
	require.ErrorIs(t, s.Delete("k"), ErrClosed)
	_, err = s.Keys()
	require.ErrorIs(t, err, ErrClosed)
}

func TestLockTimesOutWhenHeld(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "x.lock")
	held := newLock(dir)
	require.NoError(t, held.acquire())

	waiting := newLock(dir)
	waiting.timeout = 100 * time.Millisecond
	require.Error(t, waiting.acquire())

	require.NoError(t, held.release())
	require.NoError(t, waiting.acquire())
	require.NoError(t, waiting.release())
}

func TestWriteReleasesLock(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Set("a", "1"))
	_, err := os.Stat(s.Path() + ".lock")
	require.True(t, os.IsNotExist(err))
}
