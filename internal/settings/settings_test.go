package settings

import (
	"errors"
	"testing"

	"github.com/cristianoliveira/rmgrid/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	storage.Store
	err error
}

func (f failingStore) Set(key, value string) error { return f.err }

func TestDarkModeAbsentIsFalse(t *testing.T) {
	m := NewManager(storage.NewMemoryStore())

	enabled, err := m.DarkMode()
	require.NoError(t, err)
	assert.False(t, enabled)

	snap, err := m.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, Settings{DarkMode: false, Stored: false}, snap)
}

func TestSetDarkModeStoresJSONBoolean(t *testing.T) {
	store := storage.NewMemoryStore()
	m := NewManager(store)

	require.NoError(t, m.SetDarkMode(true))
	raw, ok, err := store.Get(KeyDarkMode)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "true", raw)

	require.NoError(t, m.SetDarkMode(false))
	raw, _, _ = store.Get(KeyDarkMode)
	assert.Equal(t, "false", raw)
}

func TestToggleTwiceRestores(t *testing.T) {
	for _, initial := range []bool{false, true} {
		m := NewManager(storage.NewMemoryStore())
		require.NoError(t, m.SetDarkMode(initial))

		first, err := m.ToggleDarkMode()
		require.NoError(t, err)
		assert.Equal(t, !initial, first)

		second, err := m.ToggleDarkMode()
		require.NoError(t, err)
		assert.Equal(t, initial, second)

		stored, err := m.DarkMode()
		require.NoError(t, err)
		assert.Equal(t, initial, stored)
	}
}

func TestCorruptValue(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(KeyDarkMode, "yes please"))
	m := NewManager(store)

	enabled, err := m.DarkMode()
	assert.False(t, enabled)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = m.Snapshot()
	assert.ErrorIs(t, err, ErrInvalidValue)

	toggled, err := m.ToggleDarkMode()
	require.NoError(t, err)
	assert.True(t, toggled)
}

func TestReset(t *testing.T) {
	m := NewManager(storage.NewMemoryStore())
	require.NoError(t, m.SetDarkMode(true))
	require.NoError(t, m.Reset())

	snap, err := m.Snapshot()
	require.NoError(t, err)
	assert.False(t, snap.Stored)
	assert.False(t, snap.DarkMode)
}

func TestWriteFailure(t *testing.T) {
	boom := errors.New("disk full")
	m := NewManager(failingStore{Store: storage.NewMemoryStore(), err: boom})

	assert.ErrorIs(t, m.SetDarkMode(true), boom)

	current, err := m.ToggleDarkMode()
	assert.ErrorIs(t, err, boom)
	assert.False(t, current)
}

func TestClosedStore(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Close())
	m := NewManager(store)

	_, err := m.DarkMode()
	assert.ErrorIs(t, err, storage.ErrClosed)
	assert.ErrorIs(t, m.Reset(), storage.ErrClosed)
}
