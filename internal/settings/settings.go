// Package settings provides persisted UI preferences.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cristianoliveira/rmgrid/internal/storage"
)

// KeyDarkMode is the storage key for the dark mode flag.
const KeyDarkMode = "darkMode"

// ErrInvalidValue is returned when a stored preference cannot be decoded.
var ErrInvalidValue = errors.New("invalid preference value")

// Settings is a point-in-time view of the stored preferences.
type Settings struct {
	DarkMode bool `json:"darkMode" yaml:"darkMode"`
	// Stored reports whether darkMode has been written at least once.
	Stored bool `json:"stored" yaml:"stored"`
}

// Manager reads and writes preferences through a storage.Store.
type Manager struct {
	store storage.Store
}

// NewManager returns a manager over store.
func NewManager(store storage.Store) *Manager {
	return &Manager{store: store}
}

// DarkMode returns the persisted flag. A missing key means false.
// A value that is not a JSON boolean yields false and ErrInvalidValue.
func (m *Manager) DarkMode() (bool, error) {
	enabled, _, err := m.darkMode()
	return enabled, err
}

func (m *Manager) darkMode() (enabled bool, stored bool, err error) {
	raw, ok, err := m.store.Get(KeyDarkMode)
	if err != nil {
		return false, false, fmt.Errorf("read %s: %w", KeyDarkMode, err)
	}
	if !ok {
		return false, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &enabled); err != nil {
		return false, true, fmt.Errorf("%w: %s=%q", ErrInvalidValue, KeyDarkMode, raw)
	}
	return enabled, true, nil
}

// SetDarkMode persists enabled.
func (m *Manager) SetDarkMode(enabled bool) error {
	data, err := json.Marshal(enabled)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyDarkMode, err)
	}
	if err := m.store.Set(KeyDarkMode, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", KeyDarkMode, err)
	}
	return nil
}

// ToggleDarkMode flips the persisted flag and returns the new value.
// A corrupt stored value is treated as false, so the toggle enables it.
func (m *Manager) ToggleDarkMode() (bool, error) {
	current, err := m.DarkMode()
	if err != nil && !errors.Is(err, ErrInvalidValue) {
		return false, err
	}
	next := !current
	if err := m.SetDarkMode(next); err != nil {
		return current, err
	}
	return next, nil
}

// Reset removes every stored preference.
func (m *Manager) Reset() error {
	if err := m.store.Delete(KeyDarkMode); err != nil {
		return fmt.Errorf("reset %s: %w", KeyDarkMode, err)
	}
	return nil
}

// Snapshot returns the current settings.
func (m *Manager) Snapshot() (Settings, error) {
	enabled, stored, err := m.darkMode()
	if err != nil {
		return Settings{}, err
	}
	return Settings{DarkMode: enabled, Stored: stored}, nil
}
