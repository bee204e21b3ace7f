package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/rmgrid/internal/colors"
	"github.com/cristianoliveira/rmgrid/internal/config"
	"github.com/cristianoliveira/rmgrid/internal/storage/sqlite"
	"github.com/cristianoliveira/rmgrid/internal/storage/tomlfile"
)

const (
	// BackendTOML selects the TOML file backend.
	BackendTOML = "toml"
	// BackendSQLite selects the SQLite backend.
	BackendSQLite = "sqlite"
)

var (
	_ Store = (*tomlfile.Store)(nil)
	_ Store = (*sqlite.Store)(nil)
)

// NewFromConfig creates a store for the configured storage_backend.
// config.Load must have run before.
func NewFromConfig() (Store, error) {
	return NewForBackend(config.Get("storage_backend", BackendTOML))
}

// NewForBackend creates a store for the given backend name.
// Unknown names and a failing SQLite open fall back to the TOML file.
func NewForBackend(backend string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendTOML:
		return newTOMLStore()
	case BackendSQLite:
		store, err := sqlite.New(filepath.Join(StateDir(), sqlite.FileName))
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite backend, falling back to toml: %v", err))
			return newTOMLStore()
		}
		return store, nil
	default:
		colors.Warning(fmt.Sprintf("unknown storage backend '%s', falling back to toml", backend))
		return newTOMLStore()
	}
}

func newTOMLStore() (Store, error) {
	store, err := tomlfile.New(filepath.Join(ConfigDir(), tomlfile.FileName))
	if err != nil {
		return nil, err
	}
	return store, nil
}

// ConfigDir returns the configured config directory.
func ConfigDir() string {
	return config.Get("config_dir", "")
}

// StateDir returns the configured state directory.
func StateDir() string {
	return config.Get("state_dir", "")
}
