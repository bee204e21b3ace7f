/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package cmd

import (
	"io"
	"os"
	"time"

	"github.com/cristianoliveira/rmgrid/internal/api"
	"github.com/cristianoliveira/rmgrid/internal/config"
	"github.com/cristianoliveira/rmgrid/internal/logging"
	"github.com/cristianoliveira/rmgrid/internal/settings"
	"github.com/cristianoliveira/rmgrid/internal/storage"
	"github.com/cristianoliveira/rmgrid/internal/tui/app"
	"github.com/cristianoliveira/rmgrid/internal/version"
)

// PreferencesClient is the preference surface used by the commands.
type PreferencesClient interface {
	DarkMode() (bool, error)
	SetDarkMode(enabled bool) error
	ToggleDarkMode() (bool, error)
	Reset() error
	Snapshot() (settings.Settings, error)
}

// Deps holds the collaborators the commands are built with.
type Deps struct {
	// NewFetcher builds the API client after configuration is loaded.
	NewFetcher func() api.CharacterFetcher
	// OpenPreferences opens the configured preference store. The returned
	// func closes it.
	OpenPreferences func() (PreferencesClient, func() error, error)
	TUI             app.Client
	// LoadConfig runs before every command.
	LoadConfig func()
	In         io.Reader
}

// DefaultDeps wires the production implementations.
func DefaultDeps() Deps {
	return Deps{
		NewFetcher:      newAPIClient,
		OpenPreferences: openPreferences,
		TUI:             app.NewDefaultClient(nil),
		LoadConfig:      config.Load,
		In:              os.Stdin,
	}
}

func newAPIClient() api.CharacterFetcher {
	return api.NewClient(
		api.WithBaseURL(config.Get("api_base_url", api.DefaultBaseURL)),
		api.WithTimeout(time.Duration(config.GetInt("request_timeout", 15))*time.Second),
		api.WithUserAgent(version.UserAgent()),
		api.WithLogger(logging.GetGlobal()),
	)
}

func openPreferences() (PreferencesClient, func() error, error) {
	store, err := storage.NewFromConfig()
	if err != nil {
		return nil, nil, err
	}
	return settings.NewManager(store), store.Close, nil
}
