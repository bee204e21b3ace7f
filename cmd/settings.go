/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cristianoliveira/rmgrid/internal/colors"
	"github.com/cristianoliveira/rmgrid/internal/config"
	"github.com/spf13/cobra"
)

const (
	settingsCommandLong = `Manage saved UI preferences.

USAGE:
    rmgrid settings <subcommand>

SUBCOMMANDS:
    reset    Remove saved preferences
    show     Display saved preferences

EXAMPLES:
    # Reset preferences with confirmation
    rmgrid settings reset

    # Reset preferences without confirmation
    rmgrid settings reset --force

    # Show current preferences
    rmgrid settings show`
	resetCommandLong = `Remove saved preferences so defaults apply again.

USAGE:
    rmgrid settings reset [OPTIONS]

OPTIONS:
    --force    Reset without confirmation
    -h, --help Show this help`
	showCommandLong = `Display saved preferences in JSON format.

USAGE:
    rmgrid settings show`
)

// settingsView is the JSON shape printed by settings show.
type settingsView struct {
	DarkMode       bool   `json:"darkMode"`
	Stored         bool   `json:"stored"`
	StorageBackend string `json:"storageBackend"`
}

// NewSettingsCmd creates the settings command.
func NewSettingsCmd(deps Deps) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage saved preferences",
		Long:  settingsCommandLong,
	}
	settingsCmd.AddCommand(newResetCmd(deps), newShowCmd(deps))
	return settingsCmd
}

func newResetCmd(deps Deps) *cobra.Command {
	var force bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove saved preferences",
		Long:  resetCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, closePrefs, err := deps.OpenPreferences()
			if err != nil {
				return fmt.Errorf("failed to open preferences: %w", err)
			}
			defer closePrefs()
			return runResetCmd(cmd, deps.In, prefs, force)
		},
	}
	resetCmd.Flags().BoolVar(&force, "force", false, "Reset without confirmation")
	return resetCmd
}

func newShowCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display saved preferences",
		Long:  showCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, closePrefs, err := deps.OpenPreferences()
			if err != nil {
				return fmt.Errorf("failed to open preferences: %w", err)
			}
			defer closePrefs()
			return runShowCmd(cmd, prefs)
		},
	}
}

func runResetCmd(cmd *cobra.Command, in io.Reader, prefs PreferencesClient, force bool) error {
	// Skip confirmation if --force flag is set or running in CI
	if !force && os.Getenv("CI") == "" {
		if !confirmReset(in, cmd.OutOrStdout()) {
			colors.Info("Operation cancelled")
			return nil
		}
	}

	if err := prefs.Reset(); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	colors.Success("Settings reset to defaults")
	return nil
}

func runShowCmd(cmd *cobra.Command, prefs PreferencesClient) error {
	snapshot, err := prefs.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	data, err := json.MarshalIndent(settingsView{
		DarkMode:       snapshot.DarkMode,
		Stored:         snapshot.Stored,
		StorageBackend: config.Get("storage_backend", "toml"),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// confirmReset asks the user for confirmation before resetting settings.
func confirmReset(in io.Reader, out io.Writer) bool {
	if in == nil {
		return false
	}
	reader := bufio.NewReader(in)
	fmt.Fprint(out, "Are you sure you want to reset all settings to defaults? (y/N): ")
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}
