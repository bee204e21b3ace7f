/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package cmd

import (
	stderrors "errors"
	"fmt"

	"github.com/cristianoliveira/rmgrid/internal/colors"
	"github.com/cristianoliveira/rmgrid/internal/settings"
	"github.com/spf13/cobra"
)

const darkModeCommandLong = `Show or change the saved dark mode preference.

USAGE:
    rmgrid dark-mode [on|off|toggle]

Without an argument the current value is printed.`

// NewDarkModeCmd creates the dark-mode command.
func NewDarkModeCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:       "dark-mode [on|off|toggle]",
		Short:     "Show or change the dark mode preference",
		Long:      darkModeCommandLong,
		ValidArgs: []string{"on", "off", "toggle"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, closePrefs, err := deps.OpenPreferences()
			if err != nil {
				return fmt.Errorf("failed to open preferences: %w", err)
			}
			defer closePrefs()

			action := ""
			if len(args) == 1 {
				action = args[0]
			}
			return runDarkMode(cmd, prefs, action)
		},
	}
}

func runDarkMode(cmd *cobra.Command, prefs PreferencesClient, action string) error {
	var (
		enabled bool
		err     error
	)
	switch action {
	case "":
		enabled, err = prefs.DarkMode()
		if stderrors.Is(err, settings.ErrInvalidValue) {
			colors.Warning(fmt.Sprintf("ignoring stored value: %v", err))
			err = nil
		}
		if err != nil {
			return fmt.Errorf("failed to read dark mode: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Dark mode: %s\n", onOff(enabled))
		return nil
	case "on", "off":
		enabled = action == "on"
		if err := prefs.SetDarkMode(enabled); err != nil {
			return fmt.Errorf("failed to save dark mode: %w", err)
		}
	case "toggle":
		enabled, err = prefs.ToggleDarkMode()
		if err != nil {
			return fmt.Errorf("failed to save dark mode: %w", err)
		}
	}
	colors.Success(fmt.Sprintf("Dark mode %s", onOff(enabled)))
	return nil
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
