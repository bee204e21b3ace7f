/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package cmd

import (
	"fmt"

	"github.com/cristianoliveira/rmgrid/internal/colors"
	"github.com/cristianoliveira/rmgrid/internal/config"
	"github.com/cristianoliveira/rmgrid/internal/domain"
	"github.com/cristianoliveira/rmgrid/internal/logging"
	"github.com/cristianoliveira/rmgrid/internal/tui/state"
	"github.com/spf13/cobra"
)

const tuiCommandLong = `Open the interactive character browser.

KEYS:
    n / →      Next page
    p / ←      Previous page
    s          Cycle sort field (name, date created)
    o          Toggle sort order
    f          Cycle status filter (all, alive, dead, unknown)
    d          Toggle dark mode (saved immediately)
    j / k      Move the cursor
    ?          Show all keys
    q          Quit`

// NewTUICmd creates the tui command.
func NewTUICmd(deps Deps) *cobra.Command {
	var page int
	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive browser",
		Long:  tuiCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, deps, page)
		},
	}
	tuiCmd.Flags().IntVar(&page, "page", 0, "Page to open (default from start_page)")
	return tuiCmd
}

func runTUI(cmd *cobra.Command, deps Deps, page int) error {
	if page == 0 {
		page = config.GetInt("start_page", 1)
	}
	if page < 1 {
		return fmt.Errorf("invalid page %d: must be at least 1", page)
	}

	opts := state.Options{
		Fetcher:   deps.NewFetcher(),
		StartPage: page,
		View:      viewOptionsFromConfig(),
		Logger:    logging.GetGlobal(),
		Context:   cmd.Context(),
	}

	prefs, closePrefs, err := deps.OpenPreferences()
	if err != nil {
		colors.Warning(fmt.Sprintf("dark mode will not be saved: %v", err))
		logging.Warn("failed to open preference store", "error", err)
	} else {
		defer closePrefs()
		opts.Preferences = prefs
	}

	model, err := deps.TUI.CreateModel(opts)
	if err != nil {
		return fmt.Errorf("failed to create browser: %w", err)
	}
	return deps.TUI.RunProgram(cmd.Context(), model)
}

// viewOptionsFromConfig returns the configured default sort and filter.
// Values were validated when the configuration was loaded.
func viewOptionsFromConfig() domain.ViewOptions {
	opts := domain.DefaultViewOptions()
	if by, err := domain.ParseSortByField(config.Get("default_sort_by", "")); err == nil {
		opts.SortBy = by
	}
	if order, err := domain.ParseSortOrder(config.Get("default_sort_order", "")); err == nil {
		opts.SortOrder = order
	}
	if status, err := domain.ParseStatusFilter(config.Get("default_status_filter", "")); err == nil {
		opts.FilterStatus = status
	}
	return opts
}
