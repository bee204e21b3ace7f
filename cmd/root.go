/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cristianoliveira/rmgrid/internal/colors"
	"github.com/cristianoliveira/rmgrid/internal/config"
	"github.com/cristianoliveira/rmgrid/internal/errors"
	"github.com/cristianoliveira/rmgrid/internal/logging"
	"github.com/cristianoliveira/rmgrid/internal/version"
	"github.com/spf13/cobra"
)

const rootLong = `Browse Rick and Morty characters one page at a time.

Running rmgrid without a command opens the interactive browser.`

// NewRootCmd builds the command tree with the given dependencies.
func NewRootCmd(deps Deps) *cobra.Command {
	var startPage int

	rootCmd := &cobra.Command{
		Use:           "rmgrid",
		Short:         "Browse Rick and Morty characters in the terminal",
		Long:          rootLong,
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, deps)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.ShutdownGlobal()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, deps, startPage)
		},
	}
	rootCmd.Flags().IntVar(&startPage, "page", 0, "Page to open (default from start_page)")

	// Hide the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.AddCommand(
		NewTUICmd(deps),
		NewListCmd(deps),
		NewDarkModeCmd(deps),
		NewSettingsCmd(deps),
		NewVersionCmd(),
	)

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != rootCmd {
			fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
			return
		}
		printHelpText(cmd)
	})
	return rootCmd
}

// setup loads configuration and starts logging for the command being run.
func setup(cmd *cobra.Command, deps Deps) error {
	if deps.LoadConfig != nil {
		deps.LoadConfig()
	}
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))

	if err := logging.InitGlobal(cmd.Name()); err != nil {
		colors.Warning(fmt.Sprintf("file logging disabled: %v", err))
		return nil
	}
	logging.Debug("configuration loaded", "config", config.Snapshot())
	return nil
}

// Execute runs the CLI and reports any error through the CLI handler.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd(DefaultDeps()).ExecuteContext(ctx)
	if err != nil {
		errors.NewCLIHandler().Error(err.Error())
	}
	return err
}

func printHelpText(cmd *cobra.Command) {
	commandOrder := []string{
		"tui",
		"list",
		"dark-mode",
		"settings",
		"version",
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Name(), found.Short))
	}

	helpText := fmt.Sprintf(`rmgrid %s

%s

USAGE:
    rmgrid [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    --page <n>      Page to open in the browser
    -h, --help      Show help message
    -v, --version   Show version
`, version.String(), cmd.Short, strings.Join(cmdLines, "\n"))
	fmt.Fprint(cmd.OutOrStdout(), helpText)
}
