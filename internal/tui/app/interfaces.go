// Package app provides TUI application adapters for command wiring.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgramRunner defines the interface for running a bubbletea program.
type ProgramRunner interface {
	// Run starts the bubbletea program with the given model and blocks
	// until it exits or ctx is cancelled.
	Run(ctx context.Context, model tea.Model) error
}

// DefaultProgramRunner wraps tea.NewProgram with the alternate screen.
type DefaultProgramRunner struct {
	options []tea.ProgramOption
}

// NewDefaultProgramRunner creates a new DefaultProgramRunner. Extra
// options are appended to the defaults.
func NewDefaultProgramRunner(options ...tea.ProgramOption) *DefaultProgramRunner {
	return &DefaultProgramRunner{options: options}
}

// Run starts a bubbletea program with the given model.
func (r *DefaultProgramRunner) Run(ctx context.Context, model tea.Model) error {
	opts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}, r.options...)
	p := tea.NewProgram(model, opts...)

	_, err := p.Run()
	return err
}
