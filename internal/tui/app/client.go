package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/rmgrid/internal/colors"
	"github.com/cristianoliveira/rmgrid/internal/tui/state"
)

// Client defines dependencies needed by the tui command.
type Client interface {
	CreateModel(opts state.Options) (tea.Model, error)
	RunProgram(ctx context.Context, model tea.Model) error
}

// DefaultClient builds the browser model and runs it.
type DefaultClient struct {
	programRunner ProgramRunner
}

// NewDefaultClient creates a default TUI client adapter.
// If programRunner is nil, a DefaultProgramRunner is used.
func NewDefaultClient(programRunner ProgramRunner) *DefaultClient {
	if programRunner == nil {
		programRunner = NewDefaultProgramRunner()
	}
	return &DefaultClient{programRunner: programRunner}
}

// CreateModel builds the browser model.
func (d *DefaultClient) CreateModel(opts state.Options) (tea.Model, error) {
	return state.NewModel(opts)
}

// RunProgram starts the bubbletea program using the configured ProgramRunner.
func (d *DefaultClient) RunProgram(ctx context.Context, model tea.Model) error {
	err := d.programRunner.Run(ctx, model)
	if err != nil {
		colors.Error(fmt.Sprintf("Error running TUI: %v", err))
		return err
	}
	return nil
}
