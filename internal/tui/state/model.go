// Package state holds the Bubble Tea model of the character browser.
package state

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/rmgrid/internal/api"
	"github.com/cristianoliveira/rmgrid/internal/catalog"
	"github.com/cristianoliveira/rmgrid/internal/domain"
	"github.com/cristianoliveira/rmgrid/internal/errors"
	"github.com/cristianoliveira/rmgrid/internal/logging"
	"github.com/cristianoliveira/rmgrid/internal/tui/render"
)

const (
	defaultViewportWidth  = 120
	defaultViewportHeight = 30
	// title, controls, blank, detail, blank, pagination, status, help
	chromeLines        = 9
	minTableHeight     = 3
	statusClearTimeout = 5 * time.Second
)

// Preferences persists the dark mode flag.
type Preferences interface {
	DarkMode() (bool, error)
	SetDarkMode(enabled bool) error
}

// Options configures a Model.
type Options struct {
	Fetcher api.CharacterFetcher
	// Preferences may be nil, in which case dark mode is not persisted.
	Preferences Preferences
	StartPage   int
	View        domain.ViewOptions
	Logger      logging.Logger
	Context     context.Context
}

// Model is the browser's Bubble Tea model.
type Model struct {
	ctx     context.Context
	fetcher api.CharacterFetcher
	prefs   Preferences
	logger  logging.Logger

	catalog   *catalog.Catalog
	view      domain.ViewOptions
	displayed []domain.Character

	darkMode bool
	theme    render.Theme

	keys    keyMap
	help    help.Model
	table   table.Model
	spinner spinner.Model
	width   int
	height  int

	errorHandler *errors.TUIHandler
	statusSeq    int
}

// NewModel creates the browser model. The first fetch starts in Init.
func NewModel(opts Options) (*Model, error) {
	if opts.Fetcher == nil {
		return nil, stderrors.New("tui: character fetcher is required")
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobal()
	}
	view := opts.View
	if view == (domain.ViewOptions{}) {
		view = domain.DefaultViewOptions()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:     opts.Context,
		fetcher: opts.Fetcher,
		prefs:   opts.Preferences,
		logger:  opts.Logger.With("component", "tui"),
		catalog: catalog.New(opts.StartPage),
		view:    view,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		width:   defaultViewportWidth,
		height:  defaultViewportHeight,
	}
	m.table = table.New(
		table.WithColumns(render.Columns(m.width)),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
		table.WithKeyMap(tableKeyMap(m.keys)),
	)

	m.errorHandler = errors.NewTUIHandler(func(errors.Message) {
		m.statusSeq++
	})

	dark := false
	if m.prefs != nil {
		var err error
		dark, err = m.prefs.DarkMode()
		if err != nil {
			m.logger.Warn("failed to load dark mode preference", "error", err)
			m.errorHandler.Warning("Could not read dark mode preference, using light mode")
			dark = false
		}
	}
	m.applyDarkMode(dark)
	return m, nil
}

func tableKeyMap(keys keyMap) table.KeyMap {
	return table.KeyMap{
		LineUp:     keys.Up,
		LineDown:   keys.Down,
		PageUp:     key.NewBinding(key.WithKeys("pgup")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown")),
		GotoTop:    key.NewBinding(key.WithKeys("home", "g")),
		GotoBottom: key.NewBinding(key.WithKeys("end", "G")),
	}
}

// Init starts the fetch of the start page.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.startFetch(m.catalog.Page())}
	if _, ok := m.errorHandler.Latest(); ok {
		cmds = append(cmds, statusClearAfter(statusClearTimeout, m.statusSeq))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case charactersLoadedMsg:
		return m.handleCharactersLoaded(msg)
	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.clearStatus()
		}
		return m, nil
	case spinner.TickMsg:
		if !m.catalog.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Page returns the page being shown or loaded.
func (m *Model) Page() int { return m.catalog.Page() }

// PageInfo returns the pagination metadata of the last successful fetch.
func (m *Model) PageInfo() domain.PageInfo { return m.catalog.Info() }

// Loading reports whether a fetch is in flight.
func (m *Model) Loading() bool { return m.catalog.Loading() }

// Err returns the error of the latest fetch, if it failed.
func (m *Model) Err() error { return m.catalog.Err() }

// CanPrev reports whether the Previous button is enabled.
func (m *Model) CanPrev() bool { return m.catalog.CanPrev() }

// CanNext reports whether the Next button is enabled.
func (m *Model) CanNext() bool { return m.catalog.CanNext() }

// ViewOptions returns the current sort and filter settings.
func (m *Model) ViewOptions() domain.ViewOptions { return m.view }

// Displayed returns the filtered and sorted characters shown in the grid.
func (m *Model) Displayed() []domain.Character {
	return append([]domain.Character(nil), m.displayed...)
}

// DarkMode reports whether dark mode is on.
func (m *Model) DarkMode() bool { return m.darkMode }

// StatusMessage returns the transient status line, if any.
func (m *Model) StatusMessage() (errors.Message, bool) {
	return m.errorHandler.Latest()
}
