package state

import (
	stderrors "errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/rmgrid/internal/api"
	"github.com/cristianoliveira/rmgrid/internal/tui/render"
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.catalog.Cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		if page, ok := m.catalog.Next(); ok {
			return m, m.startFetch(page)
		}
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		if page, ok := m.catalog.Prev(); ok {
			return m, m.startFetch(page)
		}
		return m, nil
	case key.Matches(msg, m.keys.SortBy):
		m.view.SortBy = m.view.SortBy.Next()
		m.refreshTable()
		return m, nil
	case key.Matches(msg, m.keys.SortOrder):
		m.view.SortOrder = m.view.SortOrder.Toggle()
		m.refreshTable()
		return m, nil
	case key.Matches(msg, m.keys.Filter):
		m.view.FilterStatus = m.view.FilterStatus.Next()
		m.refreshTable()
		return m, nil
	case key.Matches(msg, m.keys.DarkMode):
		return m, m.toggleDarkMode()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.table.SetColumns(render.Columns(m.width))
	m.table.SetWidth(m.width)
	m.table.SetHeight(m.tableHeight())
	return m, nil
}

// startFetch begins loading page, superseding any fetch in flight.
func (m *Model) startFetch(page int) tea.Cmd {
	wasLoading := m.catalog.Loading()
	req := m.catalog.Begin(m.ctx, page)
	m.logger.Debug("fetching characters", "page", req.Page, "generation", req.Generation)

	fetch := fetchCharactersCmd(m.fetcher, req)
	if wasLoading {
		return fetch
	}
	return tea.Batch(fetch, m.spinner.Tick)
}

func (m *Model) handleCharactersLoaded(msg charactersLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.catalog.Complete(msg.Request, msg.Page, msg.Err) {
		m.logger.Debug("discarding stale characters", "page", msg.Request.Page, "generation", msg.Request.Generation)
		return m, nil
	}
	if msg.Err != nil {
		detail := msg.Err.Error()
		var ferr *api.FetchError
		if stderrors.As(msg.Err, &ferr) {
			detail = ferr.Detail()
		}
		m.logger.Warn("fetch failed", "page", msg.Request.Page, "error", detail)
		return m, nil
	}
	m.refreshTable()
	m.table.GotoTop()
	return m, nil
}

// refreshTable recomputes the displayed list from the raw page and the
// current view options.
func (m *Model) refreshTable() {
	m.displayed = m.catalog.Displayed(m.view)
	m.table.SetRows(render.Rows(m.displayed))
	if m.table.Cursor() >= len(m.displayed) {
		m.table.SetCursor(0)
	}
}

// toggleDarkMode flips the flag and persists it before the next message is
// handled, so writes land in key-press order and none is pending at quit.
// A failed save is reported but the flag stays flipped.
func (m *Model) toggleDarkMode() tea.Cmd {
	m.applyDarkMode(!m.darkMode)
	if m.prefs == nil {
		return nil
	}
	if err := m.prefs.SetDarkMode(m.darkMode); err != nil {
		m.logger.Error("failed to save dark mode preference", "enabled", m.darkMode, "error", err)
		m.errorHandler.Error("Failed to save dark mode preference")
		return statusClearAfter(statusClearTimeout, m.statusSeq)
	}
	m.logger.Debug("dark mode saved", "enabled", m.darkMode)
	return nil
}

func (m *Model) applyDarkMode(dark bool) {
	m.darkMode = dark
	m.theme = render.ApplyDarkMode(dark)
	m.table.SetStyles(m.theme.TableStyles())
}

func (m *Model) clearStatus() {
	m.errorHandler.Clear()
}

func (m *Model) tableHeight() int {
	h := m.height - chromeLines
	if h < minTableHeight {
		h = minTableHeight
	}
	return h
}
