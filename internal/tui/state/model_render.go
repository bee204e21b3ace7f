package state

import (
	"strings"

	"github.com/cristianoliveira/rmgrid/internal/api"
	"github.com/cristianoliveira/rmgrid/internal/errors"
	"github.com/cristianoliveira/rmgrid/internal/tui/render"
)

// View renders the browser.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render(render.Title))
	b.WriteString("\n")
	b.WriteString(render.Controls(render.ControlsState{View: m.view, DarkMode: m.darkMode}, m.theme))
	b.WriteString("\n\n")

	switch {
	case m.catalog.Loading() || (!m.catalog.Populated() && m.catalog.Err() == nil):
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.theme.Text.Render(render.LoadingText))
		b.WriteString("\n")
	case m.catalog.Err() != nil:
		b.WriteString(render.ErrorLine(api.ErrFetchFailed.Error(), m.theme))
		b.WriteString("\n")
	default:
		m.renderGrid(&b)
		b.WriteString("\n")
		b.WriteString(render.Pagination(render.PaginationState{
			Page:    m.catalog.Page(),
			Pages:   m.catalog.Info().Pages,
			CanPrev: m.catalog.CanPrev(),
			CanNext: m.catalog.CanNext(),
		}, m.theme))
		b.WriteString("\n")
	}

	if status, ok := m.errorHandler.Latest(); ok {
		b.WriteString(m.renderStatus(status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderGrid(b *strings.Builder) {
	if len(m.displayed) == 0 {
		b.WriteString(m.theme.Muted.Render(render.EmptyText))
		b.WriteString("\n")
		return
	}
	b.WriteString(m.table.View())
	b.WriteString("\n")
	if cursor := m.table.Cursor(); cursor >= 0 && cursor < len(m.displayed) {
		b.WriteString(render.Detail(m.displayed[cursor], m.theme))
		b.WriteString("\n")
	}
}

func (m *Model) renderStatus(status errors.Message) string {
	text := status.Type.String() + ": " + status.Text
	if status.Type == errors.MessageTypeError {
		return m.theme.Error.Render(text)
	}
	return m.theme.Status.Render(text)
}
