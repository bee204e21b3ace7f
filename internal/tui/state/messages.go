package state

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/rmgrid/internal/api"
	"github.com/cristianoliveira/rmgrid/internal/catalog"
	"github.com/cristianoliveira/rmgrid/internal/domain"
)

// charactersLoadedMsg carries the result of one page fetch.
type charactersLoadedMsg struct {
	Request catalog.Request
	Page    *domain.CharacterPage
	Err     error
}

// statusClearMsg clears the status line if it still shows message seq.
type statusClearMsg struct {
	seq int
}

func fetchCharactersCmd(fetcher api.CharacterFetcher, req catalog.Request) tea.Cmd {
	return func() tea.Msg {
		page, err := fetcher.FetchCharacters(req.Ctx, req.Page)
		return charactersLoadedMsg{Request: req, Page: page, Err: err}
	}
}

func statusClearAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}
