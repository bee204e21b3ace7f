package state

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/rmgrid/internal/api"
	"github.com/cristianoliveira/rmgrid/internal/domain"
	tuierrors "github.com/cristianoliveira/rmgrid/internal/errors"
	"github.com/cristianoliveira/rmgrid/internal/logging"
	"github.com/cristianoliveira/rmgrid/internal/settings"
	"github.com/cristianoliveira/rmgrid/internal/storage/tomlfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu    sync.Mutex
	pages map[int]*domain.CharacterPage
	err   error
	calls []int
}

func (f *fakeFetcher) FetchCharacters(ctx context.Context, page int) (*domain.CharacterPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, page)
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.pages[page]
	if !ok {
		return nil, &api.FetchError{Page: page, StatusCode: http.StatusNotFound}
	}
	return p, nil
}

type fakePrefs struct {
	dark    bool
	loadErr error
	saveErr error
	saved   []bool
}

func (p *fakePrefs) DarkMode() (bool, error) { return p.dark, p.loadErr }

func (p *fakePrefs) SetDarkMode(enabled bool) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.dark = enabled
	p.saved = append(p.saved, enabled)
	return nil
}

func characterPage(n, pages, size int) *domain.CharacterPage {
	results := make([]domain.Character, size)
	for i := range results {
		id := (n-1)*size + i + 1
		status := domain.StatusAlive
		if i%4 == 0 {
			status = domain.StatusDead
		}
		results[i] = domain.Character{
			ID:       id,
			Name:     fmt.Sprintf("Character %03d", id),
			Status:   status,
			Species:  "Human",
			Gender:   "Female",
			Origin:   domain.Place{Name: "Earth"},
			Location: domain.Place{Name: "Citadel"},
			Episode:  []string{"e1"},
			Created:  fmt.Sprintf("2017-11-%02dT18:48:46.250Z", (id%28)+1),
		}
	}
	return &domain.CharacterPage{Info: domain.PageInfo{Count: pages * size, Pages: pages}, Results: results}
}

func newTestModel(t *testing.T, fetcher api.CharacterFetcher, prefs Preferences) *Model {
	t.Helper()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(false) })
	opts := Options{Fetcher: fetcher, Logger: logging.Nop()}
	if prefs != nil {
		opts.Preferences = prefs
	}
	m, err := NewModel(opts)
	require.NoError(t, err)
	return m
}

// drain runs cmd and every command batched inside it, returning the
// resulting messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// deliver runs cmd and feeds the results that are not spinner ticks back
// into the model.
func deliver(m *Model, cmd tea.Cmd) {
	for _, msg := range drain(cmd) {
		if _, ok := msg.(spinner.TickMsg); ok {
			continue
		}
		m.Update(msg)
	}
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func loadedMessages(msgs []tea.Msg) []charactersLoadedMsg {
	var out []charactersLoadedMsg
	for _, msg := range msgs {
		if loaded, ok := msg.(charactersLoadedMsg); ok {
			out = append(out, loaded)
		}
	}
	return out
}

func TestNewModelRequiresFetcher(t *testing.T) {
	_, err := NewModel(Options{})
	assert.Error(t, err)
}

func TestInitialLoadingView(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{}, nil)
	cmd := m.Init()
	require.NotNil(t, cmd)

	assert.True(t, m.Loading())
	view := m.View()
	assert.Contains(t, view, "Loading characters...")
	assert.NotContains(t, view, "Page 1 of")
}

func TestFirstPageWith42Pages(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[int]*domain.CharacterPage{1: characterPage(1, 42, 20)}}
	m := newTestModel(t, fetcher, nil)
	deliver(m, m.Init())

	assert.False(t, m.Loading())
	assert.False(t, m.CanPrev())
	assert.True(t, m.CanNext())
	assert.Len(t, m.Displayed(), 20)

	view := m.View()
	assert.Contains(t, view, "Page 1 of 42")
	assert.Contains(t, view, "[Previous]")
	assert.Contains(t, view, "[Next]")
	assert.Contains(t, view, "Character 001")
	assert.Contains(t, view, "origin: Earth")
	assert.Equal(t, []int{1}, fetcher.calls)
}

func TestServerErrorShowsFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := api.NewClient(api.WithBaseURL(srv.URL), api.WithLogger(logging.Nop()))
	m := newTestModel(t, client, nil)
	deliver(m, m.Init())

	require.Error(t, m.Err())
	assert.ErrorIs(t, m.Err(), api.ErrFetchFailed)

	view := m.View()
	assert.Contains(t, view, "Error: Failed to fetch characters")
	assert.NotContains(t, view, "Species")
	assert.NotContains(t, view, "Page 1 of")
	assert.NotContains(t, view, "[Previous]")
}

func TestErrorStateAllowsPaging(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("offline")}
	m := newTestModel(t, fetcher, nil)
	deliver(m, m.Init())
	require.Error(t, m.Err())
	assert.True(t, m.CanNext(), "next stays enabled while the page count is unknown")

	fetcher.mu.Lock()
	fetcher.err = nil
	fetcher.pages = map[int]*domain.CharacterPage{2: characterPage(2, 42, 20)}
	fetcher.mu.Unlock()

	_, cmd := m.Update(runeKey("n"))
	assert.Equal(t, 2, m.Page())
	deliver(m, cmd)

	assert.NoError(t, m.Err())
	assert.Contains(t, m.View(), "Page 2 of 42")
	assert.True(t, m.CanPrev())
}

func TestPaginationKeys(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[int]*domain.CharacterPage{
		1: characterPage(1, 2, 3),
		2: characterPage(2, 2, 3),
	}}
	m := newTestModel(t, fetcher, nil)
	deliver(m, m.Init())

	_, cmd := m.Update(runeKey("p"))
	assert.Nil(t, cmd, "previous is disabled on page 1")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	deliver(m, cmd)
	assert.Equal(t, 2, m.Page())
	assert.False(t, m.CanNext())

	_, cmd = m.Update(runeKey("n"))
	assert.Nil(t, cmd, "next is disabled on the last page")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	deliver(m, cmd)
	assert.Equal(t, 1, m.Page())
	assert.Equal(t, []int{1, 2, 1}, fetcher.calls)
}

func TestStaleResponseIsDropped(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[int]*domain.CharacterPage{
		1: characterPage(1, 42, 20),
		2: characterPage(2, 42, 20),
		3: characterPage(3, 42, 20),
	}}
	m := newTestModel(t, fetcher, nil)
	deliver(m, m.Init())

	_, toPage2 := m.Update(runeKey("n"))
	_, toPage3 := m.Update(runeKey("n"))
	assert.Equal(t, 3, m.Page())

	page3 := loadedMessages(drain(toPage3))
	page2 := loadedMessages(drain(toPage2))
	require.Len(t, page3, 1)
	require.Len(t, page2, 1)

	m.Update(page3[0])
	m.Update(page2[0])

	assert.Equal(t, 3, m.Page())
	assert.Equal(t, 41, m.Displayed()[0].ID)
	assert.Contains(t, m.View(), "Page 3 of 42")
}

func TestSortAndFilterKeys(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[int]*domain.CharacterPage{1: characterPage(1, 1, 20)}}
	m := newTestModel(t, fetcher, nil)
	deliver(m, m.Init())

	m.Update(runeKey("o"))
	assert.Equal(t, domain.SortOrderDesc, m.ViewOptions().SortOrder)
	assert.Equal(t, "Character 020", m.Displayed()[0].Name)
	assert.Contains(t, m.View(), "Descending")

	m.Update(runeKey("f"))
	assert.Equal(t, domain.StatusFilterAlive, m.ViewOptions().FilterStatus)
	m.Update(runeKey("f"))
	assert.Equal(t, domain.StatusFilterDead, m.ViewOptions().FilterStatus)
	assert.Len(t, m.Displayed(), 5)
	for _, c := range m.Displayed() {
		assert.Equal(t, domain.StatusDead, c.Status)
	}
	assert.Contains(t, m.View(), "Dead")

	m.Update(runeKey("s"))
	assert.Equal(t, domain.SortByCreated, m.ViewOptions().SortBy)
	assert.Contains(t, m.View(), "Sort by Date Created")

	m.Update(runeKey("f"))
	m.Update(runeKey("f"))
	assert.Equal(t, domain.StatusFilterAll, m.ViewOptions().FilterStatus)
	assert.Len(t, m.Displayed(), 20)
}

func TestEmptyFilteredPage(t *testing.T) {
	page := characterPage(1, 1, 3)
	for i := range page.Results {
		page.Results[i].Status = domain.StatusAlive
	}
	m := newTestModel(t, &fakeFetcher{pages: map[int]*domain.CharacterPage{1: page}}, nil)
	deliver(m, m.Init())

	m.Update(runeKey("f"))
	m.Update(runeKey("f"))
	assert.Equal(t, domain.StatusFilterDead, m.ViewOptions().FilterStatus)
	view := m.View()
	assert.Contains(t, view, "No characters found")
	assert.Contains(t, view, "Page 1 of 1")
}

func TestDarkModeLoadedAndToggled(t *testing.T) {
	prefs := &fakePrefs{dark: true}
	m := newTestModel(t, &fakeFetcher{}, prefs)
	assert.True(t, m.DarkMode())
	assert.True(t, lipgloss.HasDarkBackground())
	assert.Contains(t, m.View(), "[Light Mode]")

	_, cmd := m.Update(runeKey("d"))
	assert.Nil(t, cmd)
	assert.False(t, m.DarkMode())
	assert.False(t, lipgloss.HasDarkBackground())
	assert.Equal(t, []bool{false}, prefs.saved, "saved before the key press returns")

	m.Update(runeKey("d"))
	assert.True(t, m.DarkMode())
	assert.Equal(t, []bool{false, true}, prefs.saved)
	assert.True(t, prefs.dark)
	_, ok := m.StatusMessage()
	assert.False(t, ok)
}

func TestDarkModeSaveFailureShowsStatus(t *testing.T) {
	prefs := &fakePrefs{saveErr: errors.New("read-only filesystem")}
	m := newTestModel(t, &fakeFetcher{}, prefs)

	_, clearCmd := m.Update(runeKey("d"))
	assert.NotNil(t, clearCmd, "the status line is cleared later")

	assert.True(t, m.DarkMode(), "the toggle is not blocked by the failed write")
	status, ok := m.StatusMessage()
	require.True(t, ok)
	assert.Equal(t, tuierrors.MessageTypeError, status.Type)
	assert.Contains(t, m.View(), "Failed to save dark mode preference")

	m.Update(statusClearMsg{seq: m.statusSeq})
	_, ok = m.StatusMessage()
	assert.False(t, ok)
}

func TestStaleStatusClearIsIgnored(t *testing.T) {
	prefs := &fakePrefs{saveErr: errors.New("boom")}
	m := newTestModel(t, &fakeFetcher{}, prefs)
	m.Update(runeKey("d"))
	old := m.statusSeq
	m.Update(runeKey("d"))

	m.Update(statusClearMsg{seq: old})
	_, ok := m.StatusMessage()
	assert.True(t, ok)
}

func openTOMLPrefs(t *testing.T, path string) (*settings.Manager, func()) {
	t.Helper()
	store, err := tomlfile.New(path)
	require.NoError(t, err)
	return settings.NewManager(store), func() { require.NoError(t, store.Close()) }
}

func persistedDarkMode(t *testing.T, path string) bool {
	t.Helper()
	prefs, closeStore := openTOMLPrefs(t, path)
	defer closeStore()
	dark, err := prefs.DarkMode()
	require.NoError(t, err)
	return dark
}

func TestRapidTogglesPersistInPressOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), tomlfile.FileName)
	prefs, closeStore := openTOMLPrefs(t, path)
	defer closeStore()
	m := newTestModel(t, &fakeFetcher{}, prefs)

	for i := 0; i < 5; i++ {
		_, cmd := m.Update(runeKey("d"))
		assert.Nil(t, cmd, "no write is left running in the background")
		assert.Equal(t, m.DarkMode(), persistedDarkMode(t, path), "after press %d", i+1)
	}
	assert.True(t, m.DarkMode())

	m.Update(runeKey("d"))
	assert.False(t, persistedDarkMode(t, path), "toggling twice restores the stored flag")
}

func TestToggleThenQuitKeepsPreference(t *testing.T) {
	path := filepath.Join(t.TempDir(), tomlfile.FileName)
	prefs, closeStore := openTOMLPrefs(t, path)
	m := newTestModel(t, &fakeFetcher{}, prefs)

	m.Update(runeKey("d"))
	_, cmd := m.Update(runeKey("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	closeStore()

	assert.True(t, persistedDarkMode(t, path))
	_, ok := m.StatusMessage()
	assert.False(t, ok)
}

func TestViewBeforeFirstFetchShowsLoading(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{}, nil)
	require.False(t, m.Loading())

	view := m.View()
	assert.Contains(t, view, "Loading characters...")
	assert.NotContains(t, view, "No characters found")
	assert.NotContains(t, view, "[Previous]")
}

func TestCorruptPreferenceFallsBackToLight(t *testing.T) {
	prefs := &fakePrefs{dark: true, loadErr: errors.New("invalid preference value")}
	m := newTestModel(t, &fakeFetcher{}, prefs)

	assert.False(t, m.DarkMode())
	status, ok := m.StatusMessage()
	require.True(t, ok)
	assert.Equal(t, tuierrors.MessageTypeWarning, status.Type)
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{}, nil)
	short := m.View()
	m.Update(runeKey("?"))
	full := m.View()
	assert.NotEqual(t, short, full)
	assert.Contains(t, full, "status filter")
}

func TestQuitCancelsFetch(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{}, nil)
	m.Init()
	req := m.catalog.Begin(context.Background(), 1)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, req.Ctx.Err(), context.Canceled)
}

func TestWindowResize(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[int]*domain.CharacterPage{1: characterPage(1, 1, 20)}}
	m := newTestModel(t, fetcher, nil)
	deliver(m, m.Init())

	m.Update(tea.WindowSizeMsg{Width: 160, Height: 20})
	assert.Equal(t, 160, m.width)
	assert.Equal(t, 20-chromeLines, m.tableHeight())
	tall := m.table.Height()

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 5})
	assert.Equal(t, minTableHeight, m.tableHeight())
	assert.Less(t, m.table.Height(), tall)
}

func TestCursorMovesDetail(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[int]*domain.CharacterPage{1: characterPage(1, 1, 3)}}
	m := newTestModel(t, fetcher, nil)
	deliver(m, m.Init())

	assert.Contains(t, m.View(), "#1 Character 001")
	m.Update(runeKey("j"))
	assert.Equal(t, 1, m.table.Cursor())
	assert.Contains(t, m.View(), "#2 Character 002")
}
