package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/rmgrid/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageIndicator(t *testing.T) {
	assert.Equal(t, "Page 1 of 42", PageIndicator(1, 42))
	assert.Equal(t, "Page 3 of ?", PageIndicator(3, 0))
}

func TestPagination(t *testing.T) {
	out := Pagination(PaginationState{Page: 1, Pages: 42, CanPrev: false, CanNext: true}, LightTheme())
	assert.Contains(t, out, "[Previous]")
	assert.Contains(t, out, "Page 1 of 42")
	assert.Contains(t, out, "[Next]")
	assert.Less(t, strings.Index(out, "Previous"), strings.Index(out, "Page 1"))
	assert.Less(t, strings.Index(out, "Page 1"), strings.Index(out, "Next"))
}

func TestControlsLabels(t *testing.T) {
	out := Controls(ControlsState{View: domain.DefaultViewOptions()}, LightTheme())
	for _, want := range []string{"Sort by Name", "Ascending", "All Statuses", "Dark Mode"} {
		assert.Contains(t, out, want)
	}

	out = Controls(ControlsState{
		View: domain.ViewOptions{
			SortBy:       domain.SortByCreated,
			SortOrder:    domain.SortOrderDesc,
			FilterStatus: domain.StatusFilterUnknown,
		},
		DarkMode: true,
	}, DarkTheme())
	for _, want := range []string{"Sort by Date Created", "Descending", "Unknown", "Light Mode"} {
		assert.Contains(t, out, want)
	}
}

func TestDarkModeLabel(t *testing.T) {
	assert.Equal(t, "Dark Mode", DarkModeLabel(false))
	assert.Equal(t, "Light Mode", DarkModeLabel(true))
}

func TestErrorLine(t *testing.T) {
	assert.Contains(t, ErrorLine("Failed to fetch characters", LightTheme()), "Error: Failed to fetch characters")
}

func TestColumns(t *testing.T) {
	cols := Columns(200)
	require.Len(t, cols, 6)
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.Title
	}
	assert.Equal(t, []string{"Name", "Species", "Status", "Gender", "Created", "Image"}, titles)
	assert.Greater(t, cols[5].Width, minImageWidth)

	assert.Equal(t, minImageWidth, Columns(10)[5].Width)
}

func TestRows(t *testing.T) {
	chars := []domain.Character{
		{ID: 1, Name: "Rick Sanchez", Species: "Human", Status: domain.StatusAlive, Gender: "Male",
			Created: "2017-11-04T18:48:46.250Z", Image: "https://example.test/1.jpeg"},
		{ID: 2, Name: "Broken", Created: "yesterday"},
	}
	rows := Rows(chars)
	require.Len(t, rows, 2)
	assert.Equal(t, "Rick Sanchez", rows[0][0])
	assert.Equal(t, "Alive", rows[0][2])
	assert.Len(t, rows[0][4], len(dateLayout))
	assert.Equal(t, "https://example.test/1.jpeg", rows[0][5])
	assert.Equal(t, "", rows[1][4])
}

func TestDetail(t *testing.T) {
	c := domain.Character{
		ID:       1,
		Name:     "Rick Sanchez",
		Origin:   domain.Place{Name: "Earth (C-137)"},
		Episode:  []string{"e1", "e2"},
		Location: domain.Place{},
	}
	out := Detail(c, DarkTheme())
	assert.Contains(t, out, "origin: Earth (C-137)")
	assert.Contains(t, out, "location: unknown")
	assert.Contains(t, out, "2 episodes")

	c.Episode = c.Episode[:1]
	assert.Contains(t, Detail(c, DarkTheme()), "1 episode")
}

func TestApplyDarkModeMirrorsLipgloss(t *testing.T) {
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(false) })

	theme := ApplyDarkMode(true)
	assert.True(t, theme.Dark)
	assert.True(t, lipgloss.HasDarkBackground())

	theme = ApplyDarkMode(false)
	assert.False(t, theme.Dark)
	assert.False(t, lipgloss.HasDarkBackground())
}

func TestAnsiColorNumber(t *testing.T) {
	assert.Equal(t, "34", ansiColorNumber("\033[0;34m"))
	assert.Equal(t, "", ansiColorNumber("x"))
	assert.Equal(t, "", ansiColorNumber("nosemicolon"))
}
