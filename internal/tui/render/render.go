// Package render turns browser state into terminal text.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/cristianoliveira/rmgrid/internal/domain"
)

const (
	// LoadingText is shown while a page is being fetched.
	LoadingText = "Loading characters..."
	// EmptyText is shown when the filtered page has no characters.
	EmptyText = "No characters found"
	// Title heads the view.
	Title = "Rick and Morty Characters"

	PreviousLabel = "Previous"
	NextLabel     = "Next"

	nameWidth     = 26
	speciesWidth  = 14
	statusWidth   = 9
	genderWidth   = 10
	createdWidth  = 10
	minImageWidth = 20
	// one space of padding on each side of every cell
	cellPadding = 2
	dateLayout  = "2006-01-02"
)

// PaginationState defines the inputs needed to render the pagination bar.
type PaginationState struct {
	Page    int
	Pages   int
	CanPrev bool
	CanNext bool
}

// PageIndicator renders "Page n of m", or "Page n of ?" before the total
// is known.
func PageIndicator(page, pages int) string {
	total := "?"
	if pages > 0 {
		total = strconv.Itoa(pages)
	}
	return fmt.Sprintf("Page %d of %s", page, total)
}

// Pagination renders "[Previous]  Page n of m  [Next]" with disabled
// buttons dimmed.
func Pagination(state PaginationState, theme Theme) string {
	return strings.Join([]string{
		button(PreviousLabel, state.CanPrev, theme),
		theme.Text.Render(PageIndicator(state.Page, state.Pages)),
		button(NextLabel, state.CanNext, theme),
	}, "  ")
}

// ControlsState defines the inputs needed to render the controls line.
type ControlsState struct {
	View     domain.ViewOptions
	DarkMode bool
}

// DarkModeLabel names the mode a toggle would switch to.
func DarkModeLabel(dark bool) string {
	if dark {
		return "Light Mode"
	}
	return "Dark Mode"
}

// Controls renders the sort, order, filter and theme buttons.
func Controls(state ControlsState, theme Theme) string {
	labels := []string{
		state.View.SortBy.Label(),
		state.View.SortOrder.Label(),
		state.View.FilterStatus.Label(),
		DarkModeLabel(state.DarkMode),
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = button(l, true, theme)
	}
	return strings.Join(parts, " ")
}

func button(label string, enabled bool, theme Theme) string {
	text := "[" + label + "]"
	if !enabled {
		return theme.ButtonDisabled.Render(text)
	}
	return theme.Button.Render(text)
}

// ErrorLine renders a fetch failure message.
func ErrorLine(message string, theme Theme) string {
	return theme.Error.Render("Error: " + message)
}

// Columns returns grid columns sized for the terminal width.
// The image column takes the remaining space.
func Columns(width int) []table.Column {
	fixed := nameWidth + speciesWidth + statusWidth + genderWidth + createdWidth + 6*cellPadding
	image := width - fixed
	if image < minImageWidth {
		image = minImageWidth
	}
	return []table.Column{
		{Title: "Name", Width: nameWidth},
		{Title: "Species", Width: speciesWidth},
		{Title: "Status", Width: statusWidth},
		{Title: "Gender", Width: genderWidth},
		{Title: "Created", Width: createdWidth},
		{Title: "Image", Width: image},
	}
}

// Rows converts characters to grid rows in order.
func Rows(chars []domain.Character) []table.Row {
	rows := make([]table.Row, len(chars))
	for i, c := range chars {
		rows[i] = table.Row{
			c.Name,
			c.Species,
			string(c.Status),
			c.Gender,
			CreatedDate(c),
			c.Image,
		}
	}
	return rows
}

// CreatedDate formats the creation timestamp as a local date.
// Unparsable timestamps render empty.
func CreatedDate(c domain.Character) string {
	t := c.CreatedTime()
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateLayout)
}

// Detail renders extra fields of the highlighted character.
func Detail(c domain.Character, theme Theme) string {
	episodes := "episodes"
	if len(c.Episode) == 1 {
		episodes = "episode"
	}
	parts := []string{
		fmt.Sprintf("#%d %s", c.ID, c.Name),
		"origin: " + placeName(c.Origin),
		"location: " + placeName(c.Location),
		fmt.Sprintf("%d %s", len(c.Episode), episodes),
	}
	if c.Type != "" {
		parts = append(parts, "type: "+c.Type)
	}
	return theme.Muted.Render(strings.Join(parts, " · "))
}

func placeName(p domain.Place) string {
	if p.Name == "" {
		return "unknown"
	}
	return p.Name
}
