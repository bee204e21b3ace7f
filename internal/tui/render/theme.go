package render

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/rmgrid/internal/colors"
)

// Theme groups the styles used by the browser view.
type Theme struct {
	Dark           bool
	Title          lipgloss.Style
	Text           lipgloss.Style
	Muted          lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	Error          lipgloss.Style
	Status         lipgloss.Style
	Header         lipgloss.Style
	Selected       lipgloss.Style
}

// DarkTheme is used when dark mode is on.
func DarkTheme() Theme {
	accent := lipgloss.Color(ansiColorNumber(colors.Cyan))
	return Theme{
		Dark:           true,
		Title:          lipgloss.NewStyle().Bold(true).Foreground(accent),
		Text:           lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Muted:          lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Button:         lipgloss.NewStyle().Bold(true).Foreground(accent),
		ButtonDisabled: lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("240")),
		Error:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiColorNumber(colors.Red))),
		Status:         lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Yellow))),
		Header:         lipgloss.NewStyle().Bold(true).Foreground(accent).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("240")),
		Selected:       lipgloss.NewStyle().Bold(true).Background(accent).Foreground(lipgloss.Color("0")),
	}
}

// LightTheme is used when dark mode is off.
func LightTheme() Theme {
	accent := lipgloss.Color(ansiColorNumber(colors.Blue))
	return Theme{
		Dark:           false,
		Title:          lipgloss.NewStyle().Bold(true).Foreground(accent),
		Text:           lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
		Muted:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Button:         lipgloss.NewStyle().Bold(true).Foreground(accent),
		ButtonDisabled: lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("250")),
		Error:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiColorNumber(colors.Red))),
		Status:         lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
		Header:         lipgloss.NewStyle().Bold(true).Foreground(accent).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("250")),
		Selected:       lipgloss.NewStyle().Bold(true).Background(accent).Foreground(lipgloss.Color("15")),
	}
}

// ThemeFor returns the theme for the dark mode flag.
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}

// ApplyDarkMode mirrors the flag onto lipgloss's terminal state and returns
// the matching theme.
func ApplyDarkMode(dark bool) Theme {
	lipgloss.SetHasDarkBackground(dark)
	return ThemeFor(dark)
}

// TableStyles returns bubbles table styles for the theme.
func (t Theme) TableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = t.Header.Padding(0, 1)
	s.Selected = t.Selected
	return s
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
