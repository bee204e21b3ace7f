package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cristianoliveira/rmgrid/internal/colors"
	"github.com/cristianoliveira/rmgrid/internal/domain"
)

// EmptyText is printed for a page without characters.
const EmptyText = "No characters found"

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the ANSI color for headers. Empty disables color.
	HeaderColor string

	// ColumnWidths defines the width for each column.
	ColumnWidths map[string]int

	// ColumnAlignments defines the alignment for each column (left, right, center).
	ColumnAlignments map[string]string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		ColumnWidths: map[string]int{
			"ID":      4,
			"Name":    28,
			"Species": 14,
			"Status":  8,
			"Gender":  10,
			"Created": 10,
		},
		ColumnAlignments: map[string]string{
			"ID": "right",
		},
	}
}

// TableColumn represents a column in a table.
type TableColumn struct {
	Name      string
	Width     int
	Alignment string
	// Extractor extracts the raw cell value from a character.
	Extractor func(domain.Character) string
}

// TableFormatter prints a page header followed by a fixed-width table.
type TableFormatter struct {
	config  *TableConfig
	columns []TableColumn
}

// NewTableFormatter creates a TableFormatter with the default columns.
func NewTableFormatter(config *TableConfig) *TableFormatter {
	if config == nil {
		config = DefaultTableConfig()
	}
	column := func(name string, extract func(domain.Character) string) TableColumn {
		return TableColumn{
			Name:      name,
			Width:     config.ColumnWidths[name],
			Alignment: config.ColumnAlignments[name],
			Extractor: extract,
		}
	}
	columns := []TableColumn{
		column("ID", func(c domain.Character) string { return strconv.Itoa(c.ID) }),
		column("Name", func(c domain.Character) string { return c.Name }),
		column("Species", func(c domain.Character) string { return c.Species }),
		column("Status", func(c domain.Character) string { return string(c.Status) }),
		column("Gender", func(c domain.Character) string { return c.Gender }),
		column("Created", createdDate),
	}
	return &TableFormatter{config: config, columns: columns}
}

// WithColumns adds custom columns to the formatter.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

func (f *TableFormatter) FormatListings(listings []Listing, writer io.Writer) error {
	for i, l := range listings {
		if i > 0 {
			if _, err := fmt.Fprintln(writer); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(writer, "=== %s ===\n", pageTitle(l)); err != nil {
			return err
		}
		if len(l.Characters) == 0 {
			if _, err := fmt.Fprintln(writer, EmptyText); err != nil {
				return err
			}
			continue
		}
		if f.config.ShowHeaders {
			if err := f.writeLine(writer, f.header(), true); err != nil {
				return err
			}
			if err := f.writeLine(writer, f.separator(), true); err != nil {
				return err
			}
		}
		for _, c := range l.Characters {
			if err := f.writeLine(writer, f.row(c), false); err != nil {
				return err
			}
		}
	}
	return nil
}

func pageTitle(l Listing) string {
	total := "?"
	if l.Info.Pages > 0 {
		total = strconv.Itoa(l.Info.Pages)
	}
	return fmt.Sprintf("Page %d of %s", l.Page, total)
}

func (f *TableFormatter) header() []string {
	cells := make([]string, len(f.columns))
	for i, col := range f.columns {
		cells[i] = formatString(col.Name, col.Width, "left")
	}
	return cells
}

func (f *TableFormatter) separator() []string {
	cells := make([]string, len(f.columns))
	for i, col := range f.columns {
		cells[i] = makeSeparator(col.Width)
	}
	return cells
}

func (f *TableFormatter) row(c domain.Character) []string {
	cells := make([]string, len(f.columns))
	for i, col := range f.columns {
		value := col.Extractor(c)
		if col.Alignment == "" || col.Alignment == "left" {
			cells[i] = truncateString(value, col.Width)
		} else {
			cells[i] = formatString(value, col.Width, col.Alignment)
		}
	}
	return cells
}

func (f *TableFormatter) writeLine(writer io.Writer, cells []string, header bool) error {
	line := strings.TrimRight(strings.Join(cells, "  "), " ")
	if header && f.config.HeaderColor != "" {
		line = f.config.HeaderColor + line + colors.Reset
	}
	_, err := fmt.Fprintln(writer, line)
	return err
}

func createdDate(c domain.Character) string {
	t := c.CreatedTime()
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02")
}

// Helper functions

// formatString pads or cuts s to width runes with the given alignment.
func formatString(s string, width int, alignment string) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return string([]rune(s)[:width])
	}

	switch alignment {
	case "right":
		return strings.Repeat(" ", width-n) + s
	case "center":
		left := (width - n) / 2
		right := width - n - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default: // left
		return s + strings.Repeat(" ", width-n)
	}
}

// truncateString truncates s to width runes, adding "..." if truncated.
func truncateString(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n <= width {
		return s + strings.Repeat(" ", width-n)
	}
	runes := []rune(s)
	if width < 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// makeSeparator creates a separator line of the specified width.
func makeSeparator(width int) string {
	return strings.Repeat("-", width)
}
