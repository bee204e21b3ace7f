// Package format provides output formatting for the list command.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/rmgrid/internal/domain"
)

// Listing is one fetched page after filter and sort.
type Listing struct {
	Page       int                `json:"page" yaml:"page"`
	Info       domain.PageInfo    `json:"info" yaml:"info"`
	Characters []domain.Character `json:"characters" yaml:"characters"`
}

// Formatter defines the interface for output formatters.
type Formatter interface {
	// FormatListings writes the listings in page order.
	FormatListings(listings []Listing, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeTable prints an aligned table per page.
	FormatterTypeTable FormatterType = "table"
	// FormatterTypeJSON prints JSON.
	FormatterTypeJSON FormatterType = "json"
	// FormatterTypeYAML prints YAML.
	FormatterTypeYAML FormatterType = "yaml"
)

// ParseFormatterType validates a --format value.
func ParseFormatterType(value string) (FormatterType, error) {
	switch t := FormatterType(strings.ToLower(strings.TrimSpace(value))); t {
	case "":
		return FormatterTypeTable, nil
	case FormatterTypeTable, FormatterTypeJSON, FormatterTypeYAML:
		return t, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of table, json, yaml", value)
	}
}

// NewFormatter creates a new formatter of the specified type.
// Unknown types get the table formatter.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeJSON:
		return NewJSONFormatter()
	case FormatterTypeYAML:
		return NewYAMLFormatter()
	default:
		return NewTableFormatter(DefaultTableConfig())
	}
}
