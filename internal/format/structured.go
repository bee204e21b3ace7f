package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cristianoliveira/rmgrid/internal/domain"
	"gopkg.in/yaml.v3"
)

// JSONFormatter formats listings as JSON. A single listing is written as
// an object, several as an array.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) FormatListings(listings []Listing, writer io.Writer) error {
	data, err := json.MarshalIndent(structuredValue(listings), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal characters to JSON: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		return err
	}
	_, err = fmt.Fprintln(writer)
	return err
}

// YAMLFormatter formats listings as YAML with the same shape as JSON.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAMLFormatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

func (f *YAMLFormatter) FormatListings(listings []Listing, writer io.Writer) error {
	enc := yaml.NewEncoder(writer)
	enc.SetIndent(2)
	if err := enc.Encode(structuredValue(listings)); err != nil {
		return fmt.Errorf("failed to marshal characters to YAML: %w", err)
	}
	return enc.Close()
}

func structuredValue(listings []Listing) any {
	for i := range listings {
		if listings[i].Characters == nil {
			listings[i].Characters = []domain.Character{}
		}
	}
	if len(listings) == 1 {
		return listings[0]
	}
	if listings == nil {
		return []Listing{}
	}
	return listings
}
