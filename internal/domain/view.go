package domain

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortByField specifies which field to sort characters by.
type SortByField string

const (
	SortByName    SortByField = "name"
	SortByCreated SortByField = "created"
)

// IsValid checks if the sort by field is valid.
func (s SortByField) IsValid() bool {
	switch s {
	case SortByName, SortByCreated:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sort by field.
func (s SortByField) String() string {
	return string(s)
}

// Label returns the control label shown for the field.
func (s SortByField) Label() string {
	if s == SortByCreated {
		return "Sort by Date Created"
	}
	return "Sort by Name"
}

// Next cycles to the following sort field.
func (s SortByField) Next() SortByField {
	if s == SortByName {
		return SortByCreated
	}
	return SortByName
}

// SortOrder specifies the sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// IsValid checks if the sort order is valid.
func (s SortOrder) IsValid() bool {
	switch s {
	case SortOrderAsc, SortOrderDesc:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sort order.
func (s SortOrder) String() string {
	return string(s)
}

// Label returns the control label shown for the order.
func (s SortOrder) Label() string {
	if s == SortOrderDesc {
		return "Descending"
	}
	return "Ascending"
}

// Toggle flips the sort direction.
func (s SortOrder) Toggle() SortOrder {
	if s == SortOrderAsc {
		return SortOrderDesc
	}
	return SortOrderAsc
}

// StatusFilter restricts the displayed characters by status.
type StatusFilter string

const (
	StatusFilterAll     StatusFilter = "all"
	StatusFilterAlive   StatusFilter = "alive"
	StatusFilterDead    StatusFilter = "dead"
	StatusFilterUnknown StatusFilter = "unknown"
)

var statusFilterCycle = []StatusFilter{
	StatusFilterAll,
	StatusFilterAlive,
	StatusFilterDead,
	StatusFilterUnknown,
}

// IsValid checks if the status filter is valid.
func (f StatusFilter) IsValid() bool {
	for _, candidate := range statusFilterCycle {
		if f == candidate {
			return true
		}
	}
	return false
}

// String returns the string representation of the filter.
func (f StatusFilter) String() string {
	return string(f)
}

// Label returns the control label shown for the filter.
func (f StatusFilter) Label() string {
	switch f {
	case StatusFilterAlive:
		return "Alive"
	case StatusFilterDead:
		return "Dead"
	case StatusFilterUnknown:
		return "Unknown"
	default:
		return "All Statuses"
	}
}

// Next cycles all -> alive -> dead -> unknown -> all.
func (f StatusFilter) Next() StatusFilter {
	for i, candidate := range statusFilterCycle {
		if f == candidate {
			return statusFilterCycle[(i+1)%len(statusFilterCycle)]
		}
	}
	return StatusFilterAll
}

// ViewOptions is the sort/filter state of the grid.
type ViewOptions struct {
	SortBy       SortByField
	SortOrder    SortOrder
	FilterStatus StatusFilter
}

// DefaultViewOptions returns name ascending with no status filter.
func DefaultViewOptions() ViewOptions {
	return ViewOptions{
		SortBy:       SortByName,
		SortOrder:    SortOrderAsc,
		FilterStatus: StatusFilterAll,
	}
}

// normalize replaces invalid values with defaults.
func (o ViewOptions) normalize() ViewOptions {
	defaults := DefaultViewOptions()
	if !o.SortBy.IsValid() {
		o.SortBy = defaults.SortBy
	}
	if !o.SortOrder.IsValid() {
		o.SortOrder = defaults.SortOrder
	}
	if !o.FilterStatus.IsValid() {
		o.FilterStatus = defaults.FilterStatus
	}
	return o
}

// FilterByStatus returns the characters whose status matches filter.
// The "all" filter returns a copy of every character. The input is never modified.
func FilterByStatus(chars []Character, filter StatusFilter) []Character {
	if filter == "" || filter == StatusFilterAll {
		result := make([]Character, len(chars))
		copy(result, chars)
		return result
	}
	result := make([]Character, 0, len(chars))
	for _, c := range chars {
		if c.Status.Matches(filter) {
			result = append(result, c)
		}
	}
	return result
}

// SortCharacters sorts a copy of chars by the given field and order.
// Names use locale-aware collation; created uses chronological order.
func SortCharacters(chars []Character, by SortByField, order SortOrder) []Character {
	sorted := make([]Character, len(chars))
	copy(sorted, chars)
	if len(sorted) < 2 {
		return sorted
	}

	compare := comparator(by)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortOrderDesc {
			return compare(sorted[j], sorted[i]) < 0
		}
		return compare(sorted[i], sorted[j]) < 0
	})
	return sorted
}

// Apply derives the displayed list: filter first, then sort.
func Apply(chars []Character, opts ViewOptions) []Character {
	opts = opts.normalize()
	return SortCharacters(FilterByStatus(chars, opts.FilterStatus), opts.SortBy, opts.SortOrder)
}

// comparator returns a three-way comparison for the field.
func comparator(by SortByField) func(a, b Character) int {
	if by == SortByCreated {
		return func(a, b Character) int {
			return a.CreatedTime().Compare(b.CreatedTime())
		}
	}
	collator := NewNameCollator()
	return func(a, b Character) int {
		return collator.CompareString(a.Name, b.Name)
	}
}

// NewNameCollator returns the collator used to order names. It ignores
// case, width and diacritics.
// Collators are not safe for concurrent use; create one per sort.
func NewNameCollator() *collate.Collator {
	return collate.New(language.English, collate.Loose)
}

// ParseSortByField parses a string into a SortByField.
func ParseSortByField(field string) (SortByField, error) {
	f := SortByField(strings.ToLower(strings.TrimSpace(field)))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid sort field: %s", field)
	}
	return f, nil
}

// ParseSortOrder parses a string into a SortOrder.
func ParseSortOrder(order string) (SortOrder, error) {
	o := SortOrder(strings.ToLower(strings.TrimSpace(order)))
	if !o.IsValid() {
		return "", fmt.Errorf("invalid sort order: %s", order)
	}
	return o, nil
}

// ParseStatusFilter parses a string into a StatusFilter.
func ParseStatusFilter(filter string) (StatusFilter, error) {
	f := StatusFilter(strings.ToLower(strings.TrimSpace(filter)))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid status filter: %s", filter)
	}
	return f, nil
}
