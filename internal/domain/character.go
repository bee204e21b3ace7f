// Package domain provides the domain layer for characters.
// It contains the API payload types, view options and the pure
// filter/sort functions that derive the displayed list.
package domain

import (
	"strings"
	"time"
)

// Status is the life status reported by the API ("Alive", "Dead", "unknown").
type Status string

const (
	StatusAlive   Status = "Alive"
	StatusDead    Status = "Dead"
	StatusUnknown Status = "unknown"
)

// String returns the status as sent by the API.
func (s Status) String() string {
	return string(s)
}

// Matches reports whether the status equals the given filter, ignoring case.
func (s Status) Matches(filter StatusFilter) bool {
	return strings.EqualFold(string(s), string(filter))
}

// Place is a named resource reference (origin or location).
type Place struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Character is a single character as returned by the remote API.
// The payload is not validated beyond direct field access.
type Character struct {
	ID       int      `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Status   Status   `json:"status" yaml:"status"`
	Species  string   `json:"species" yaml:"species"`
	Type     string   `json:"type" yaml:"type"`
	Gender   string   `json:"gender" yaml:"gender"`
	Origin   Place    `json:"origin" yaml:"origin"`
	Location Place    `json:"location" yaml:"location"`
	Image    string   `json:"image" yaml:"image"`
	Episode  []string `json:"episode" yaml:"episode"`
	URL      string   `json:"url" yaml:"url"`
	Created  string   `json:"created" yaml:"created"`
}

// CreatedTime parses the created timestamp.
// Returns the zero time when the timestamp is missing or malformed.
func (c Character) CreatedTime() time.Time {
	if c.Created == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, c.Created)
	if err != nil {
		return time.Time{}
	}
	return t
}

// PageInfo is the pagination metadata returned with every page.
type PageInfo struct {
	Count int    `json:"count" yaml:"count"`
	Pages int    `json:"pages" yaml:"pages"`
	Next  string `json:"next" yaml:"next"`
	Prev  string `json:"prev" yaml:"prev"`
}

// Known reports whether the total page count has been received.
func (p PageInfo) Known() bool {
	return p.Pages > 0
}

// CharacterPage is the response body of the character list endpoint.
type CharacterPage struct {
	Info    PageInfo    `json:"info" yaml:"info"`
	Results []Character `json:"results" yaml:"results"`
}
