package models

import (
	"strings"
)

// Category represents the kind of media an item is
type Category string

const (
	CategoryBook  Category = "Book"
	CategoryMovie Category = "Movie"
	CategoryGame  Category = "Game"
	CategoryMusic Category = "Music"
	CategoryOther Category = "Other"
)

// Categories lists every category in display (and sort) order
var Categories = []Category{
	CategoryBook,
	CategoryMovie,
	CategoryGame,
	CategoryMusic,
	CategoryOther,
}

// Rank returns the ordinal position of the category, or -1 if unknown
func (c Category) Rank() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return -1
}

// IsValid reports whether c is one of the known categories
func (c Category) IsValid() bool {
	return c.Rank() >= 0
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory converts user input to a Category (case-insensitive)
func ParseCategory(s string) (Category, error) {
	key := normalizeEnum(s)
	for _, c := range Categories {
		if normalizeEnum(string(c)) == key {
			return c, nil
		}
	}
	return "", &ValidationError{Field: "category", Message: "unknown category " + quote(s)}
}

// Status represents how far along the owner is with an item
type Status string

const (
	StatusPlanned    Status = "Planned"
	StatusInProgress Status = "InProgress"
	StatusFinished   Status = "Finished"
)

// Statuses lists every status in display (and sort) order
var Statuses = []Status{
	StatusPlanned,
	StatusInProgress,
	StatusFinished,
}

// Rank returns the ordinal position of the status, or -1 if unknown
func (s Status) Rank() int {
	for i, known := range Statuses {
		if s == known {
			return i
		}
	}
	return -1
}

// IsValid reports whether s is one of the known statuses
func (s Status) IsValid() bool {
	return s.Rank() >= 0
}

func (s Status) String() string {
	return string(s)
}

// Label returns the human readable form used in tables and exports
func (s Status) Label() string {
	if s == StatusInProgress {
		return "In Progress"
	}
	return string(s)
}

// ParseStatus converts user input to a Status.
// Accepts "InProgress", "In Progress", "in_progress" and "in-progress".
func ParseStatus(s string) (Status, error) {
	key := normalizeEnum(s)
	for _, st := range Statuses {
		if normalizeEnum(string(st)) == key {
			return st, nil
		}
	}
	return "", &ValidationError{Field: "status", Message: "unknown status " + quote(s)}
}

func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

func quote(s string) string {
	return "\"" + s + "\""
}
