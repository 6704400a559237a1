package models

import (
	"strings"
	"time"
)

// Rating bounds (inclusive)
const (
	MinRating = 0
	MaxRating = 10
)

// MediaItem is one catalog record representing a single tracked piece of media
type MediaItem struct {
	ID       int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title    string   `gorm:"not null;index" json:"title"`
	Category Category `gorm:"type:text;not null;index" json:"category"`
	Status   Status   `gorm:"type:text;not null;index" json:"status"`

	// Optional fields, nil when unset
	Rating    *int    `gorm:"check:rating >= 0 AND rating <= 10" json:"rating,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	CoverPath *string `json:"cover_path,omitempty"` // never checked for existence

	// Timestamps are managed by Database, not by gorm
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

// TableName returns the table name for MediaItem
func (MediaItem) TableName() string {
	return "media"
}

// IsFinished reports whether the item is marked finished
func (m *MediaItem) IsFinished() bool {
	return m.Status == StatusFinished
}

// Fields returns the writable fields of the item
func (m *MediaItem) Fields() MediaFields {
	return MediaFields{
		Title:     m.Title,
		Category:  m.Category,
		Status:    m.Status,
		Rating:    m.Rating,
		Notes:     m.Notes,
		CoverPath: m.CoverPath,
	}
}

func (m *MediaItem) apply(f MediaFields) {
	m.Title = f.Title
	m.Category = f.Category
	m.Status = f.Status
	m.Rating = f.Rating
	m.Notes = f.Notes
	m.CoverPath = f.CoverPath
}

// MediaFields holds the user-editable fields of a MediaItem
type MediaFields struct {
	Title     string
	Category  Category
	Status    Status
	Rating    *int
	Notes     *string
	CoverPath *string
}

// Normalize trims the title, defaults the status to Planned and turns
// blank optional text into nil.
func (f MediaFields) Normalize() MediaFields {
	f.Title = strings.TrimSpace(f.Title)
	if f.Status == "" {
		f.Status = StatusPlanned
	}
	f.Notes = blankToNil(f.Notes)
	f.CoverPath = blankToNil(f.CoverPath)
	return f
}

// Validate checks the fields against the data model constraints
func (f MediaFields) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return &ValidationError{Field: "title", Message: "title cannot be empty"}
	}
	if !f.Category.IsValid() {
		return &ValidationError{Field: "category", Message: "unknown category " + quote(string(f.Category))}
	}
	if !f.Status.IsValid() {
		return &ValidationError{Field: "status", Message: "unknown status " + quote(string(f.Status))}
	}
	if f.Rating != nil && (*f.Rating < MinRating || *f.Rating > MaxRating) {
		return &ValidationError{Field: "rating", Message: "rating must be between 0 and 10"}
	}
	return nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// SameRating reports whether two optional ratings are both unset or equal
func SameRating(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}

// StringPtr returns a pointer to v
func StringPtr(v string) *string {
	return &v
}
