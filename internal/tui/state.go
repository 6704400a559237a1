package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/amaumene/mediacatalog/internal/catalog"
	"github.com/amaumene/mediacatalog/internal/models"
)

// anyOption is the selector value meaning "no constraint"
const anyOption = "Any"

// ViewState is the mutable UI state: the applied query and the message line
type ViewState struct {
	Query  catalog.Query
	Err    string
	Notice string
}

// SetError shows err on the message line, replacing any notice
func (s *ViewState) SetError(err error) {
	s.Notice = ""
	if err == nil {
		s.Err = ""
		return
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		s.Err = verr.Error()
		return
	}
	s.Err = err.Error()
}

// SetNotice shows an informational message, replacing any error
func (s *ViewState) SetNotice(msg string) {
	s.Err = ""
	s.Notice = msg
}

// ClearFilters drops every filter but keeps the sort
func (s *ViewState) ClearFilters() {
	s.Query = catalog.Query{Sort: s.Query.Sort}
}

// FilterForm is the raw content of the filter panel
type FilterForm struct {
	Search    string
	Category  string // anyOption or a category name
	Status    string // anyOption or a status name
	MinRating string // blank for none
	Sort      catalog.Sort
}

// Query converts the form into a catalog query
func (f FilterForm) Query() (catalog.Query, error) {
	q := catalog.Query{
		Filter: catalog.Filter{SearchText: strings.TrimSpace(f.Search)},
		Sort:   f.Sort,
	}

	if f.Category != "" && f.Category != anyOption {
		c, err := models.ParseCategory(f.Category)
		if err != nil {
			return catalog.Query{}, err
		}
		q.Category = &c
	}
	if f.Status != "" && f.Status != anyOption {
		s, err := models.ParseStatus(f.Status)
		if err != nil {
			return catalog.Query{}, err
		}
		q.Status = &s
	}
	if v := strings.TrimSpace(f.MinRating); v != "" {
		r, err := strconv.Atoi(v)
		if err != nil || r < models.MinRating || r > models.MaxRating {
			return catalog.Query{}, &models.ValidationError{Field: "min rating", Message: "must be a number between 0 and 10"}
		}
		q.MinRating = &r
	}

	return q, nil
}

// StepRating moves a rating by delta within 0..10.
// Going below zero clears the rating; stepping up from unset starts at delta.
func StepRating(current *int, delta int) *int {
	if current == nil {
		if delta <= 0 {
			return nil
		}
		return models.IntPtr(min(delta, models.MaxRating))
	}
	v := *current + delta
	if v < models.MinRating {
		return nil
	}
	return models.IntPtr(min(v, models.MaxRating))
}

// cycle moves idx by delta within [0, n)
func cycle(idx, delta, n int) int {
	return ((idx+delta)%n + n) % n
}

func categoryOptions() []string {
	opts := []string{anyOption}
	for _, c := range models.Categories {
		opts = append(opts, c.String())
	}
	return opts
}

func statusOptions() []string {
	opts := []string{anyOption}
	for _, s := range models.Statuses {
		opts = append(opts, s.Label())
	}
	return opts
}

func sortFieldIndex(field catalog.SortField) int {
	for i, f := range catalog.SortFields {
		if f == field {
			return i
		}
	}
	return 0
}
