// Package catalog selects, orders and summarises media items.
//
// Everything here is a pure function over a slice of models.MediaItem:
// the caller loads rows from the database and hands them in, so the
// filter/sort rules can be tested without any storage.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/amaumene/mediacatalog/internal/models"
	"golang.org/x/text/cases"
)

// SortField is the item attribute results are ordered by
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByCategory  SortField = "category"
	SortByStatus    SortField = "status"
	SortByRating    SortField = "rating"
	SortByCreatedAt SortField = "created_at"
	SortByUpdatedAt SortField = "updated_at"
)

// SortFields lists every supported sort field
var SortFields = []SortField{
	SortByTitle,
	SortByCategory,
	SortByStatus,
	SortByRating,
	SortByCreatedAt,
	SortByUpdatedAt,
}

// SortOrder is the sort direction
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Filter holds the active search constraints. Nil/empty fields are no-ops.
type Filter struct {
	SearchText string           // case-insensitive substring of the title
	Category   *models.Category // exact match
	Status     *models.Status   // exact match
	MinRating  *int             // inclusive lower bound
}

// Sort holds the ordering of a query
type Sort struct {
	Field SortField
	Order SortOrder
}

// Query is a filter plus a sort
type Query struct {
	Filter
	Sort Sort
}

// DefaultQuery returns the query the catalog opens with: no filters, most recently updated first
func DefaultQuery() Query {
	return Query{Sort: Sort{Field: SortByUpdatedAt, Order: Descending}}
}

// IsEmpty reports whether no filter is active
func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.SearchText) == "" && f.Category == nil && f.Status == nil && f.MinRating == nil
}

// Matches reports whether item satisfies every active predicate
func (f Filter) Matches(item *models.MediaItem) bool {
	return f.matcher()(item)
}

func (f Filter) matcher() func(*models.MediaItem) bool {
	needle := foldString(strings.TrimSpace(f.SearchText))

	return func(item *models.MediaItem) bool {
		if needle != "" && !strings.Contains(foldString(item.Title), needle) {
			return false
		}
		if f.Category != nil && item.Category != *f.Category {
			return false
		}
		if f.Status != nil && item.Status != *f.Status {
			return false
		}
		if f.MinRating != nil && (item.Rating == nil || *item.Rating < *f.MinRating) {
			return false
		}
		return true
	}
}

// Key returns a stable string identifying the query, suitable as a cache key
func (q Query) Key() string {
	category, status, minRating := "", "", ""
	if q.Category != nil {
		category = string(*q.Category)
	}
	if q.Status != nil {
		status = string(*q.Status)
	}
	if q.MinRating != nil {
		minRating = fmt.Sprint(*q.MinRating)
	}
	return fmt.Sprintf("q=%s|c=%s|s=%s|r=%s|sort=%s:%s",
		foldString(strings.TrimSpace(q.SearchText)), category, status, minRating, q.Sort.Field, q.Sort.Order)
}

// Apply returns the items matching q.Filter, ordered by q.Sort.
// The input slice is left untouched.
func Apply(items []models.MediaItem, q Query) []models.MediaItem {
	match := q.Filter.matcher()

	selected := make([]models.MediaItem, 0, len(items))
	for i := range items {
		if match(&items[i]) {
			selected = append(selected, items[i])
		}
	}

	SortItems(selected, q.Sort)
	return selected
}

// SortItems orders items in place. Ties are always broken by ascending ID.
func SortItems(items []models.MediaItem, s Sort) {
	compare := comparator(s.Field)
	desc := s.Order == Descending

	sort.Slice(items, func(i, j int) bool {
		a, b := &items[i], &items[j]

		// Unrated items go last regardless of direction
		if s.Field == SortByRating && (a.Rating == nil) != (b.Rating == nil) {
			return b.Rating == nil
		}

		c := compare(a, b)
		if desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
}

// comparator returns a three-way comparison for the given field
func comparator(field SortField) func(a, b *models.MediaItem) int {
	switch field {
	case SortByCategory:
		return func(a, b *models.MediaItem) int {
			return compareInt(a.Category.Rank(), b.Category.Rank())
		}
	case SortByStatus:
		return func(a, b *models.MediaItem) int {
			return compareInt(a.Status.Rank(), b.Status.Rank())
		}
	case SortByRating:
		return func(a, b *models.MediaItem) int {
			if a.Rating == nil || b.Rating == nil {
				return 0
			}
			return compareInt(*a.Rating, *b.Rating)
		}
	case SortByCreatedAt:
		return func(a, b *models.MediaItem) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	case SortByUpdatedAt:
		return func(a, b *models.MediaItem) int {
			return a.UpdatedAt.Compare(b.UpdatedAt)
		}
	default:
		return func(a, b *models.MediaItem) int {
			return strings.Compare(foldString(a.Title), foldString(b.Title))
		}
	}
}

// ParseSortField converts user input to a SortField.
// Accepts "created_at", "createdAt" and "created-at" forms.
func ParseSortField(s string) (SortField, error) {
	key := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range SortFields {
		if strings.ReplaceAll(string(f), "_", "") == key {
			return f, nil
		}
	}
	return "", &models.ValidationError{Field: "sort", Message: fmt.Sprintf("unknown sort field %q", s)}
}

// ParseSortOrder converts user input to a SortOrder
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", &models.ValidationError{Field: "order", Message: fmt.Sprintf("unknown sort order %q", s)}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// foldString applies Unicode case folding. A Caser is stateful, so a new one is made per call.
func foldString(s string) string {
	return cases.Fold().String(s)
}
