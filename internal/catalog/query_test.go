package catalog

import (
	"testing"
	"time"

	"github.com/amaumene/mediacatalog/internal/models"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func item(id int64, title string, category models.Category, status models.Status, rating *int) models.MediaItem {
	created := base.Add(time.Duration(id) * time.Hour)
	return models.MediaItem{
		ID:        id,
		Title:     title,
		Category:  category,
		Status:    status,
		Rating:    rating,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func ids(items []models.MediaItem) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func categoryPtr(c models.Category) *models.Category { return &c }
func statusPtr(s models.Status) *models.Status       { return &s }

func sampleItems() []models.MediaItem {
	return []models.MediaItem{
		item(1, "Dune", models.CategoryBook, models.StatusFinished, models.IntPtr(9)),
		item(2, "Alien", models.CategoryMovie, models.StatusPlanned, models.IntPtr(8)),
		item(3, "Arrival", models.CategoryMovie, models.StatusFinished, models.IntPtr(7)),
		item(4, "Zelda", models.CategoryGame, models.StatusInProgress, nil),
		item(5, "dune messiah", models.CategoryBook, models.StatusPlanned, models.IntPtr(9)),
		item(6, "Kind of Blue", models.CategoryMusic, models.StatusFinished, models.IntPtr(10)),
	}
}

func TestApply_NoFilters(t *testing.T) {
	items := sampleItems()
	got := Apply(items, Query{Sort: Sort{Field: SortByTitle, Order: Ascending}})
	if len(got) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(got))
	}
}

func TestApply_Filters(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{"category movie", Filter{Category: categoryPtr(models.CategoryMovie)}, []int64{2, 3}},
		{"movie and min rating 8", Filter{Category: categoryPtr(models.CategoryMovie), MinRating: models.IntPtr(8)}, []int64{2}},
		{"status finished", Filter{Status: statusPtr(models.StatusFinished)}, []int64{1, 3, 6}},
		{"search case-insensitive", Filter{SearchText: "DUNE"}, []int64{1, 5}},
		{"search substring", Filter{SearchText: "blu"}, []int64{6}},
		{"search trimmed", Filter{SearchText: "  alien "}, []int64{2}},
		{"min rating excludes unrated", Filter{MinRating: models.IntPtr(0)}, []int64{1, 2, 3, 5, 6}},
		{"min rating inclusive", Filter{MinRating: models.IntPtr(9)}, []int64{1, 5, 6}},
		{"all combined", Filter{SearchText: "dune", Category: categoryPtr(models.CategoryBook), Status: statusPtr(models.StatusPlanned), MinRating: models.IntPtr(9)}, []int64{5}},
		{"no match", Filter{SearchText: "matrix"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Query{Filter: tt.filter, Sort: Sort{Field: SortByCreatedAt, Order: Ascending}}
			got := ids(Apply(sampleItems(), q))
			if !equalIDs(got, tt.want) {
				t.Errorf("Apply() ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	items := sampleItems()
	Apply(items, Query{Sort: Sort{Field: SortByTitle, Order: Descending}})
	if !equalIDs(ids(items), []int64{1, 2, 3, 4, 5, 6}) {
		t.Errorf("input reordered: %v", ids(items))
	}
}

func TestSortItems(t *testing.T) {
	tests := []struct {
		name string
		sort Sort
		want []int64
	}{
		{"title asc folds case", Sort{SortByTitle, Ascending}, []int64{2, 3, 1, 5, 6, 4}},
		{"title desc", Sort{SortByTitle, Descending}, []int64{4, 6, 5, 1, 3, 2}},
		{"category asc ties by id", Sort{SortByCategory, Ascending}, []int64{1, 5, 2, 3, 4, 6}},
		{"category desc ties by id", Sort{SortByCategory, Descending}, []int64{6, 4, 2, 3, 1, 5}},
		{"status asc", Sort{SortByStatus, Ascending}, []int64{2, 5, 4, 1, 3, 6}},
		{"rating desc unrated last", Sort{SortByRating, Descending}, []int64{6, 1, 5, 2, 3, 4}},
		{"rating asc unrated last", Sort{SortByRating, Ascending}, []int64{3, 2, 1, 5, 6, 4}},
		{"created desc", Sort{SortByCreatedAt, Descending}, []int64{6, 5, 4, 3, 2, 1}},
		{"updated asc", Sort{SortByUpdatedAt, Ascending}, []int64{1, 2, 3, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := sampleItems()
			SortItems(items, tt.sort)
			if got := ids(items); !equalIDs(got, tt.want) {
				t.Errorf("SortItems() ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortItems_RatingTieBreaksByID(t *testing.T) {
	items := []models.MediaItem{
		item(3, "C", models.CategoryOther, models.StatusPlanned, models.IntPtr(7)),
		item(2, "B", models.CategoryOther, models.StatusPlanned, models.IntPtr(9)),
		item(1, "A", models.CategoryOther, models.StatusPlanned, models.IntPtr(9)),
	}

	SortItems(items, Sort{Field: SortByRating, Order: Descending})

	if got := ids(items); !equalIDs(got, []int64{1, 2, 3}) {
		t.Errorf("ids = %v, want [1 2 3]", got)
	}
}

func TestSortItems_EqualTimestampsTieBreakByID(t *testing.T) {
	items := []models.MediaItem{
		item(2, "B", models.CategoryOther, models.StatusPlanned, nil),
		item(1, "A", models.CategoryOther, models.StatusPlanned, nil),
	}
	items[0].UpdatedAt = base
	items[1].UpdatedAt = base

	SortItems(items, Sort{Field: SortByUpdatedAt, Order: Descending})

	if got := ids(items); !equalIDs(got, []int64{1, 2}) {
		t.Errorf("ids = %v, want [1 2]", got)
	}
}

func TestParseSortField(t *testing.T) {
	tests := []struct {
		input   string
		want    SortField
		wantErr bool
	}{
		{"title", SortByTitle, false},
		{"Rating", SortByRating, false},
		{"created_at", SortByCreatedAt, false},
		{"createdAt", SortByCreatedAt, false},
		{"updated-at", SortByUpdatedAt, false},
		{"year", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortField(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSortField(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSortField(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	for input, want := range map[string]SortOrder{"asc": Ascending, "DESC": Descending, "descending": Descending} {
		got, err := ParseSortOrder(input)
		if err != nil || got != want {
			t.Errorf("ParseSortOrder(%q) = %q, %v; want %q", input, got, err, want)
		}
	}
	if _, err := ParseSortOrder("sideways"); !models.IsValidationError(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestQueryKey(t *testing.T) {
	a := Query{Filter: Filter{SearchText: "Dune "}, Sort: Sort{SortByTitle, Ascending}}
	b := Query{Filter: Filter{SearchText: "dune"}, Sort: Sort{SortByTitle, Ascending}}
	c := Query{Filter: Filter{SearchText: "dune", MinRating: models.IntPtr(5)}, Sort: Sort{SortByTitle, Ascending}}

	if a.Key() != b.Key() {
		t.Errorf("equivalent queries differ: %q vs %q", a.Key(), b.Key())
	}
	if b.Key() == c.Key() {
		t.Error("different queries share a key")
	}
}

func TestFilterIsEmpty(t *testing.T) {
	if !(Filter{SearchText: "  "}).IsEmpty() {
		t.Error("blank search should be empty")
	}
	if (Filter{MinRating: models.IntPtr(1)}).IsEmpty() {
		t.Error("min rating filter should not be empty")
	}
}
