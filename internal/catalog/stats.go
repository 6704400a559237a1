package catalog

import "github.com/amaumene/mediacatalog/internal/models"

// Stats summarises a set of items
type Stats struct {
	Total      int
	Finished   int
	Unfinished int
	ByCategory map[models.Category]int
}

// CategoryCount is one entry of Stats.Categories
type CategoryCount struct {
	Category models.Category
	Count    int
}

// Result is a filtered, sorted item list and the statistics of that list
type Result struct {
	Items []models.MediaItem
	Stats Stats
}

// ComputeStats counts items by completion and category.
// Categories with no items are absent from ByCategory.
func ComputeStats(items []models.MediaItem) Stats {
	stats := Stats{
		Total:      len(items),
		ByCategory: make(map[models.Category]int),
	}

	for i := range items {
		if items[i].IsFinished() {
			stats.Finished++
		}
		stats.ByCategory[items[i].Category]++
	}
	stats.Unfinished = stats.Total - stats.Finished

	return stats
}

// Categories returns the non-zero category counts in category order
func (s Stats) Categories() []CategoryCount {
	var out []CategoryCount
	for _, c := range models.Categories {
		if n := s.ByCategory[c]; n > 0 {
			out = append(out, CategoryCount{Category: c, Count: n})
		}
	}
	return out
}

// Run filters and sorts items, then computes statistics over the filtered set
func Run(items []models.MediaItem, q Query) *Result {
	selected := Apply(items, q)
	return &Result{
		Items: selected,
		Stats: ComputeStats(selected),
	}
}
