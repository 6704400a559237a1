package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/amaumene/mediacatalog/internal/models"
)

// Suggestion is a title close to a search text
type Suggestion struct {
	ID       int64
	Title    string
	Distance int
}

// Suggest returns up to limit item titles within edit distance of text,
// closest first. Used as "did you mean" when a search has no hits.
func Suggest(items []models.MediaItem, text string, limit int) []Suggestion {
	needle := foldString(strings.TrimSpace(text))
	if needle == "" || limit <= 0 {
		return nil
	}
	maxDistance := maxDistanceFor(needle)

	var out []Suggestion
	for i := range items {
		title := foldString(items[i].Title)
		d := levenshtein.ComputeDistance(needle, title)
		if d > maxDistance {
			continue
		}
		out = append(out, Suggestion{ID: items[i].ID, Title: items[i].Title, Distance: d})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].ID < out[j].ID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// maxDistanceFor allows roughly one typo per three characters, at least two
func maxDistanceFor(s string) int {
	d := len([]rune(s)) / 3
	if d < 2 {
		d = 2
	}
	return d
}
