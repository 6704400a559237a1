package catalog

import (
	"testing"

	"github.com/amaumene/mediacatalog/internal/models"
)

func TestSuggest(t *testing.T) {
	items := sampleItems()

	got := Suggest(items, "Dnue", 3)
	if len(got) == 0 {
		t.Fatal("expected a suggestion for a transposed title")
	}
	if got[0].ID != 1 || got[0].Title != "Dune" {
		t.Errorf("best suggestion = %+v, want Dune", got[0])
	}
}

func TestSuggest_OrderAndLimit(t *testing.T) {
	items := []models.MediaItem{
		item(1, "Halo 3", models.CategoryGame, models.StatusPlanned, nil),
		item(2, "Halo", models.CategoryGame, models.StatusPlanned, nil),
		item(3, "Halo 2", models.CategoryGame, models.StatusPlanned, nil),
	}

	got := Suggest(items, "halo", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}
	if got[0].ID != 2 || got[0].Distance != 0 {
		t.Errorf("first = %+v, want exact match Halo", got[0])
	}
	if got[1].ID != 1 {
		t.Errorf("second = %+v, want lowest ID among equal distances", got[1])
	}
}

func TestSuggest_NothingClose(t *testing.T) {
	if got := Suggest(sampleItems(), "The Matrix Reloaded", 5); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
	if got := Suggest(sampleItems(), "   ", 5); got != nil {
		t.Errorf("blank text should yield nil, got %v", got)
	}
}
