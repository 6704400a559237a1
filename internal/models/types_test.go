package models

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"Book", CategoryBook, false},
		{"movie", CategoryMovie, false},
		{"  GAME ", CategoryGame, false},
		{"music", CategoryMusic, false},
		{"other", CategoryOther, false},
		{"podcast", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !IsValidationError(err) {
				t.Errorf("expected ValidationError, got %T", err)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"Planned", StatusPlanned, false},
		{"InProgress", StatusInProgress, false},
		{"In Progress", StatusInProgress, false},
		{"in_progress", StatusInProgress, false},
		{"in-progress", StatusInProgress, false},
		{"finished", StatusFinished, false},
		{"done", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRankOrder(t *testing.T) {
	if !(CategoryBook.Rank() < CategoryMovie.Rank() && CategoryMusic.Rank() < CategoryOther.Rank()) {
		t.Error("category ranks out of order")
	}
	if !(StatusPlanned.Rank() < StatusInProgress.Rank() && StatusInProgress.Rank() < StatusFinished.Rank()) {
		t.Error("status ranks out of order")
	}
	if Category("Podcast").Rank() != -1 {
		t.Error("unknown category should rank -1")
	}
}

func TestMediaFields_Validate(t *testing.T) {
	valid := MediaFields{Title: "Dune", Category: CategoryBook, Status: StatusPlanned}

	tests := []struct {
		name    string
		mutate  func(f *MediaFields)
		field   string
		wantErr bool
	}{
		{"valid", func(f *MediaFields) {}, "", false},
		{"rating zero", func(f *MediaFields) { f.Rating = IntPtr(0) }, "", false},
		{"rating ten", func(f *MediaFields) { f.Rating = IntPtr(10) }, "", false},
		{"empty title", func(f *MediaFields) { f.Title = "" }, "title", true},
		{"blank title", func(f *MediaFields) { f.Title = "   " }, "title", true},
		{"rating negative", func(f *MediaFields) { f.Rating = IntPtr(-1) }, "rating", true},
		{"rating eleven", func(f *MediaFields) { f.Rating = IntPtr(11) }, "rating", true},
		{"bad category", func(f *MediaFields) { f.Category = "Podcast" }, "category", true},
		{"bad status", func(f *MediaFields) { f.Status = "Dropped" }, "status", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			err := f.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestMediaFields_Normalize(t *testing.T) {
	f := MediaFields{
		Title:     "  Dune  ",
		Category:  CategoryBook,
		Notes:     StringPtr("   "),
		CoverPath: StringPtr("/covers/dune.png"),
	}.Normalize()

	if f.Title != "Dune" {
		t.Errorf("Title = %q, want Dune", f.Title)
	}
	if f.Status != StatusPlanned {
		t.Errorf("Status = %q, want Planned", f.Status)
	}
	if f.Notes != nil {
		t.Errorf("blank notes should become nil, got %q", *f.Notes)
	}
	if f.CoverPath == nil || *f.CoverPath != "/covers/dune.png" {
		t.Errorf("CoverPath = %v", f.CoverPath)
	}
}

func TestStatusLabel(t *testing.T) {
	if StatusInProgress.Label() != "In Progress" {
		t.Errorf("Label() = %q", StatusInProgress.Label())
	}
	if StatusFinished.Label() != "Finished" {
		t.Errorf("Label() = %q", StatusFinished.Label())
	}
}
