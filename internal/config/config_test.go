package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amaumene/mediacatalog/internal/catalog"
	"github.com/spf13/viper"
)

// resetViper clears global viper state and moves into an empty directory so no .env is picked up
func resetViper(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := resetViper(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	wantDir, _ := filepath.EvalSymlinks(dir)
	gotDir, _ := filepath.EvalSymlinks(cfg.DataDir)
	if gotDir != wantDir {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, dir)
	}
	if filepath.Base(cfg.DatabaseFile) != "media_catalog.sqlite" {
		t.Errorf("DatabaseFile = %q", cfg.DatabaseFile)
	}
	if filepath.Base(cfg.LogFile) != "media_catalog.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.DefaultSort != (catalog.Sort{Field: catalog.SortByUpdatedAt, Order: catalog.Descending}) {
		t.Errorf("DefaultSort = %+v", cfg.DefaultSort)
	}
	if cfg.ListCacheTTL != 5*time.Minute {
		t.Errorf("ListCacheTTL = %v, want 5m", cfg.ListCacheTTL)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	resetViper(t)
	dataDir := filepath.Join(t.TempDir(), "data")

	t.Setenv("DATA_DIR", dataDir)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEFAULT_SORT_FIELD", "rating")
	t.Setenv("DEFAULT_SORT_ORDER", "asc")
	t.Setenv("LIST_CACHE_TTL_SECONDS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DatabaseFile != filepath.Join(dataDir, "media_catalog.sqlite") {
		t.Errorf("DatabaseFile = %q", cfg.DatabaseFile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.DefaultSort.Field != catalog.SortByRating || cfg.DefaultSort.Order != catalog.Ascending {
		t.Errorf("DefaultSort = %+v", cfg.DefaultSort)
	}
	if cfg.ListCacheTTL != 0 {
		t.Errorf("ListCacheTTL = %v, want 0", cfg.ListCacheTTL)
	}

	q := cfg.DefaultQuery()
	if !q.Filter.IsEmpty() || q.Sort != cfg.DefaultSort {
		t.Errorf("DefaultQuery() = %+v", q)
	}
}

func TestLoad_ExplicitDatabaseFile(t *testing.T) {
	resetViper(t)
	dbFile := filepath.Join(t.TempDir(), "custom.db")
	t.Setenv("DATABASE_FILE", dbFile)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DatabaseFile != dbFile {
		t.Errorf("DatabaseFile = %q, want %q", cfg.DatabaseFile, dbFile)
	}
}

func TestLoad_InvalidSort(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"field", "DEFAULT_SORT_FIELD", "year"},
		{"order", "DEFAULT_SORT_ORDER", "random"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
