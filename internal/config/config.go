package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/amaumene/mediacatalog/internal/catalog"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Paths
	DataDir      string // $DATA_DIR, defaults to the working directory
	DatabaseFile string // $DATA_DIR/media_catalog.sqlite
	ExportDir    string // where CSV exports are written
	LogFile      string // $DATA_DIR/media_catalog.log, used while the TUI owns the terminal

	// Logging
	LogLevel string

	// Catalog
	DefaultSort  catalog.Sort
	ListCacheTTL time.Duration
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Setup viper FIRST to load .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("DATA_DIR", ".")
	viper.SetDefault("EXPORT_DIR", ".")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DEFAULT_SORT_FIELD", string(catalog.SortByUpdatedAt))
	viper.SetDefault("DEFAULT_SORT_ORDER", string(catalog.Descending))
	viper.SetDefault("LIST_CACHE_TTL_SECONDS", 300)

	dataDir, err := absPath("DATA_DIR", viper.GetString("DATA_DIR"))
	if err != nil {
		return nil, err
	}
	exportDir, err := absPath("EXPORT_DIR", viper.GetString("EXPORT_DIR"))
	if err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	databaseFile := filepath.Join(dataDir, "media_catalog.sqlite")
	if v := viper.GetString("DATABASE_FILE"); v != "" {
		if databaseFile, err = absPath("DATABASE_FILE", v); err != nil {
			return nil, err
		}
	}
	logFile := filepath.Join(dataDir, "media_catalog.log")
	if v := viper.GetString("LOG_FILE"); v != "" {
		if logFile, err = absPath("LOG_FILE", v); err != nil {
			return nil, err
		}
	}

	sortField, err := catalog.ParseSortField(viper.GetString("DEFAULT_SORT_FIELD"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_SORT_FIELD: %w", err)
	}
	sortOrder, err := catalog.ParseSortOrder(viper.GetString("DEFAULT_SORT_ORDER"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_SORT_ORDER: %w", err)
	}

	config := &Config{
		// Paths
		DataDir:      dataDir,
		DatabaseFile: databaseFile,
		ExportDir:    exportDir,
		LogFile:      logFile,

		// Logging
		LogLevel: viper.GetString("LOG_LEVEL"),

		// Catalog
		DefaultSort:  catalog.Sort{Field: sortField, Order: sortOrder},
		ListCacheTTL: time.Duration(viper.GetInt("LIST_CACHE_TTL_SECONDS")) * time.Second,
	}

	// Validate
	if config.ListCacheTTL < 0 {
		return nil, fmt.Errorf("LIST_CACHE_TTL_SECONDS must not be negative")
	}

	return config, nil
}

// DefaultQuery returns an unfiltered query using the configured sort
func (c *Config) DefaultQuery() catalog.Query {
	return catalog.Query{Sort: c.DefaultSort}
}

// absPath converts a relative path to an absolute path
func absPath(key, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for %s: %w", key, err)
	}
	return abs, nil
}
