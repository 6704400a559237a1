package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/amaumene/mediacatalog/internal/models"
	"github.com/amaumene/mediacatalog/internal/utils"
	"github.com/sirupsen/logrus"
)

const maxExportSuffix = 1000

// ExportHeader is the first row of every CSV export
var ExportHeader = []string{
	"id",
	"title",
	"category",
	"status",
	"rating",
	"notes",
	"cover_path",
	"created_at",
	"updated_at",
}

// Exporter writes item lists to CSV files
type Exporter struct {
	dir    string
	now    func() time.Time
	logger *logrus.Logger
}

// NewExporter creates an exporter writing into dir
func NewExporter(dir string, logger *logrus.Logger) *Exporter {
	return &Exporter{
		dir:    dir,
		now:    time.Now,
		logger: logger,
	}
}

// Export writes items to a new timestamped CSV file and returns its path
func (e *Exporter) Export(items []models.MediaItem) (string, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	f, path, err := createExportFile(e.dir, e.now())
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	if err := WriteCSV(f, items); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}

	e.logger.WithFields(logrus.Fields{
		"path":  path,
		"items": len(items),
	}).Info("Exported CSV")
	return path, nil
}

// createExportFile creates a new export file in dir without overwriting earlier ones.
// Exports within the same second get a _1, _2, ... suffix.
func createExportFile(dir string, t time.Time) (*os.File, string, error) {
	base := utils.ExportFileName(t)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for n := 0; n < maxExportSuffix; n++ {
		name := base
		if n > 0 {
			name = fmt.Sprintf("%s_%d%s", stem, n, ext)
		}
		path := filepath.Join(dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("no free file name for %s", base)
}

// WriteCSV writes a header row and one row per item to w
func WriteCSV(w io.Writer, items []models.MediaItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, item := range items {
		record := []string{
			strconv.FormatInt(item.ID, 10),
			item.Title,
			item.Category.String(),
			item.Status.Label(),
			utils.FormatOptionalInt(item.Rating),
			utils.FormatOptionalString(item.Notes),
			utils.FormatOptionalString(item.CoverPath),
			item.CreatedAt.Local().Format(utils.ExportTimeLayout),
			item.UpdatedAt.Local().Format(utils.ExportTimeLayout),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row for media %d: %w", item.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
