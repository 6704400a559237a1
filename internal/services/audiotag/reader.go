// Package audiotag pre-fills Music items from the metadata tags of audio files.
package audiotag

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/amaumene/mediacatalog/internal/models"
	"github.com/dhowden/tag"
	"github.com/sirupsen/logrus"
)

// Reader builds MediaFields from audio files
type Reader struct {
	logger *logrus.Logger
}

// NewReader creates a new audio tag reader
func NewReader(logger *logrus.Logger) *Reader {
	return &Reader{logger: logger}
}

// Read parses the tags of the audio file at path.
// Files without tags still yield an item titled after the file name.
func (r *Reader) Read(path string) (*models.MediaFields, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			r.logger.WithField("path", path).Debug("No tags found, using file name")
			fields := FieldsFromTags(path, "", "", "", 0)
			return &fields, nil
		}
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	artist := m.Artist()
	if albumArtist := m.AlbumArtist(); artist == "" && albumArtist != "" {
		artist = albumArtist
	}

	r.logger.WithFields(logrus.Fields{
		"path":   path,
		"format": m.Format(),
		"artist": artist,
		"title":  m.Title(),
	}).Debug("Read audio tags")

	fields := FieldsFromTags(path, artist, m.Title(), m.Album(), m.Year())
	return &fields, nil
}

// FieldsFromTags maps tag values to a planned Music item
func FieldsFromTags(path, artist, title, album string, year int) models.MediaFields {
	artist = strings.TrimSpace(artist)
	title = strings.TrimSpace(title)
	album = strings.TrimSpace(album)

	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if artist != "" {
		title = artist + " - " + title
	}

	fields := models.MediaFields{
		Title:    title,
		Category: models.CategoryMusic,
		Status:   models.StatusPlanned,
	}

	var notes []string
	if album != "" {
		notes = append(notes, "Album: "+album)
	}
	if year > 0 {
		notes = append(notes, fmt.Sprintf("Year: %d", year))
	}
	if len(notes) > 0 {
		fields.Notes = models.StringPtr(strings.Join(notes, ", "))
	}

	return fields
}
