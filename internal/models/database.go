package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database wraps the gorm sqlite store
type Database struct {
	db     *gorm.DB
	now    func() time.Time
	logger *logrus.Logger
}

// Option configures a Database
type Option func(*Database)

// WithClock overrides the clock used for created_at/updated_at.
// The default clock is time.Now in UTC.
func WithClock(now func() time.Time) Option {
	return func(d *Database) {
		d.now = now
	}
}

// NewDatabase opens (or creates) the database file and migrates the schema
func NewDatabase(path string, logger *logrus.Logger, opts ...Option) (*Database, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &StorageError{Op: "open", Err: fmt.Errorf("failed to create database directory: %w", err)}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.New(logger, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogLevel(logger),
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	// Single process, single writer
	sqlDB, err := db.DB()
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&MediaItem{}); err != nil {
		sqlDB.Close()
		return nil, &StorageError{Op: "migrate", Err: err}
	}

	d := &Database{
		db:     db,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
	for _, opt := range opts {
		opt(d)
	}

	logger.WithField("path", path).Debug("Database opened")
	return d, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateMedia inserts a new item and returns it with its assigned ID and timestamps
func (d *Database) CreateMedia(fields MediaFields) (*MediaItem, error) {
	item := &MediaItem{}
	item.apply(fields)

	now := d.now()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := d.db.Create(item).Error; err != nil {
		return nil, &StorageError{Op: "create", Err: err}
	}

	d.logger.WithFields(logrus.Fields{
		"media_id": item.ID,
		"title":    item.Title,
	}).Debug("Media created")
	return item, nil
}

// UpdateMedia replaces the writable fields of an existing item.
// ID and CreatedAt never change; UpdatedAt always moves forward.
func (d *Database) UpdateMedia(id int64, fields MediaFields) (*MediaItem, error) {
	var item MediaItem
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		item.apply(fields)
		item.UpdatedAt = d.nextUpdatedAt(item.UpdatedAt)
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, storageError("update", err)
	}

	d.logger.WithFields(logrus.Fields{
		"media_id": item.ID,
		"title":    item.Title,
	}).Debug("Media updated")
	return &item, nil
}

// DeleteMedia permanently removes an item by ID
func (d *Database) DeleteMedia(id int64) error {
	res := d.db.Delete(&MediaItem{}, id)
	if res.Error != nil {
		return &StorageError{Op: "delete", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &StorageError{Op: "delete", Err: ErrNotFound}
	}

	d.logger.WithField("media_id", id).Debug("Media deleted")
	return nil
}

// GetMediaByID retrieves a media item by ID
func (d *Database) GetMediaByID(id int64) (*MediaItem, error) {
	var item MediaItem
	if err := d.db.First(&item, id).Error; err != nil {
		return nil, storageError("get", err)
	}
	return &item, nil
}

// GetAllMedias retrieves every media item ordered by ID
func (d *Database) GetAllMedias() ([]MediaItem, error) {
	var items []MediaItem
	if err := d.db.Order("id ASC").Find(&items).Error; err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return items, nil
}

// CountMedias returns the number of stored items
func (d *Database) CountMedias() (int64, error) {
	var count int64
	if err := d.db.Model(&MediaItem{}).Count(&count).Error; err != nil {
		return 0, &StorageError{Op: "count", Err: err}
	}
	return count, nil
}

// nextUpdatedAt returns the current time, nudged past prev if the clock
// has not advanced since the last write.
func (d *Database) nextUpdatedAt(prev time.Time) time.Time {
	now := d.now()
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}

func storageError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &StorageError{Op: op, Err: ErrNotFound}
	}
	return &StorageError{Op: op, Err: err}
}

func gormLogLevel(logger *logrus.Logger) gormlogger.LogLevel {
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		return gormlogger.Info
	}
	return gormlogger.Silent
}
