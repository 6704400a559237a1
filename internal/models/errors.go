package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped in a StorageError) when no item has the requested ID
var ErrNotFound = errors.New("media item not found")

// ValidationError reports user input that cannot be committed
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// StorageError reports a failure of the underlying database file or one of its constraints
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err (or anything it wraps) is a ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsStorageError reports whether err (or anything it wraps) is a StorageError
func IsStorageError(err error) bool {
	var serr *StorageError
	return errors.As(err, &serr)
}
