package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	ErrNotFound        = errors.New("resource not found")
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)

	// Upload errors
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrNoDataRows      = errors.New("file must have a header row and at least one data row")

	ErrUnsupportedChart = errors.New("unsupported chart type")
)

// NewNotFoundError builds a not-found error for a resource id
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUploadError(err error) bool {
	return errors.Is(err, ErrUnsupportedFile) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrNoDataRows)
}
