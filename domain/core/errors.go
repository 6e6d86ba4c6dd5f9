package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrRunNotFound    = fmt.Errorf("%w: run", ErrNotFound)
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)

	// Analysis errors
	ErrNoData        = errors.New("no data left to analyze")
	ErrInvalidColumn = errors.New("column is not numeric")
	ErrInvalidRange  = errors.New("invalid value range")

	// Configuration errors
	ErrInvalidReference  = errors.New("invalid reference distribution")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewInvalidColumnError(column string, cell string, row int) error {
	return fmt.Errorf("%w: %s has non-numeric value %q at row %d", ErrInvalidColumn, column, cell, row)
}

func NewNoDataError(column string) error {
	if column == "" {
		return ErrNoData
	}
	return fmt.Errorf("%w in column %s", ErrNoData, column)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsNoDataError(err error) bool {
	return errors.Is(err, ErrNoData)
}

func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidColumn) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrUnsupportedFormat)
}
