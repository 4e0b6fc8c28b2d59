package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrPlacementFailed indicates a package could not be copied into the channel tree
	ErrPlacementFailed = errors.New("placement failed")

	// ErrNoSourceDirs indicates no package directories were given
	ErrNoSourceDirs = errors.New("at least one package directory is required")
)

// PlacementError represents a filesystem failure while placing a package
type PlacementError struct {
	Name        string
	Destination string
	Op          string
	Err         error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("%s: %s %s to %s: %v", ErrPlacementFailed, e.Op, e.Name, e.Destination, e.Err)
}

func (e *PlacementError) Unwrap() []error {
	return []error{ErrPlacementFailed, e.Err}
}

// NewPlacementError creates a new PlacementError
func NewPlacementError(op, name, destination string, err error) *PlacementError {
	return &PlacementError{
		Name:        name,
		Destination: destination,
		Op:          op,
		Err:         err,
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
