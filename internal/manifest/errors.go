package manifest

import (
	"errors"
	"fmt"
)

// Sentinel errors for the manifest package
var (
	// ErrManifestUnreadable indicates urls.txt is missing or cannot be read
	ErrManifestUnreadable = errors.New("manifest unreadable")

	// ErrEntryNotFound indicates no manifest line matches a package file
	ErrEntryNotFound = errors.New("not found in urls.txt")

	// ErrInvalidName indicates a lookup name that is not a plain file name
	ErrInvalidName = errors.New("invalid package file name")
)

// EntryNotFoundError reports a package file with no matching manifest line
type EntryNotFoundError struct {
	Name string
	Dir  string
}

func (e *EntryNotFoundError) Error() string {
	if e.Dir == "" {
		return fmt.Sprintf("%s %s!", e.Name, ErrEntryNotFound)
	}
	return fmt.Sprintf("%s %s! (package directory %s)", e.Name, ErrEntryNotFound, e.Dir)
}

func (e *EntryNotFoundError) Is(target error) bool {
	return target == ErrEntryNotFound
}
