package config

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingKey indicates a required metadata key is absent or empty.
	ErrMissingKey = errors.New("missing metadata key")

	// ErrInvalidFormat indicates an unsupported output format.
	ErrInvalidFormat = errors.New("invalid output format")
)

// MissingKeyError names the metadata key that is missing.
type MissingKeyError struct {
	File string
	Key  string
}

// Error implements the error interface
func (e *MissingKeyError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("metadata file %s: required key %q is missing or empty", e.File, e.Key)
	}
	return fmt.Sprintf("metadata: required key %q is missing or empty", e.Key)
}

// Is implements errors.Is support
func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}
