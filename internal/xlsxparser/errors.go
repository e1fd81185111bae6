package xlsxparser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumn indicates a required header is absent from the sheet.
	ErrMissingColumn = errors.New("missing column")

	// ErrSheetNotFound indicates the configured worksheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")
)

// MissingColumnError names the required column that could not be mapped.
type MissingColumnError struct {
	Sheet  string
	Column string
}

// Error implements the error interface
func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("sheet %q has no %q column in row %d", e.Sheet, e.Column, HeaderRow)
}

// Is implements errors.Is support
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// SheetNotFoundError names the worksheet that could not be found.
type SheetNotFoundError struct {
	Sheet     string
	Available []string
}

// Error implements the error interface
func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found (available: %s)", e.Sheet, strings.Join(e.Available, ", "))
}

// Is implements errors.Is support
func (e *SheetNotFoundError) Is(target error) bool {
	return target == ErrSheetNotFound
}
