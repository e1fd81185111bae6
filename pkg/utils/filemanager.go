// =============================================================================
// XLSX to OSCAL Catalog - File Manager Utility
// =============================================================================
//
// This module provides output file utilities for the builder:
//   - Output directory management
//   - Catalog encoding in the three OSCAL formats (json, yaml, xml)
//   - Atomic catalog writes
//
// WRITE STRATEGY:
//   The catalog is encoded into a temporary file next to the destination and
//   renamed into place once fully written. A failed run never leaves a
//   partial catalog behind; an existing catalog is only replaced on success.
//
// =============================================================================

package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/oscal"
	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/xmlwriter"
)

// Permissions for created directories and files.
const (
	DirPermissions  = 0o755
	FilePermissions = 0o644
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles output file operations for the builder.
type FileManager struct {
	// OutputDir is the directory where the catalog is written.
	OutputDir string

	// Format is the output format: json, yaml or xml.
	Format string

	// BaseName is the catalog file name without extension.
	// Default: "catalog"
	BaseName string
}

// NewFileManager creates a new FileManager for the given output directory.
func NewFileManager(outputDir, format string) *FileManager {
	return &FileManager{
		OutputDir: outputDir,
		Format:    strings.ToLower(format),
		BaseName:  "catalog",
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates the output directory, with parents, if it does
// not exist.
func (fm *FileManager) EnsureDirectories() error {
	if err := os.MkdirAll(fm.OutputDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// OutputPath returns the full path of the catalog file.
func (fm *FileManager) OutputPath() string {
	return filepath.Join(fm.OutputDir, fm.BaseName+"."+fm.Format)
}

// =============================================================================
// CATALOG OUTPUT
// =============================================================================

// WriteCatalog encodes c into the output directory.
//
// RETURNS:
//   - The path to the written catalog.
//   - An error if the directory cannot be created or the file cannot be
//     written. Nothing is left at the destination on error.
func (fm *FileManager) WriteCatalog(c *oscal.Catalog) (string, error) {
	if err := fm.EnsureDirectories(); err != nil {
		return "", err
	}

	path := fm.OutputPath()
	if err := WriteFileAtomic(path, func(w io.Writer) error {
		return Encode(w, c, fm.Format)
	}); err != nil {
		return "", err
	}

	return path, nil
}

// Encode writes c to w in the given format.
func Encode(w io.Writer, c *oscal.Catalog, format string) error {
	doc := oscal.Document{Catalog: c}

	switch strings.ToLower(format) {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil

	case "yaml", "yml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return nil

	case "xml":
		return xmlwriter.Write(w, c, xmlwriter.DefaultGenerateOptions())

	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// =============================================================================
// FILE UTILITIES
// =============================================================================

// WriteFileAtomic writes the content produced by write to a temporary file
// in the destination directory, then renames it over path.
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(FilePermissions); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move catalog into place: %w", err)
	}

	return nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
