// =============================================================================
// XLSX to OSCAL Catalog - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing configuration. It
// handles both the run metadata document and the resolved run settings.
//
// CONFIGURATION SOURCES:
//   1. Metadata (data/AI-RMF.yaml): worksheet name plus catalog title/version
//   2. Settings: command-line flags and CATALOG_* environment variables,
//      bound by the cmd package
//
// EXAMPLE METADATA FILE:
//
//   sheet-name: AI RMF
//   title: NIST AI Risk Management Framework
//   version: "1.0"
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// METADATA STRUCTURE
// =============================================================================

// Metadata holds the run metadata loaded from the YAML document.
type Metadata struct {
	// SheetName is the worksheet holding the controls.
	SheetName string `yaml:"sheet-name"`

	// Title is the catalog title.
	Title string `yaml:"title"`

	// Version is the catalog document version.
	Version string `yaml:"version"`

	// OSCALVersion optionally overrides the OSCAL schema version tag.
	OSCALVersion string `yaml:"oscal-version,omitempty"`
}

// =============================================================================
// METADATA LOADING
// =============================================================================

// LoadMetadata loads the run metadata from a YAML file.
//
// RETURNS:
//   - A pointer to the Metadata struct.
//   - *MissingKeyError if sheet-name, title or version is absent or empty.
//   - An error if the file cannot be read or parsed.
func LoadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	meta, err := ParseMetadata(data)
	if err != nil {
		var missing *MissingKeyError
		if errors.As(err, &missing) {
			missing.File = path
		}
		return nil, err
	}

	return meta, nil
}

// ParseMetadata parses and validates a metadata document.
func ParseMetadata(data []byte) (*Metadata, error) {
	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse metadata file: %w", err)
	}

	if err := meta.Validate(); err != nil {
		return nil, err
	}

	return &meta, nil
}

// Validate checks that every required key carries a value.
func (m *Metadata) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"sheet-name", m.SheetName},
		{"title", m.Title},
		{"version", m.Version},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &MissingKeyError{Key: r.key}
		}
	}

	return nil
}

// =============================================================================
// SETTINGS STRUCTURE
// =============================================================================

// Output formats understood by the writer.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXML  = "xml"
)

// Formats lists the supported output formats.
var Formats = []string{FormatJSON, FormatYAML, FormatXML}

// Default paths, relative to the root directory.
const (
	DefaultInput  = "data/AI-RMF.xlsx"
	DefaultYAML   = "data/AI-RMF.yaml"
	DefaultOutput = "catalogs/AI_RMF"
	DefaultFormat = FormatJSON

	// OutputBaseName is the output file name without extension.
	OutputBaseName = "catalog"
)

// Settings holds the resolved settings for one run.
type Settings struct {
	// Root anchors every relative path below.
	// Default: the current working directory.
	Root string

	// Input is the XLSX workbook.
	Input string

	// YAML is the metadata document.
	YAML string

	// Output is the directory receiving the catalog file.
	// It is created if missing.
	Output string

	// Format selects json, yaml or xml output.
	Format string

	// Strict turns data-quality warnings into a failed run.
	Strict bool
}

// ApplyDefaults sets default values for any unset option.
func (s *Settings) ApplyDefaults() {
	if s.Root == "" {
		if wd, err := os.Getwd(); err == nil {
			s.Root = wd
		} else {
			s.Root = "."
		}
	}
	if s.Input == "" {
		s.Input = DefaultInput
	}
	if s.YAML == "" {
		s.YAML = DefaultYAML
	}
	if s.Output == "" {
		s.Output = DefaultOutput
	}
	if s.Format == "" {
		s.Format = DefaultFormat
	}
	s.Format = strings.ToLower(s.Format)
}

// Validate checks the settings for unsupported values.
func (s *Settings) Validate() error {
	if !slices.Contains(Formats, s.Format) {
		return fmt.Errorf("%w: %q (want one of %s)", ErrInvalidFormat, s.Format, strings.Join(Formats, ", "))
	}
	return nil
}

// Resolve anchors relative paths at Root. Absolute paths are kept.
func (s *Settings) Resolve() {
	s.Input = s.resolve(s.Input)
	s.YAML = s.resolve(s.YAML)
	s.Output = s.resolve(s.Output)
}

func (s *Settings) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.Root, path)
}

// OutputFile returns the full path of the catalog file.
func (s *Settings) OutputFile() string {
	return filepath.Join(s.Output, OutputBaseName+"."+s.Format)
}
