// =============================================================================
// XLSX to OSCAL Catalog - Converter Module
// =============================================================================
//
// This module contains the build pipeline. It turns one worksheet into one
// catalog file.
//
// CONVERSION PIPELINE:
//   1. Load the run metadata (sheet name, title, version)
//   2. Open the worksheet and map its header row
//   3. Fold every data row into the group tree
//   4. Assemble the catalog (uuid, metadata, run timestamp)
//   5. Run the data-quality checks
//   6. Write the output file
//
// A run either writes one complete catalog or fails before writing it.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/catalog"
	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/config"
	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/oscal"
	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/validation"
	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/xlsxparser"
	"github.com/ginjaninja78/xlsx-to-oscal-catalog/pkg/utils"
)

// ErrDataQuality is returned in strict mode when the checks report findings.
var ErrDataQuality = errors.New("data-quality checks failed")

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one run.
type Result struct {
	// InputFile is the workbook that was read.
	InputFile string

	// OutputFile is the path to the written catalog.
	// This is empty if the run failed or wrote nothing.
	OutputFile string

	// Catalog is the assembled catalog, when assembly was reached.
	Catalog *oscal.Catalog

	// Issues holds the data-quality findings.
	Issues []validation.Issue

	// Success indicates whether the run succeeded.
	Success bool

	// Error contains the error if the run failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the run.
type ProcessingStats struct {
	RowsProcessed  int
	Groups         int
	Subgroups      int
	Controls       int
	Warnings       int
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs the build pipeline for one set of settings.
type Converter struct {
	settings config.Settings

	// timestamp is the run's last-modified time, captured once by the caller.
	timestamp time.Time

	// dryRun skips the output write.
	dryRun bool

	logger zerolog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithDryRun builds and checks the catalog without writing it.
func WithDryRun() Option {
	return func(c *Converter) {
		c.dryRun = true
	}
}

// New creates a Converter. settings must already be resolved;
// timestamp becomes the catalog's last-modified value.
func New(settings config.Settings, timestamp time.Time, opts ...Option) *Converter {
	c := &Converter{
		settings:  settings,
		timestamp: timestamp,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline and reports the outcome.
func (c *Converter) Run() (result Result) {
	startTime := time.Now()
	result = Result{
		InputFile: c.settings.Input,
	}
	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	// =========================================================================
	// STEP 1: LOAD METADATA
	// =========================================================================

	meta, err := config.LoadMetadata(c.settings.YAML)
	if err != nil {
		result.Error = fmt.Errorf("failed to load metadata: %w", err)
		return result
	}

	c.logger.Debug().
		Str("file", c.settings.YAML).
		Str("sheet", meta.SheetName).
		Str("title", meta.Title).
		Str("version", meta.Version).
		Msg("loaded metadata")

	// =========================================================================
	// STEP 2-3: READ AND FOLD ROWS
	// =========================================================================

	agg, err := c.aggregate(meta.SheetName)
	if err != nil {
		result.Error = err
		return result
	}

	stats := agg.Stats()
	result.Stats.RowsProcessed = stats.Rows
	result.Stats.Groups = stats.Groups
	result.Stats.Subgroups = stats.Subgroups
	result.Stats.Controls = stats.Controls

	// =========================================================================
	// STEP 4: ASSEMBLE CATALOG
	// =========================================================================

	metadata := catalog.NewMetadata(meta.Title, meta.Version, c.timestamp)
	if meta.OSCALVersion != "" {
		metadata.OSCALVersion = meta.OSCALVersion
	}
	result.Catalog = agg.Catalog(metadata)

	c.logger.Debug().
		Str("uuid", result.Catalog.UUID).
		Int("groups", stats.Groups).
		Int("subgroups", stats.Subgroups).
		Int("controls", stats.Controls).
		Msg("assembled catalog")

	// =========================================================================
	// STEP 5: DATA-QUALITY CHECKS
	// =========================================================================

	result.Issues = validation.Check(result.Catalog)
	result.Stats.Warnings = len(result.Issues)

	for _, issue := range result.Issues {
		c.logger.Warn().
			Str("kind", string(issue.Kind)).
			Str("level", string(issue.Level)).
			Str("path", issue.Path).
			Msg(issue.Message)
	}

	if c.settings.Strict && len(result.Issues) > 0 {
		result.Error = fmt.Errorf("%w: %d finding(s)", ErrDataQuality, len(result.Issues))
		return result
	}

	// =========================================================================
	// STEP 6: WRITE OUTPUT FILE
	// =========================================================================

	if c.dryRun {
		result.Success = true
		return result
	}

	fm := utils.NewFileManager(c.settings.Output, c.settings.Format)
	c.logger.Info().Str("output", fm.OutputPath()).Msg("writing catalog")

	outputPath, err := fm.WriteCatalog(result.Catalog)
	if err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}

	result.OutputFile = outputPath
	result.Success = true

	return result
}

// aggregate streams the worksheet rows into a new Aggregator.
func (c *Converter) aggregate(sheetName string) (*catalog.Aggregator, error) {
	sheet, err := xlsxparser.Open(c.settings.Input, sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer sheet.Close()

	c.logger.Debug().
		Str("file", c.settings.Input).
		Str("sheet", sheet.Name()).
		Strs("headers", sheet.Headers()).
		Msg("mapped header row")

	agg := catalog.New()
	for row, err := range sheet.Rows() {
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		c.logger.Trace().Int("row", row.Number).Str("control", row.ControlID).Msg("row")
		agg.Add(row)
	}

	return agg, nil
}
