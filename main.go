// =============================================================================
// XLSX to OSCAL Catalog - Main Entry Point
// =============================================================================
//
// This is the main entry point for the catalog CLI. It delegates command
// execution to the cmd package.
//
// USAGE:
//   catalog build      - Build catalogs/AI_RMF/catalog.json from data/AI-RMF.xlsx
//   catalog validate   - Report data-quality findings without writing
//   catalog version    - Display the application version
//
// ARCHITECTURE:
//   - cmd/        : CLI command definitions (Cobra)
//   - internal/   : row source, aggregator, model, checks, XML writer
//   - pkg/        : output file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/xlsx-to-oscal-catalog/cmd"
)

func main() {
	cmd.Execute()
}
