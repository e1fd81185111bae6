// =============================================================================
// XLSX to OSCAL Catalog - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - xlsxparser (produces rows)
//   - catalog    (folds rows into the group tree)
//   - converter  (drives the pipeline)
//
// =============================================================================

package types

// =============================================================================
// ROW TYPES
// =============================================================================

// Row is one data row of the control worksheet, mapped to named fields via
// the header row. Every field is optional at this level; an absent cell is
// the empty string.
type Row struct {
	// Number is the 1-based spreadsheet row number.
	// Useful for error and warning messages.
	Number int

	GroupID    string
	GroupTitle string

	SubgroupID    string
	SubgroupTitle string

	ControlID          string
	ControlTitle       string
	ControlDescription string
}

// IsBlank reports whether every mapped field of the row is empty.
func (r Row) IsBlank() bool {
	return r.GroupID == "" &&
		r.GroupTitle == "" &&
		r.SubgroupID == "" &&
		r.SubgroupTitle == "" &&
		r.ControlID == "" &&
		r.ControlTitle == "" &&
		r.ControlDescription == ""
}
