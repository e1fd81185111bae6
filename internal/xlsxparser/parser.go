// =============================================================================
// XLSX to OSCAL Catalog - Worksheet Row Source
// =============================================================================
//
// This module reads the control worksheet of an XLSX workbook and yields one
// types.Row per data row. Columns are located by header name, not position.
//
// WORKSHEET STRUCTURE (Expected Columns, any order):
//
//   | Group Id | Group Title | Sub Group Id | Sub Group Title | Control Id | Control Title | Control Description |
//   |----------|-------------|--------------|-----------------|------------|---------------|---------------------|
//   | GOVERN   | Govern      | GOVERN 1     | Policies ...    | GOVERN 1.1 | Legal ...     | Legal and ...       |
//
//   Row 1 holds the headers. Header names are matched case-insensitively.
//   Data starts at row 2 and continues through the last populated row.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/types"
)

// =============================================================================
// COLUMN NAMES
// =============================================================================

// Header names of the seven mapped columns.
const (
	ColumnGroupID            = "Group Id"
	ColumnGroupTitle         = "Group Title"
	ColumnSubgroupID         = "Sub Group Id"
	ColumnSubgroupTitle      = "Sub Group Title"
	ColumnControlID          = "Control Id"
	ColumnControlTitle       = "Control Title"
	ColumnControlDescription = "Control Description"
)

// Columns lists the mapped columns in row-record order.
var Columns = []string{
	ColumnGroupID,
	ColumnGroupTitle,
	ColumnSubgroupID,
	ColumnSubgroupTitle,
	ColumnControlID,
	ColumnControlTitle,
	ColumnControlDescription,
}

// HeaderRow is the 1-based row holding the column headers.
// Data rows follow it.
const HeaderRow = 1

// =============================================================================
// SHEET
// =============================================================================

// Sheet is an open worksheet with its header mapping resolved.
type Sheet struct {
	file *excelize.File
	name string

	// columns maps a normalized header name to its 0-based column index.
	columns map[string]int

	// headers holds the normalized header names in column order.
	headers []string
}

// Open opens the workbook at path and prepares the named worksheet.
//
// RETURNS:
//   - *SheetNotFoundError if the worksheet does not exist.
//   - *MissingColumnError for the first mapped column absent from the header row.
func Open(path, sheetName string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return newSheet(f, sheetName)
}

// OpenReader is Open for a workbook held in memory.
func OpenReader(r io.Reader, sheetName string) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	return newSheet(f, sheetName)
}

func newSheet(f *excelize.File, sheetName string) (*Sheet, error) {
	s := &Sheet{
		file:    f,
		name:    sheetName,
		columns: make(map[string]int),
	}

	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		f.Close()
		return nil, &SheetNotFoundError{Sheet: sheetName, Available: f.GetSheetList()}
	}

	if err := s.mapHeaders(); err != nil {
		f.Close()
		return nil, err
	}

	return s, nil
}

// mapHeaders reads the header row and records the column of every non-empty
// header cell. A repeated header maps to its last occurrence.
func (s *Sheet) mapHeaders() error {
	rows, err := s.file.Rows(s.name)
	if err != nil {
		return fmt.Errorf("failed to read sheet %q: %w", s.name, err)
	}
	defer rows.Close()

	var cells []string
	if rows.Next() {
		cells, err = rows.Columns()
		if err != nil {
			return fmt.Errorf("failed to read header row of sheet %q: %w", s.name, err)
		}
	}
	if err := rows.Error(); err != nil {
		return fmt.Errorf("failed to read header row of sheet %q: %w", s.name, err)
	}

	for col, cell := range cells {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		name := normalize(cell)
		s.columns[name] = col
		s.headers = append(s.headers, name)
	}

	for _, column := range Columns {
		if _, ok := s.columns[normalize(column)]; !ok {
			return &MissingColumnError{Sheet: s.name, Column: column}
		}
	}

	return nil
}

// Name returns the worksheet name.
func (s *Sheet) Name() string {
	return s.name
}

// Headers returns the normalized header names in column order.
func (s *Sheet) Headers() []string {
	return s.headers
}

// Rows returns an iterator over the data rows in worksheet order.
//
// Rows whose mapped cells are all empty are skipped. Iteration stops after
// the first error, which is yielded with a zero Row.
func (s *Sheet) Rows() iter.Seq2[types.Row, error] {
	return func(yield func(types.Row, error) bool) {
		rows, err := s.file.Rows(s.name)
		if err != nil {
			yield(types.Row{}, fmt.Errorf("failed to read sheet %q: %w", s.name, err))
			return
		}
		defer rows.Close()

		number := 0
		for rows.Next() {
			number++
			if number <= HeaderRow {
				continue
			}

			cells, err := rows.Columns()
			if err != nil {
				yield(types.Row{}, fmt.Errorf("failed to read row %d of sheet %q: %w", number, s.name, err))
				return
			}

			row := s.record(number, cells)
			if row.IsBlank() {
				continue
			}
			if !yield(row, nil) {
				return
			}
		}

		if err := rows.Error(); err != nil {
			yield(types.Row{}, fmt.Errorf("failed to iterate sheet %q: %w", s.name, err))
		}
	}
}

// Close releases the workbook.
func (s *Sheet) Close() error {
	return s.file.Close()
}

// record maps the raw cells of one row onto a row record.
func (s *Sheet) record(number int, cells []string) types.Row {
	return types.Row{
		Number:             number,
		GroupID:            s.cell(cells, ColumnGroupID),
		GroupTitle:         s.cell(cells, ColumnGroupTitle),
		SubgroupID:         s.cell(cells, ColumnSubgroupID),
		SubgroupTitle:      s.cell(cells, ColumnSubgroupTitle),
		ControlID:          s.cell(cells, ColumnControlID),
		ControlTitle:       s.cell(cells, ColumnControlTitle),
		ControlDescription: s.cell(cells, ColumnControlDescription),
	}
}

// cell returns the raw value under the named column. Trailing empty cells are
// not returned by excelize, so an index past the end reads as empty.
func (s *Sheet) cell(cells []string, column string) string {
	index := s.columns[normalize(column)]
	if index < len(cells) {
		return cells[index]
	}
	return ""
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// normalize maps a header name to its lookup key.
func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
