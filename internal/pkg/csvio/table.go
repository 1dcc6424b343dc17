// Package csvio parses the tabular allocation input and renders the two
// output tables as CSV. The input schema is positional only at the anchor:
// the required columns Roll, Name, Email and the anchor (CGPA by default) may
// appear anywhere in the header, and every column after the anchor is a
// candidate faculty column.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ayushgpt/facalloc/internal/allocation"
	"github.com/ayushgpt/facalloc/internal/pkg/apperrors"
)

// Required leading columns of the input table.
const (
	ColumnRoll  = "Roll"
	ColumnName  = "Name"
	ColumnEmail = "Email"
	// DefaultAnchorColumn separates student identity columns from faculty
	// preference columns.
	DefaultAnchorColumn = "CGPA"
)

// Table is a fully parsed input table. Rows keep their file order, which the
// allocator relies on for stable merit tie-breaking.
type Table struct {
	// Columns is the complete header in file order.
	Columns []string
	// FacultyColumns is every column after the anchor, in file order.
	FacultyColumns []string
	// Students holds one record per data row.
	Students []allocation.Student
}

// ParseTable reads a CSV document with a header row and builds the student
// records. anchor names the column after which faculty columns begin; pass
// an empty string for the default. Missing required columns are reported by
// name as a configuration error. Cell errors (unparseable CGPA, non-positive
// or non-numeric preference rank, duplicated roll) fail the parse with the
// offending row and column named.
func ParseTable(r io.Reader, anchor string) (*Table, error) {
	if anchor == "" {
		anchor = DefaultAnchorColumn
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: no header row", apperrors.ErrMalformedTable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedTable, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}

	var missing []string
	for _, col := range []string{ColumnRoll, ColumnName, ColumnEmail, anchor} {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrMissingColumn, strings.Join(missing, ", "))
	}

	anchorIdx := index[anchor]
	table := &Table{
		Columns:        header,
		FacultyColumns: header[anchorIdx+1:],
	}

	seen := make(map[string]bool)
	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", apperrors.ErrMalformedTable, rowNum+1, err)
		}
		rowNum++

		roll := strings.TrimSpace(record[index[ColumnRoll]])
		if roll == "" {
			return nil, fmt.Errorf("%w: row %d: empty roll", apperrors.ErrMalformedTable, rowNum)
		}
		if seen[roll] {
			return nil, apperrors.NewCustomError(apperrors.ErrMalformedTable,
				fmt.Sprintf("row %d: duplicate roll %q", rowNum, roll)).
				WithDetails(map[string]interface{}{"row": rowNum, "roll": roll})
		}
		seen[roll] = true

		cgpa, err := strconv.ParseFloat(strings.TrimSpace(record[index[anchor]]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: invalid %s value %q", apperrors.ErrMalformedTable, rowNum, anchor, record[index[anchor]])
		}

		student := allocation.Student{
			Roll:  roll,
			Name:  strings.TrimSpace(record[index[ColumnName]]),
			Email: strings.TrimSpace(record[index[ColumnEmail]]),
			CGPA:  cgpa,
			Prefs: make(map[string]int),
		}

		for i, fac := range table.FacultyColumns {
			cell := strings.TrimSpace(record[anchorIdx+1+i])
			if cell == "" {
				continue
			}
			rank, err := parseRank(cell)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %q: %v", apperrors.ErrMalformedTable, rowNum, fac, err)
			}
			student.Prefs[fac] = rank
		}

		table.Students = append(table.Students, student)
	}

	if len(table.Students) == 0 {
		return nil, apperrors.ErrEmptyTable
	}
	return table, nil
}

// parseRank accepts a positive integer, tolerating the "1.0" spelling that
// spreadsheet exports produce for numeric columns with blanks.
func parseRank(cell string) (int, error) {
	if rank, err := strconv.Atoi(cell); err == nil {
		if rank < 1 {
			return 0, fmt.Errorf("preference rank must be positive, got %d", rank)
		}
		return rank, nil
	}

	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid preference rank %q", cell)
	}
	if f < 1 {
		return 0, fmt.Errorf("preference rank must be positive, got %g", f)
	}
	return int(f), nil
}
