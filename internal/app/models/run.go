package models

import (
	"time"

	"github.com/ayushgpt/facalloc/internal/allocation"
)

// Run captures everything produced by one allocation run. Runs live in an
// in-process registry for the lifetime of the server; nothing survives a
// restart except the CSV files written to the storage directory.
type Run struct {
	ID        string
	CreatedAt time.Time

	// Faculties is the resolved faculty column selection, in column order.
	Faculties []string
	// StudentCount is the number of parsed input rows.
	StudentCount int

	Result *allocation.Result
	// Tally is nil when the tally pass failed; the allocation stands on its
	// own in that case.
	Tally *allocation.Tally

	// Warnings collects selection and tally warnings, in the order raised.
	Warnings []string

	// On-disk paths of the generated output tables.
	ResultPath string
	TallyPath  string
}
