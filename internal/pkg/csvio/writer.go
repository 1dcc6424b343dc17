package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ayushgpt/facalloc/internal/allocation"
)

// WriteAllocation renders the allocation result table as CSV with the header
// Roll,Name,Email,CGPA,Allocated. Rows follow the result's assignment order.
func WriteAllocation(w io.Writer, res *allocation.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{ColumnRoll, ColumnName, ColumnEmail, DefaultAnchorColumn, "Allocated"}); err != nil {
		return fmt.Errorf("write allocation header: %w", err)
	}
	for _, a := range res.Assignments {
		row := []string{a.Roll, a.Name, a.Email, formatCGPA(a.CGPA), a.Faculty}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write allocation row for %s: %w", a.Roll, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTally renders the preference tally as CSV with the header
// Fac,Count Pref 1,...,Count Pref n.
func WriteTally(w io.Writer, tally *allocation.Tally) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, tally.Ranks+1)
	header = append(header, "Fac")
	for i := 1; i <= tally.Ranks; i++ {
		header = append(header, fmt.Sprintf("Count Pref %d", i))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write tally header: %w", err)
	}

	for _, row := range tally.Rows {
		record := make([]string, 0, tally.Ranks+1)
		record = append(record, row.Faculty)
		for _, count := range row.Counts {
			record = append(record, strconv.Itoa(count))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write tally row for %s: %w", row.Faculty, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatCGPA(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
