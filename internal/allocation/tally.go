package allocation

import "fmt"

// TallyRow holds the stated-preference counts for one faculty. Counts[i] is
// the number of students who ranked the faculty at preference i+1.
type TallyRow struct {
	Faculty string
	Counts  []int
}

// Tally is the faculty-by-rank preference count table. It reflects what
// students asked for, not what the allocator produced: the two are computed
// independently and a full tally can be produced even when allocation fails.
type Tally struct {
	// Ranks is the number of preference levels counted (the faculty count).
	Ranks int
	Rows  []TallyRow
}

// TallyPreferences counts, for each selected faculty and each rank 1..n, how
// many students assigned that rank to that faculty. tableColumns is the full
// set of columns present in the input table; a selected faculty missing from
// it is skipped with a warning rather than failing the run, and its row is
// omitted from the result.
func TallyPreferences(students []Student, faculties, tableColumns []string) (*Tally, []string, error) {
	n := len(faculties)
	if n == 0 {
		return nil, nil, ErrNoFaculties
	}

	present := make(map[string]bool, len(tableColumns))
	for _, col := range tableColumns {
		present[col] = true
	}

	var warnings []string
	tally := &Tally{Ranks: n, Rows: make([]TallyRow, 0, n)}

	for _, fac := range faculties {
		if !present[fac] {
			warnings = append(warnings, fmt.Sprintf("faculty column %q not found in input, skipping", fac))
			continue
		}
		row := TallyRow{Faculty: fac, Counts: make([]int, n)}
		for _, s := range students {
			if r, ok := s.Rank(fac); ok && r >= 1 && r <= n {
				row.Counts[r-1]++
			}
		}
		tally.Rows = append(tally.Rows, row)
	}
	return tally, warnings, nil
}
