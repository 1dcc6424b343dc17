package allocation

// Student is one parsed row of the input table.
type Student struct {
	Roll  string
	Name  string
	Email string
	CGPA  float64
	// Prefs maps a faculty column name to the rank the student assigned it
	// (1 = most preferred). A faculty absent from the map means the student
	// stated no preference for it.
	Prefs map[string]int
}

// Rank returns the preference rank this student assigned to the faculty and
// whether a preference was stated at all.
func (s Student) Rank(faculty string) (int, bool) {
	r, ok := s.Prefs[faculty]
	return r, ok
}

// Assignment is one row of the allocation output table.
type Assignment struct {
	Roll    string
	Name    string
	Email   string
	CGPA    float64
	Faculty string
}

// Result is the outcome of a single allocation run. Assignments are ordered by
// the moment of assignment: preference-pass assignments first (rank-major,
// merit-descending within a rank), then fallback assignments in merit order.
type Result struct {
	Assignments []Assignment
	// Capacities holds the per-faculty limits computed by the planner.
	Capacities map[string]int
	// Loads holds the final per-faculty assigned counts.
	Loads map[string]int
	// Fallback is the number of students assigned by the fallback pass.
	Fallback int
}
