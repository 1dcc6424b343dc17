package allocation

import "sort"

// Allocate runs a single allocation over the given students and faculty
// columns. It plans capacities, sorts students by CGPA descending (a stable
// sort: equal-CGPA students keep their input order, which decides priority
// between them), then performs the rank-major greedy pass followed by the
// least-loaded fallback pass.
//
// The greedy pass sweeps preference ranks 1..n in order; within a rank it
// visits unassigned students in merit order and assigns each to the faculty
// it ranked at that level, provided the faculty still has a free seat. When a
// student ranked two faculties at the same level, the first faculty in column
// order wins. There is no backtracking: a student whose choice is full at the
// moment of the sweep falls through to a lower rank or to the fallback pass,
// even if a globally better matching exists.
//
// The fallback pass assigns every remaining student to the faculty with the
// lowest current load, first such faculty in column order on ties. Every
// student is therefore assigned by the end of the run.
//
// The input slice is never mutated; Allocate sorts a copy.
func Allocate(students []Student, faculties []string) (*Result, error) {
	limits, err := PlanCapacities(len(students), faculties)
	if err != nil {
		return nil, err
	}

	sorted := make([]Student, len(students))
	copy(sorted, students)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CGPA > sorted[j].CGPA
	})

	loads := make(map[string]int, len(faculties))
	for _, fac := range faculties {
		loads[fac] = 0
	}
	assigned := make(map[string]bool, len(sorted))
	assignments := make([]Assignment, 0, len(sorted))

	assign := func(s Student, fac string) {
		assignments = append(assignments, Assignment{
			Roll:    s.Roll,
			Name:    s.Name,
			Email:   s.Email,
			CGPA:    s.CGPA,
			Faculty: fac,
		})
		assigned[s.Roll] = true
		loads[fac]++
	}

	// Preference pass, rank-major.
	for prefNum := 1; prefNum <= len(faculties); prefNum++ {
		for _, s := range sorted {
			if assigned[s.Roll] {
				continue
			}
			fac, ok := facultyAtRank(s, faculties, prefNum)
			if !ok {
				continue
			}
			if loads[fac] < limits[fac] {
				assign(s, fac)
			}
		}
	}

	// Fallback pass for students whose every ranked faculty filled up, or who
	// ranked nothing at all.
	fallback := 0
	for _, s := range sorted {
		if assigned[s.Roll] {
			continue
		}
		assign(s, leastLoaded(faculties, loads))
		fallback++
	}

	return &Result{
		Assignments: assignments,
		Capacities:  limits,
		Loads:       loads,
		Fallback:    fallback,
	}, nil
}

// facultyAtRank returns the faculty the student ranked at the given level.
// Faculties are scanned in column order, so the first match wins when a
// student recorded the same rank twice.
func facultyAtRank(s Student, faculties []string, rank int) (string, bool) {
	for _, fac := range faculties {
		if r, ok := s.Rank(fac); ok && r == rank {
			return fac, true
		}
	}
	return "", false
}

// leastLoaded returns the faculty with the minimum current load, first in
// column order on ties.
func leastLoaded(faculties []string, loads map[string]int) string {
	best := faculties[0]
	for _, fac := range faculties[1:] {
		if loads[fac] < loads[best] {
			best = fac
		}
	}
	return best
}
