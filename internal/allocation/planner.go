package allocation

// PlanCapacities computes the per-faculty capacity limit for a run of total
// students over the given faculty columns. Every faculty receives the base
// load (total div n); the remainder (total mod n) is distributed one extra
// seat each to the first faculties in column order. The limits always sum to
// total exactly and differ by at most one seat across faculties.
//
// PlanCapacities is a pure function of its inputs. It returns ErrNoFaculties
// when the faculty list is empty.
func PlanCapacities(total int, faculties []string) (map[string]int, error) {
	n := len(faculties)
	if n == 0 {
		return nil, ErrNoFaculties
	}

	base := total / n
	extra := total % n

	limits := make(map[string]int, n)
	for _, fac := range faculties {
		limits[fac] = base
	}
	for i := 0; i < extra; i++ {
		limits[faculties[i]]++
	}
	return limits, nil
}
