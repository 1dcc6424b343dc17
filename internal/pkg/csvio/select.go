package csvio

import (
	"fmt"

	"github.com/ayushgpt/facalloc/internal/pkg/apperrors"
)

// SelectionMode chooses how faculty columns are picked from the table.
type SelectionMode string

const (
	// SelectionAuto uses every column after the anchor.
	SelectionAuto SelectionMode = "auto"
	// SelectionManual uses the first Count columns after the anchor.
	SelectionManual SelectionMode = "manual"
)

// Selection declares which faculty columns take part in a run. It replaces
// the implicit "everything after CGPA" convention with an explicit
// configuration while keeping the same selection semantics.
type Selection struct {
	AnchorColumn string
	Mode         SelectionMode
	// Count is only consulted in manual mode. A count above the available
	// column count is clamped with a warning rather than rejected.
	Count int
}

// SelectFaculties resolves the selection against the table's columns and
// returns the faculty columns to use, plus any warnings raised while
// resolving. Zero resulting columns is a configuration error.
func (t *Table) SelectFaculties(sel Selection) ([]string, []string, error) {
	available := t.FacultyColumns

	var warnings []string
	var chosen []string

	switch sel.Mode {
	case SelectionManual:
		if sel.Count < 1 {
			return nil, nil, apperrors.NewConfigurationError(fmt.Sprintf("faculty count must be at least 1, got %d", sel.Count))
		}
		if sel.Count > len(available) {
			warnings = append(warnings, fmt.Sprintf(
				"requested %d faculties but only %d found after %q, using all %d",
				sel.Count, len(available), anchorOrDefault(sel.AnchorColumn), len(available)))
			chosen = available
		} else {
			chosen = available[:sel.Count]
		}
	default: // SelectionAuto
		chosen = available
	}

	if len(chosen) == 0 {
		return nil, nil, apperrors.NewConfigurationError(fmt.Sprintf(
			"no faculty columns found after %q", anchorOrDefault(sel.AnchorColumn)))
	}

	// Copy so callers cannot alias the table's header slice.
	out := make([]string, len(chosen))
	copy(out, chosen)
	return out, warnings, nil
}

func anchorOrDefault(anchor string) string {
	if anchor == "" {
		return DefaultAnchorColumn
	}
	return anchor
}
