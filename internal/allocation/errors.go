package allocation

import "errors"

// ErrNoFaculties indicates that no faculty columns were selected for the run.
// This is a configuration error: no allocation is attempted and no partial
// result is produced.
var ErrNoFaculties = errors.New("allocation: at least one faculty column is required")
