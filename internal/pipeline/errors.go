package pipeline

import "fmt"

// EmptyAfterCleaningError reports a table that cleaning reduced to zero rows.
// It is surfaced to the caller as a distinct condition rather than silently
// feeding an empty table into aggregation; the run itself still completes
// and writes a header-only output.
type EmptyAfterCleaningError struct {
	Table string
}

func (e *EmptyAfterCleaningError) Error() string {
	return fmt.Sprintf("table %q has no rows after cleaning", e.Table)
}
