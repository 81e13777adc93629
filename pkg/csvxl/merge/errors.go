package merge

import "fmt"

// MissingKeyColumnError indicates a duplicate-key column absent from the
// existing or candidate table of a merge step.
type MissingKeyColumnError struct {
	Sheet  string
	Column string
}

func (e *MissingKeyColumnError) Error() string {
	return fmt.Sprintf("duplicate key column %q not found in sheet %q", e.Column, e.Sheet)
}
