package timeseries

import "fmt"

// InsufficientDataError reports a series shorter than the minimum an
// operation requires.
type InsufficientDataError struct {
	Op   string
	Need int
	Got  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: need at least %d observations, got %d", e.Op, e.Need, e.Got)
}

// AlignmentError reports two series whose timestamp indices do not correspond
// pointwise. Index is -1 when the lengths already differ.
type AlignmentError struct {
	Left   string
	Right  string
	Index  int
	Reason string
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("series %q and %q are not aligned: %s", e.Left, e.Right, e.Reason)
}
