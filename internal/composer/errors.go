package composer

import "fmt"

// SegmentBuildError reports a pair that could not be turned into segments.
// Any audio already synthesized for the pair has been released by the time
// the error is returned.
type SegmentBuildError struct {
	Index int
	Role  string
	Err   error
}

func (e *SegmentBuildError) Error() string {
	return fmt.Sprintf("pair %d: %s: %v", e.Index, e.Role, e.Err)
}

func (e *SegmentBuildError) Unwrap() error {
	return e.Err
}
