package encoder

import (
	"errors"
	"fmt"
)

// EncodingError means no encoding attempt produced a file. Fallback is nil
// when the fallback attempt was skipped.
type EncodingError struct {
	Primary  error
	Fallback error
}

func (e *EncodingError) Error() string {
	if e.Fallback == nil {
		return fmt.Sprintf("encode video: %v (fallback not attempted)", e.Primary)
	}
	return fmt.Sprintf("encode video: primary: %v; fallback: %v", e.Primary, e.Fallback)
}

func (e *EncodingError) Unwrap() []error {
	if e.Fallback == nil {
		return []error{e.Primary}
	}
	return []error{e.Primary, e.Fallback}
}

// Attempted reports how many encoder runs were made.
func (e *EncodingError) Attempted() int {
	if e.Fallback == nil {
		return 1
	}
	return 2
}

var errNoOutput = errors.New("encoder reported success but wrote no file")
