package speech

import "fmt"

// SynthesisError means the engine could not produce audio for Text.
type SynthesisError struct {
	Engine string
	Text   string
	Err    error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesize %q with %s: %v", preview(e.Text), e.Engine, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// ValidationError means the engine produced a file that is not usable audio.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate audio %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// preview shortens text for log lines and error messages.
func preview(text string) string {
	r := []rune(text)
	if len(r) <= 50 {
		return text
	}
	return string(r[:50]) + "..."
}
