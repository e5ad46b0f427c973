package mcqgen

import "fmt"

// MalformedOutputError reports completion text that could not be turned
// into questions. Index is the zero-based position of the offending array
// element, or -1 when the response as a whole is unusable.
type MalformedOutputError struct {
	Index int
	Field string

	// Snippet holds at most the first 200 characters of the offending
	// text. It is meant for logs and is not part of Error().
	Snippet string
	Err     error
}

func (e *MalformedOutputError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("malformed LLM output: %v", e.Err)
	case e.Field != "":
		return fmt.Sprintf("malformed LLM output: question %d: %s: %v", e.Index+1, e.Field, e.Err)
	default:
		return fmt.Sprintf("malformed LLM output: question %d: %v", e.Index+1, e.Err)
	}
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// GenerationError is the single error surfaced for a failed generation.
// The cause is either a *MalformedOutputError or one of the llm error types.
type GenerationError struct {
	Topic string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("question generation failed for %q: %v", e.Topic, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
