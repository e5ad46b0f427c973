package mcqgen

import (
	"fmt"

	"github.com/abhisek/mcqgenie/internal/quiz"
)

// Validator checks a question built from model output.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages.
	Name() string

	// Validate returns nil if q passes the check.
	Validate(q *quiz.Question, req quiz.GenerationRequest) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Field     string // Offending field, e.g. "options" or "correct_answer"
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
