package mcqgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/mcqgenie/internal/quiz"
)

// StructuralValidator checks that the question and every option have text
// and that the options and correct answer form a valid question.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *quiz.Question, _ quiz.GenerationRequest) *ValidationError {
	if strings.TrimSpace(q.Text) == "" {
		return &ValidationError{Validator: v.Name(), Field: "question", Message: "question text is empty"}
	}
	for _, o := range q.Options {
		if strings.TrimSpace(o.Text) == "" {
			return &ValidationError{
				Validator: v.Name(),
				Field:     "options." + string(o.ID),
				Message:   fmt.Sprintf("option %s is empty", o.ID),
			}
		}
	}
	if err := q.Validate(); err != nil {
		var verr *quiz.ValidationError
		if errors.As(err, &verr) {
			return &ValidationError{Validator: v.Name(), Field: verr.Field, Message: verr.Message}
		}
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	return nil
}

// DistinctOptionsValidator rejects questions whose options repeat the same
// text, which would leave more than one correct choice.
type DistinctOptionsValidator struct{}

func (v *DistinctOptionsValidator) Name() string { return "distinct-options" }

func (v *DistinctOptionsValidator) Validate(q *quiz.Question, _ quiz.GenerationRequest) *ValidationError {
	seen := make(map[string]quiz.OptionID, len(q.Options))
	for _, o := range q.Options {
		key := strings.ToLower(strings.TrimSpace(o.Text))
		if prev, ok := seen[key]; ok {
			return &ValidationError{
				Validator: v.Name(),
				Field:     "options." + string(o.ID),
				Message:   fmt.Sprintf("option %s repeats option %s", o.ID, prev),
			}
		}
		seen[key] = o.ID
	}
	return nil
}
