package quiz

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Request limits.
const (
	MinTopicLength = 3
	MaxTopicLength = 200
	MinQuestions   = 1
	MaxQuestions   = 50

	MaxChatMessageLength = 2000
)

// ValidationError describes a malformed request. It is returned before any
// external call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// GenerationRequest asks for a new test.
type GenerationRequest struct {
	Topic      string
	Count      int
	Difficulty Difficulty
}

// Normalize trims the topic in place.
func (r *GenerationRequest) Normalize() {
	r.Topic = strings.TrimSpace(r.Topic)
}

// Validate checks the request shape. Call Normalize first.
func (r GenerationRequest) Validate() error {
	n := utf8.RuneCountInString(r.Topic)
	if n < MinTopicLength || n > MaxTopicLength {
		return &ValidationError{
			Field:   "topic",
			Message: fmt.Sprintf("must be between %d and %d characters, got %d", MinTopicLength, MaxTopicLength, n),
		}
	}
	if r.Count < MinQuestions || r.Count > MaxQuestions {
		return &ValidationError{
			Field:   "num_questions",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinQuestions, MaxQuestions, r.Count),
		}
	}
	if !r.Difficulty.Valid() {
		return &ValidationError{
			Field:   "difficulty",
			Message: fmt.Sprintf("must be one of easy, medium, hard, got %q", r.Difficulty),
		}
	}
	return nil
}

// ValidateAnswers rejects submissions with an empty question id or a
// selection outside A-D. Unknown question ids are allowed here; the
// scorer ignores them.
func ValidateAnswers(answers []AnswerSubmission) error {
	for i, a := range answers {
		if a.QuestionID == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("answers[%d].question_id", i),
				Message: "is required",
			}
		}
		if !a.SelectedAnswer.Valid() {
			return &ValidationError{
				Field:   fmt.Sprintf("answers[%d].selected_answer", i),
				Message: fmt.Sprintf("must be A, B, C, or D, got %q", a.SelectedAnswer),
			}
		}
	}
	return nil
}

// ValidateChatMessage checks the length of a user chat message.
func ValidateChatMessage(msg string) error {
	n := utf8.RuneCountInString(msg)
	if n < 1 || n > MaxChatMessageLength {
		return &ValidationError{
			Field:   "message",
			Message: fmt.Sprintf("must be between 1 and %d characters, got %d", MaxChatMessageLength, n),
		}
	}
	return nil
}

// Validate checks the shape of a fully built question: four options
// with unique ids A-D and a correct answer among them.
func (q Question) Validate() error {
	if len(q.Options) != len(OptionIDs) {
		return &ValidationError{
			Field:   "options",
			Message: fmt.Sprintf("expected %d options, got %d", len(OptionIDs), len(q.Options)),
		}
	}
	seen := make(map[OptionID]bool, len(q.Options))
	for _, o := range q.Options {
		if !o.ID.Valid() {
			return &ValidationError{Field: "options", Message: fmt.Sprintf("unknown option id %q", o.ID)}
		}
		if seen[o.ID] {
			return &ValidationError{Field: "options", Message: fmt.Sprintf("duplicate option id %q", o.ID)}
		}
		seen[o.ID] = true
	}
	if !seen[q.CorrectAnswer] {
		return &ValidationError{
			Field:   "correct_answer",
			Message: fmt.Sprintf("%q does not match any option", q.CorrectAnswer),
		}
	}
	return nil
}
