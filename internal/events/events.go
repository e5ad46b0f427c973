// Package events publishes domain events to other services.
package events

import (
	"context"
	"time"

	"github.com/abhisek/mcqgenie/internal/quiz"
)

// QueueTestCompleted receives one message per successful submission.
const QueueTestCompleted = "mcqgenie.test.completed"

// TestCompleted is published after a submission has been recorded. It
// carries the score only, never the per-question answers.
type TestCompleted struct {
	TestID          string    `json:"test_id"`
	Topic           string    `json:"topic"`
	ScorePercentage float64   `json:"score_percentage"`
	CorrectAnswers  int       `json:"correct_answers"`
	TotalQuestions  int       `json:"total_questions"`
	CompletedAt     time.Time `json:"completed_at"`
}

// NewTestCompleted summarizes a result.
func NewTestCompleted(r quiz.TestResult) TestCompleted {
	return TestCompleted{
		TestID:          r.TestID,
		Topic:           r.Topic,
		ScorePercentage: r.ScorePercentage,
		CorrectAnswers:  r.CorrectAnswers,
		TotalQuestions:  r.TotalQuestions,
		CompletedAt:     r.CompletedAt,
	}
}

// Publisher delivers domain events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	PublishTestCompleted(ctx context.Context, e TestCompleted) error
	Close() error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) PublishTestCompleted(context.Context, TestCompleted) error { return nil }
func (Nop) Close() error                                            { return nil }
