package mcqgen

import (
	"context"

	"github.com/abhisek/mcqgenie/internal/quiz"
)

// Generator produces the questions of a new test using an LLM provider.
type Generator interface {
	// Generate returns exactly req.Count validated questions with ids
	// q_1..q_N, or an error. It never returns a partial set.
	Generate(ctx context.Context, req quiz.GenerationRequest) ([]quiz.Question, error)
}
