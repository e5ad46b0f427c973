// Package scoring grades a submission against the stored answer key.
package scoring

import (
	"strconv"
	"time"

	"github.com/abhisek/mcqgenie/internal/quiz"
)

// Input is everything Evaluate needs. CompletedAt is supplied by the
// caller so that evaluation has no hidden inputs.
type Input struct {
	TestID      string
	Topic       string
	Questions   []quiz.Question
	Answers     []quiz.AnswerSubmission
	CompletedAt time.Time
}

// Evaluate scores answers against the questions' correct answers.
//
// Results follow question order, one per question. Answers naming an
// unknown question id are ignored; when an id is answered more than once
// the last answer wins. Unanswered questions count as wrong and report
// quiz.NotAnswered. The percentage is rounded half away from zero to two
// decimals and is 0 for a test without questions.
func Evaluate(in Input) quiz.TestResult {
	selected := make(map[string]quiz.OptionID, len(in.Answers))
	for _, a := range in.Answers {
		selected[a.QuestionID] = a.SelectedAnswer
	}

	results := make([]quiz.QuestionResult, 0, len(in.Questions))
	correct := 0
	for _, q := range in.Questions {
		r := quiz.QuestionResult{
			QuestionID:    q.ID,
			QuestionText:  q.Text,
			CorrectAnswer: string(q.CorrectAnswer),
			Explanation:   q.Explanation,
		}
		if ans, ok := selected[q.ID]; ok {
			r.SelectedAnswer = string(ans)
			r.IsCorrect = ans == q.CorrectAnswer
		} else {
			r.SelectedAnswer = quiz.NotAnswered
		}
		if r.IsCorrect {
			correct++
		}
		results = append(results, r)
	}

	total := len(in.Questions)
	return quiz.TestResult{
		TestID:          in.TestID,
		Topic:           in.Topic,
		TotalQuestions:  total,
		CorrectAnswers:  correct,
		WrongAnswers:    total - correct,
		ScorePercentage: Percentage(correct, total),
		Results:         results,
		CompletedAt:     in.CompletedAt,
	}
}

// Percentage returns correct/total as a percentage rounded to two decimals.
// Rounding is correct for the exact binary value, with ties to even, so
// 1 of 32 (3.125) scores 3.12.
func Percentage(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	x := float64(correct) / float64(total) * 100
	r, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	return r
}
