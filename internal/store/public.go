package store

import "github.com/abhisek/mcqgenie/internal/quiz"

// PublicQuestions projects questions onto their public form, dropping the
// correct answer and explanation. Option slices are copied so the result
// shares no memory with the session.
func PublicQuestions(qs []quiz.Question) []quiz.PublicQuestion {
	out := make([]quiz.PublicQuestion, len(qs))
	for i, q := range qs {
		out[i] = quiz.PublicQuestion{
			ID:         q.ID,
			Text:       q.Text,
			Options:    append([]quiz.Option(nil), q.Options...),
			Difficulty: q.Difficulty,
		}
	}
	return out
}

// PublicView is the only way a stored session is shown to a test taker.
func PublicView(s *quiz.TestSession) quiz.PublicTest {
	return quiz.PublicTest{
		TestID:           s.ID,
		Topic:            s.Topic,
		Questions:        PublicQuestions(s.Questions),
		TotalQuestions:   len(s.Questions),
		TimeLimitMinutes: s.TimeLimitMinutes,
		CreatedAt:        s.CreatedAt,
	}
}

// StatusOf summarizes a session's lifecycle state.
func StatusOf(s *quiz.TestSession) quiz.TestStatus {
	return quiz.TestStatus{
		TestID:           s.ID,
		Topic:            s.Topic,
		Status:           s.Status,
		TotalQuestions:   len(s.Questions),
		TimeLimitMinutes: s.TimeLimitMinutes,
		CreatedAt:        s.CreatedAt,
	}
}
