package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mcqgenie/internal/quiz"
	"github.com/abhisek/mcqgenie/internal/router"
)

func sampleResult() quiz.TestResult {
	return quiz.TestResult{
		TestID:          "test-1",
		Topic:           "Photosynthesis",
		TotalQuestions:  3,
		CorrectAnswers:  2,
		WrongAnswers:    1,
		ScorePercentage: 66.67,
		Results: []quiz.QuestionResult{
			{QuestionID: "q_1", QuestionText: "Which gas is absorbed?", SelectedAnswer: "B", CorrectAnswer: "B", IsCorrect: true},
			{QuestionID: "q_2", QuestionText: "Where does it happen?", SelectedAnswer: "A", CorrectAnswer: "C", Explanation: "In the chloroplasts."},
			{QuestionID: "q_3", QuestionText: "What is produced?", SelectedAnswer: "D", CorrectAnswer: "D", IsCorrect: true},
		},
	}
}

func TestViewShowsScoreAndFeedback(t *testing.T) {
	view := New(sampleResult()).View(100, 40)
	for _, want := range []string{"66.67%", "Where does it happen?", "Correct: ", "In the chloroplasts."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestStatus(t *testing.T) {
	if got := New(sampleResult()).Status(); got != "66.67%" {
		t.Errorf("Status() = %q", got)
	}
}

func TestEnterReturnsHome(t *testing.T) {
	s := New(sampleResult())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
}

func TestScrollBounds(t *testing.T) {
	s := New(sampleResult())
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.offset != 0 {
		t.Errorf("offset = %d, want 0", s.offset)
	}
	for i := 0; i < 5; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if s.offset != 2 {
		t.Errorf("offset = %d, want 2", s.offset)
	}
}

func TestVerdict(t *testing.T) {
	tests := map[float64]string{100: "Outstanding!", 75: "Well done!", 50: "Good effort!", 0: "Keep practicing!"}
	for score, want := range tests {
		if got := verdict(score); got != want {
			t.Errorf("verdict(%v) = %q, want %q", score, got, want)
		}
	}
}
