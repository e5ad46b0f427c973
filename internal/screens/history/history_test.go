package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mcqgenie/internal/quiz"
	"github.com/abhisek/mcqgenie/internal/router"
)

type fakeLister struct {
	tests []quiz.TestSummary
	err   error
	limit int
}

func (f *fakeLister) History(_ context.Context, limit int) ([]quiz.TestSummary, error) {
	f.limit = limit
	return f.tests, f.err
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	s.Update(s.Init()())
}

func TestHistoryView(t *testing.T) {
	score := 66.67
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	lister := &fakeLister{tests: []quiz.TestSummary{
		{TestID: "b", Topic: "Photosynthesis", Difficulty: quiz.DifficultyMedium, Status: quiz.StatusCompleted, CreatedAt: created, TotalQuestions: 3, ScorePercentage: &score},
		{TestID: "a", Topic: "Cell division", Difficulty: quiz.DifficultyHard, Status: quiz.StatusInProgress, CreatedAt: created.Add(-time.Hour), TotalQuestions: 5},
	}}
	s := New(lister)

	if !strings.Contains(s.View(100, 30), "Loading") {
		t.Error("expected loading view before data arrives")
	}
	load(t, s)

	if lister.limit != historyLimit {
		t.Errorf("limit = %d, want %d", lister.limit, historyLimit)
	}
	view := s.View(120, 30)
	for _, want := range []string{"Photosynthesis", "66.67%", "Cell division", "in progress"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistoryEmptyAndError(t *testing.T) {
	s := New(&fakeLister{})
	load(t, s)
	if !strings.Contains(s.View(100, 30), "No tests yet") {
		t.Error("expected empty state")
	}

	s = New(&fakeLister{err: errors.New("database is locked")})
	load(t, s)
	if !strings.Contains(s.View(100, 30), "database is locked") {
		t.Error("expected error message")
	}
}

func TestHistoryNavigation(t *testing.T) {
	s := New(&fakeLister{tests: make([]quiz.TestSummary, 3)})
	load(t, s)

	for i := 0; i < 5; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if s.selected != 2 {
		t.Errorf("selected = %d, want 2", s.selected)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Photosynthesis", 8); got != "Photosy…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 8); got != "short" {
		t.Errorf("truncate = %q", got)
	}
}
