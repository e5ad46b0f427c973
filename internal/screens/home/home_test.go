package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mcqgenie/internal/quiz"
	"github.com/abhisek/mcqgenie/internal/router"
	"github.com/abhisek/mcqgenie/internal/screens/history"
	"github.com/abhisek/mcqgenie/internal/screens/setup"
)

type fakeService struct {
	recent []quiz.TestSummary
}

func (f *fakeService) Generate(context.Context, quiz.GenerationRequest) (quiz.PublicTest, error) {
	return quiz.PublicTest{}, nil
}

func (f *fakeService) Submit(context.Context, string, []quiz.AnswerSubmission) (quiz.TestResult, error) {
	return quiz.TestResult{}, nil
}

func (f *fakeService) History(_ context.Context, limit int) ([]quiz.TestSummary, error) {
	if limit < len(f.recent) {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func TestMenuPushesScreens(t *testing.T) {
	h := New(&fakeService{}, 10)

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*setup.SetupScreen); !ok {
		t.Errorf("expected setup screen, got %T", push.Screen)
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok = cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("expected history screen, got %T", push.Screen)
	}
}

func TestRecentTestsShown(t *testing.T) {
	score := 80.0
	svc := &fakeService{recent: []quiz.TestSummary{{Topic: "Photosynthesis", ScorePercentage: &score}}}
	h := New(svc, 10)
	h.Update(h.Init()())

	view := h.View(100, 40)
	if !strings.Contains(view, "Photosynthesis") || !strings.Contains(view, "80%") {
		t.Errorf("recent tests missing from view:\n%s", view)
	}
}

func TestHotkeys(t *testing.T) {
	h := New(&fakeService{}, 10)

	_, cmd := h.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("expected history screen, got %T", push.Screen)
	}

	_, cmd = h.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected q to quit")
	}
}
