package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgenie/internal/quiz"
	"github.com/abhisek/mcqgenie/internal/router"
	"github.com/abhisek/mcqgenie/internal/screen"
	"github.com/abhisek/mcqgenie/internal/ui/layout"
	"github.com/abhisek/mcqgenie/internal/ui/theme"
)

const historyLimit = 50

// Lister returns recent tests, newest first.
type Lister interface {
	History(ctx context.Context, limit int) ([]quiz.TestSummary, error)
}

type historyLoadedMsg struct {
	Tests []quiz.TestSummary
	Err   error
}

// HistoryScreen displays past tests and their scores.
type HistoryScreen struct {
	lister   Lister
	tests    []quiz.TestSummary
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(lister Lister) *HistoryScreen {
	return &HistoryScreen{lister: lister}
}

func (s *HistoryScreen) Init() tea.Cmd {
	lister := s.lister
	return func() tea.Msg {
		tests, err := lister.History(context.Background(), historyLimit)
		return historyLoadedMsg{Tests: tests, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.tests = msg.Tests
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.tests)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error),
			fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
			"\n\n  Loading history...")
	}
	if len(s.tests) == 0 {
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true),
			"\n\n  No tests yet. Generate one from the home screen!")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Keep the selection visible when the list is taller than the screen.
	visible := max(height-2, 1)
	first := 0
	if s.selected >= visible {
		first = s.selected - visible + 1
	}

	for i := first; i < len(s.tests) && i < first+visible; i++ {
		t := s.tests[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-32s  %-6s  %2d questions  %s",
			prefix, t.CreatedAt.Local().Format("Jan 02 15:04"), truncate(t.Topic, 32),
			t.Difficulty, t.TotalQuestions, outcome(t))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func outcome(t quiz.TestSummary) string {
	switch t.Status {
	case quiz.StatusCompleted:
		if t.ScorePercentage != nil {
			return fmt.Sprintf("%6.2f%%", *t.ScorePercentage)
		}
		return "completed"
	case quiz.StatusExpired:
		return "expired"
	}
	return "in progress"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
