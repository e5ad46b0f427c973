package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgenie/internal/quiz"
	"github.com/abhisek/mcqgenie/internal/router"
	"github.com/abhisek/mcqgenie/internal/screen"
	"github.com/abhisek/mcqgenie/internal/ui/components"
	"github.com/abhisek/mcqgenie/internal/ui/layout"
	"github.com/abhisek/mcqgenie/internal/ui/theme"
)

// SummaryScreen displays the scored test with per-question feedback.
type SummaryScreen struct {
	result quiz.TestResult
	offset int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result quiz.TestResult) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) Status() string {
	return fmt.Sprintf("%.2f%%", s.result.ScorePercentage)
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.offset < len(s.result.Results)-1 {
				s.offset++
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	var b strings.Builder

	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.ScoreColor(res.ScorePercentage)).Bold(true),
		verdict(res.ScorePercentage)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Correct: %d        Wrong: %d        Score: %.2f%%",
		res.CorrectAnswers, res.WrongAnswers, res.ScorePercentage)
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Text), statsLine))
	b.WriteString("\n")

	bar := components.NewProgressBar("", res.ScorePercentage/100, false, min(width-8, 60))
	bar.Fill = theme.ScoreColor(res.ScorePercentage)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	used := lipgloss.Height(b.String())
	cardWidth := min(width-8, 76)
	for i := s.offset; i < len(res.Results); i++ {
		card := renderQuestion(i, res.Results[i], cardWidth)
		if used+lipgloss.Height(card) > height && i > s.offset {
			break
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
		b.WriteString("\n")
		used += lipgloss.Height(card) + 1
	}

	return b.String()
}

func renderQuestion(i int, qr quiz.QuestionResult, width int) string {
	mark := theme.Correct.Render("✓")
	if !qr.IsCorrect {
		mark = theme.Incorrect.Render("✗")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %d. %s\n", mark, i+1, theme.Body.Bold(true).Render(qr.QuestionText)))

	chosen := lipgloss.NewStyle().Foreground(theme.Success)
	if !qr.IsCorrect {
		chosen = lipgloss.NewStyle().Foreground(theme.Error)
	}
	b.WriteString("   Your answer: " + chosen.Render(qr.SelectedAnswer))
	if !qr.IsCorrect {
		b.WriteString("   Correct: " + theme.Correct.Render(qr.CorrectAnswer))
	}
	if qr.Explanation != "" {
		b.WriteString("\n   " + theme.Hint.Render(qr.Explanation))
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func verdict(score float64) string {
	switch {
	case score >= 90:
		return "Outstanding!"
	case score >= 70:
		return "Well done!"
	case score >= 50:
		return "Good effort!"
	default:
		return "Keep practicing!"
	}
}
