package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgenie/internal/ui/components"
	"github.com/abhisek/mcqgenie/internal/ui/layout"
	"github.com/abhisek/mcqgenie/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.submitting:
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
			"\n\n\n  Scoring your answers...")
	case s.confirmQuit:
		return renderConfirm(width,
			"Leave this test?",
			"Your answers so far will not be submitted.",
			"[Y] Yes, leave", "[N] No, keep going")
	case s.confirmSubmit:
		unanswered := len(s.choices) - s.answeredCount()
		return renderConfirm(width,
			"Submit now?",
			fmt.Sprintf("%d question(s) have no answer and will be marked wrong.", unanswered),
			"[Y] Submit", "[N] Keep answering")
	case len(s.choices) == 0:
		return renderError(width, "this test has no questions")
	}
	return s.renderQuestionView(width)
}

// renderQuestionView renders the active question with navigation info.
func (s *SessionScreen) renderQuestionView(width int) string {
	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", s.current+1, len(s.choices)))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(string(s.test.Questions[s.current].Difficulty))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	block := lipgloss.NewStyle().
		Width(min(width-8, 76)).
		Render(s.choices[s.current].View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	b.WriteString("\n")

	progress := components.NewProgressBar("Answered",
		float64(s.answeredCount())/float64(len(s.choices)), true, min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, progress.View()))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
		s.renderDots()))

	return b.String()
}

// renderDots draws one marker per question: filled when answered, the
// current question highlighted.
func (s *SessionScreen) renderDots() string {
	parts := make([]string, len(s.choices))
	for i, c := range s.choices {
		mark := "○"
		if c.Chosen() != "" {
			mark = "●"
		}
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == s.current {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		parts[i] = style.Render(mark)
	}
	return strings.Join(parts, " ")
}

func renderConfirm(width int, title, detail, yes, no string) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true), title))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), detail))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Success), yes))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Primary), no))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error),
		fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
