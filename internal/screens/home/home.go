package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgenie/internal/quiz"
	"github.com/abhisek/mcqgenie/internal/router"
	"github.com/abhisek/mcqgenie/internal/screen"
	"github.com/abhisek/mcqgenie/internal/screens/history"
	"github.com/abhisek/mcqgenie/internal/screens/setup"
	"github.com/abhisek/mcqgenie/internal/ui/components"
	"github.com/abhisek/mcqgenie/internal/ui/theme"
)

// recentCount is how many past tests the home screen summarizes.
const recentCount = 5

// Service is everything the terminal client needs from the test service.
type Service interface {
	setup.Service
	history.Lister
}

type recentLoadedMsg struct {
	Tests []quiz.TestSummary
}

// HomeScreen is the main menu.
type HomeScreen struct {
	menu   components.Menu
	recent []quiz.TestSummary
	svc    Service
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. defaultCount prefills the question count
// of new tests.
func New(svc Service, defaultCount int) *HomeScreen {
	items := []components.MenuItem{
		{Label: "NEW TEST", Hotkey: "n", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(svc, defaultCount)}
			}
		}},
		{Label: "HISTORY", Hotkey: "h", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(svc)}
			}
		}},
		{Label: "QUIT", Hotkey: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu: components.NewMenu(items),
		svc:  svc,
	}
}

// Init loads the most recent tests. It runs again whenever the stack
// unwinds to home, so a finished test shows up immediately.
func (h *HomeScreen) Init() tea.Cmd {
	svc := h.svc
	return func() tea.Msg {
		tests, err := svc.History(context.Background(), recentCount)
		if err != nil {
			return recentLoadedMsg{}
		}
		return recentLoadedMsg{Tests: tests}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(recentLoadedMsg); ok {
		h.recent = msg.Tests
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	sections := []string{
		RenderBanner(width),
		theme.Subtitle.Render("Multiple-choice tests on any topic"),
		theme.Card.Width(min(width-8, 40)).Render(h.menu.View()),
	}
	if recent := h.renderRecent(); recent != "" {
		sections = append(sections, recent)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) renderRecent() string {
	if len(h.recent) == 0 {
		return ""
	}
	lines := []string{theme.Hint.Render("Recent tests")}
	for _, t := range h.recent {
		score := "-"
		if t.ScorePercentage != nil {
			score = fmt.Sprintf("%.0f%%", *t.ScorePercentage)
		}
		lines = append(lines, theme.Body.Render(fmt.Sprintf("%-30s %5s", truncate(t.Topic, 30), score)))
	}
	return strings.Join(lines, "\n")
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
