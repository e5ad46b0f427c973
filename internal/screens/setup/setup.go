package setup

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgenie/internal/quiz"
	"github.com/abhisek/mcqgenie/internal/router"
	"github.com/abhisek/mcqgenie/internal/screen"
	"github.com/abhisek/mcqgenie/internal/screens/session"
	"github.com/abhisek/mcqgenie/internal/ui/components"
	"github.com/abhisek/mcqgenie/internal/ui/layout"
	"github.com/abhisek/mcqgenie/internal/ui/theme"
)

const (
	generateTimeout = 3 * time.Minute
	spinnerInterval = 120 * time.Millisecond
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var difficulties = []quiz.Difficulty{quiz.DifficultyEasy, quiz.DifficultyMedium, quiz.DifficultyHard}

// Service generates tests and scores them.
type Service interface {
	Generate(ctx context.Context, req quiz.GenerationRequest) (quiz.PublicTest, error)
	session.Submitter
}

type field int

const (
	fieldTopic field = iota
	fieldCount
	fieldDifficulty
	fieldCountTotal
)

// testReadyMsg is sent when generation finishes.
type testReadyMsg struct {
	Test quiz.PublicTest
	Err  error
}

type spinnerTickMsg time.Time

// SetupScreen collects a topic, question count and difficulty, then
// generates the test.
type SetupScreen struct {
	svc        Service
	topic      components.TextInput
	count      components.TextInput
	difficulty int
	focus      field
	generating bool
	spinner    int
	errMsg     string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a SetupScreen with the count field prefilled.
func New(svc Service, defaultCount int) *SetupScreen {
	s := &SetupScreen{
		svc:        svc,
		topic:      components.NewTextInput("e.g. Photosynthesis", quiz.MaxTopicLength),
		count:      components.NewNumberInput(defaultCount, 2),
		difficulty: 1,
	}
	s.topic.Focus()
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.topic.Focus()
}

func (s *SetupScreen) Title() string {
	return "New Test"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.generating {
		return nil
	}
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Edit"}}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←→", Description: "Difficulty"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case testReadyMsg:
		s.generating = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		next := session.New(s.svc, msg.Test)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case spinnerTickMsg:
		if !s.generating {
			return s, nil
		}
		s.spinner = (s.spinner + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s.forward(msg)
}

func (s *SetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.generating {
		return s, nil
	}
	if s.errMsg != "" {
		s.errMsg = ""
		return s, nil
	}

	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % fieldCountTotal)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + fieldCountTotal - 1) % fieldCountTotal)
	case "enter":
		return s.start()
	}

	if s.focus == fieldDifficulty {
		switch msg.String() {
		case "left", "h":
			s.difficulty = (s.difficulty + len(difficulties) - 1) % len(difficulties)
		case "right", "l", "space", " ":
			s.difficulty = (s.difficulty + 1) % len(difficulties)
		}
		return s, nil
	}
	return s.forward(msg)
}

func (s *SetupScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.focus {
	case fieldTopic:
		s.topic, cmd = s.topic.Update(msg)
	case fieldCount:
		s.count, cmd = s.count.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	s.topic.Blur()
	s.count.Blur()
	switch f {
	case fieldTopic:
		return s.topic.Focus()
	case fieldCount:
		return s.count.Focus()
	}
	return nil
}

// Request builds the generation request from the form.
func (s *SetupScreen) Request() (quiz.GenerationRequest, error) {
	n, err := s.count.Int()
	if err != nil {
		return quiz.GenerationRequest{}, &quiz.ValidationError{Field: "num_questions", Message: "must be a number"}
	}
	req := quiz.GenerationRequest{
		Topic:      s.topic.Value(),
		Count:      n,
		Difficulty: difficulties[s.difficulty],
	}
	req.Normalize()
	return req, req.Validate()
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	req, err := s.Request()
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	s.generating = true
	svc := s.svc
	generate := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		test, err := svc.Generate(ctx, req)
		return testReadyMsg{Test: test, Err: err}
	}
	return s, tea.Batch(generate, spinnerTick())
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *SetupScreen) View(width, height int) string {
	if s.generating {
		line := fmt.Sprintf("%s Writing %s questions about %q...",
			spinnerFrames[s.spinner], s.count.Value(), s.topic.Value())
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Secondary), "\n\n\n"+line)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Create a test"))
	b.WriteString("\n\n")

	rows := []string{
		s.label(fieldTopic, "Topic") + s.topic.View(),
		s.label(fieldCount, "Questions") + s.count.View(),
		s.label(fieldDifficulty, "Difficulty") + s.renderDifficulty(),
	}
	form := theme.Card.Width(min(width-8, 70)).Render(strings.Join(rows, "\n\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, form))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error), s.errMsg))
	}
	return b.String()
}

func (s *SetupScreen) label(f field, text string) string {
	style := theme.Unselected
	prefix := "  "
	if s.focus == f {
		style = theme.Selected
		prefix = "▸ "
	}
	return style.Render(fmt.Sprintf("%s%-11s", prefix, text))
}

func (s *SetupScreen) renderDifficulty() string {
	parts := make([]string, len(difficulties))
	for i, d := range difficulties {
		if i == s.difficulty {
			parts[i] = theme.Selected.Render("[" + string(d) + "]")
		} else {
			parts[i] = theme.Hint.Render(" " + string(d) + " ")
		}
	}
	return strings.Join(parts, " ")
}
