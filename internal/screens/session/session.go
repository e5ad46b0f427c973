package session

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mcqgenie/internal/quiz"
	"github.com/abhisek/mcqgenie/internal/router"
	"github.com/abhisek/mcqgenie/internal/screen"
	"github.com/abhisek/mcqgenie/internal/screens/summary"
	"github.com/abhisek/mcqgenie/internal/ui/components"
	"github.com/abhisek/mcqgenie/internal/ui/layout"
)

const submitTimeout = 30 * time.Second

// Submitter scores a finished test.
type Submitter interface {
	Submit(ctx context.Context, testID string, answers []quiz.AnswerSubmission) (quiz.TestResult, error)
}

// timerTickMsg is sent every second to update the countdown.
type timerTickMsg time.Time

// submitDoneMsg carries the outcome of a submission.
type submitDoneMsg struct {
	Result quiz.TestResult
	Err    error
}

// SessionScreen lets the learner answer a generated test. Answers stay
// local until the whole test is submitted.
type SessionScreen struct {
	svc     Submitter
	test    quiz.PublicTest
	choices []components.MultiChoice
	current int

	now       func() time.Time
	deadline  time.Time
	remaining time.Duration

	confirmQuit   bool
	confirmSubmit bool
	submitting    bool
	errMsg        string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)

// New creates a SessionScreen for test. The countdown starts now and lasts
// the test's time limit; a non-positive limit disables it.
func New(svc Submitter, test quiz.PublicTest) *SessionScreen {
	return newWithClock(svc, test, time.Now)
}

func newWithClock(svc Submitter, test quiz.PublicTest, now func() time.Time) *SessionScreen {
	s := &SessionScreen{
		svc:  svc,
		test: test,
		now:  now,
	}
	for _, q := range test.Questions {
		opts := make([]string, len(q.Options))
		for i, o := range q.Options {
			opts[i] = o.Text
		}
		s.choices = append(s.choices, components.NewMultiChoice(q.Text, opts))
	}
	if test.TimeLimitMinutes > 0 {
		limit := time.Duration(test.TimeLimitMinutes) * time.Minute
		s.deadline = now().Add(limit)
		s.remaining = limit
	}
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.deadline.IsZero() {
		return nil
	}
	return tickCmd()
}

func (s *SessionScreen) Title() string {
	return s.test.Topic
}

// Status shows the countdown and how many questions have an answer.
func (s *SessionScreen) Status() string {
	answered := fmt.Sprintf("%d/%d answered", s.answeredCount(), len(s.choices))
	if s.deadline.IsZero() {
		return answered
	}
	mins := int(s.remaining.Minutes())
	secs := int(s.remaining.Seconds()) % 60
	return fmt.Sprintf("%s  ⏱ %d:%02d", answered, mins, secs)
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Home"}}
	case s.confirmQuit || s.confirmSubmit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Yes"},
			{Key: "N", Description: "No"},
		}
	case s.submitting:
		return nil
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "S", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTimerTick()
	case submitDoneMsg:
		return s.handleSubmitDone(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	if s.submitting || s.deadline.IsZero() || s.errMsg != "" {
		return s, nil
	}
	s.remaining = s.deadline.Sub(s.now())
	if s.remaining <= 0 {
		s.remaining = 0
		s.confirmQuit = false
		s.confirmSubmit = false
		return s, s.submit()
	}
	return s, tickCmd()
}

func (s *SessionScreen) handleSubmitDone(msg submitDoneMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	result := summary.New(msg.Result)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: result}
	}
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, popToRoot
	}
	if s.submitting {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			// The test stays in progress and can still be submitted elsewhere.
			return s, popToRoot
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}
	if s.confirmSubmit {
		switch key {
		case "y", "Y":
			s.confirmSubmit = false
			return s, s.submit()
		case "n", "N", "esc":
			s.confirmSubmit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "right", "l", "tab", "n":
		s.move(1)
		return s, nil
	case "left", "h", "shift+tab", "p":
		s.move(-1)
		return s, nil
	case "s", "S":
		if s.answeredCount() < len(s.choices) {
			s.confirmSubmit = true
			return s, nil
		}
		return s, s.submit()
	}

	if len(s.choices) == 0 {
		return s, nil
	}
	before := s.choices[s.current].ChosenIndex
	var cmd tea.Cmd
	s.choices[s.current], cmd = s.choices[s.current].Update(msg)
	if s.choices[s.current].ChosenIndex != before || key == "enter" {
		if s.choices[s.current].ChosenIndex >= 0 {
			s.move(1)
		}
	}
	return s, cmd
}

func (s *SessionScreen) move(delta int) {
	next := s.current + delta
	if next >= 0 && next < len(s.choices) {
		s.current = next
	}
}

// Answers returns the chosen options. Unanswered questions are omitted
// and scored as not answered.
func (s *SessionScreen) Answers() []quiz.AnswerSubmission {
	var answers []quiz.AnswerSubmission
	for i, c := range s.choices {
		if chosen := c.Chosen(); chosen != "" {
			answers = append(answers, quiz.AnswerSubmission{
				QuestionID:     s.test.Questions[i].ID,
				SelectedAnswer: quiz.OptionID(chosen),
			})
		}
	}
	return answers
}

func (s *SessionScreen) answeredCount() int {
	n := 0
	for _, c := range s.choices {
		if c.Chosen() != "" {
			n++
		}
	}
	return n
}

func (s *SessionScreen) submit() tea.Cmd {
	s.submitting = true
	id := s.test.TestID
	answers := s.Answers()
	svc := s.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		result, err := svc.Submit(ctx, id, answers)
		return submitDoneMsg{Result: result, Err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func popToRoot() tea.Msg {
	return router.PopToRootMsg{}
}
