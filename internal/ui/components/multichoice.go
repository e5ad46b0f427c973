package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgenie/internal/ui/theme"
)

// Labels are the option letters in display order.
var Labels = []string{"A", "B", "C", "D"}

// MultiChoice is a four-option selector. It never knows the correct answer
// while the learner is choosing; Reveal marks it after the test is scored.
type MultiChoice struct {
	Question    string
	Options     []string
	Selected    int
	ChosenIndex int
	// CorrectIndex is -1 until Reveal is called.
	CorrectIndex int
}

// NewMultiChoice creates a new multiple-choice component with nothing chosen.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		ChosenIndex:  -1,
		CorrectIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles navigation. Enter, space or a letter key records a choice;
// choices can be changed until the component is revealed.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed() {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter", "space", " ":
		m.ChosenIndex = m.Selected
	default:
		if i := labelIndex(key); i >= 0 && i < len(m.Options) {
			m.Selected = i
			m.ChosenIndex = i
		}
	}

	return m, nil
}

// Chosen returns the chosen option letter, or "" when nothing is chosen.
func (m MultiChoice) Chosen() string {
	if m.ChosenIndex < 0 || m.ChosenIndex >= len(Labels) {
		return ""
	}
	return Labels[m.ChosenIndex]
}

// Reveal marks the correct option by letter. Unknown letters are ignored.
func (m *MultiChoice) Reveal(correct string) {
	m.CorrectIndex = labelIndex(strings.ToLower(correct))
}

// Revealed reports whether the correct answer has been set.
func (m MultiChoice) Revealed() bool {
	return m.CorrectIndex >= 0
}

// IsCorrect returns true if the learner chose the revealed answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Revealed() && m.ChosenIndex == m.CorrectIndex
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Revealed() {
			prefix = "▸ "
		}
		mark := " "
		if i == m.ChosenIndex {
			mark = "●"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, Labels[i], opt)

		var style lipgloss.Style
		switch {
		case m.Revealed() && i == m.CorrectIndex:
			style = theme.Correct
		case m.Revealed() && i == m.ChosenIndex:
			style = theme.Incorrect
		case m.Revealed():
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		case i == m.ChosenIndex:
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		default:
			style = theme.Unselected
		}
		s += style.Render(line) + "\n"
	}

	return s
}

func labelIndex(key string) int {
	for i, l := range Labels {
		if key == strings.ToLower(l) {
			return i
		}
	}
	return -1
}
