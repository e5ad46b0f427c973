package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is a single-line field. Numeric fields drop any typed
// character that is not a digit.
type TextInput struct {
	model   textinput.Model
	numeric bool
}

// NewTextInput creates a blurred field limited to charLimit characters.
func NewTextInput(placeholder string, charLimit int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	if charLimit > 0 {
		m.CharLimit = charLimit
	}
	return TextInput{model: m}
}

// NewNumberInput creates a digits-only field prefilled with value.
func NewNumberInput(value, charLimit int) TextInput {
	t := NewTextInput(strconv.Itoa(value), charLimit)
	t.numeric = true
	t.model.SetValue(strconv.Itoa(value))
	return t
}

func (t *TextInput) Focus() tea.Cmd { return t.model.Focus() }
func (t *TextInput) Blur()          { t.model.Blur() }
func (t TextInput) Focused() bool   { return t.model.Focused() }

func (t *TextInput) SetValue(s string) { t.model.SetValue(s) }

// Value returns the text with surrounding whitespace removed.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.model.Value())
}

// Int parses the value as a base-10 integer.
func (t TextInput) Int() (int, error) {
	return strconv.Atoi(t.Value())
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && t.numeric && kmsg.Text != "" {
		for _, r := range kmsg.Text {
			if r < '0' || r > '9' {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	return t.model.View()
}
