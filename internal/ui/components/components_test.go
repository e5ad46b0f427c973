package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chosenMsg string

func menuFixture() Menu {
	item := func(label, hotkey string) MenuItem {
		return MenuItem{Label: label, Hotkey: hotkey, Action: func() tea.Cmd {
			return func() tea.Msg { return chosenMsg(label) }
		}}
	}
	return NewMenu([]MenuItem{item("NEW TEST", "n"), item("HISTORY", "h"), item("QUIT", "")})
}

func TestMenu_WrapsAround(t *testing.T) {
	m := menuFixture()
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 2, m.Selected)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 0, m.Selected)
}

func TestMenu_EnterAndHotkey(t *testing.T) {
	m := menuFixture()
	m, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, chosenMsg("NEW TEST"), cmd())

	m, cmd = m.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	require.NotNil(t, cmd)
	assert.Equal(t, chosenMsg("HISTORY"), cmd())
	assert.Equal(t, 1, m.Selected)

	_, cmd = m.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.Nil(t, cmd)
}

func TestMenu_View(t *testing.T) {
	view := menuFixture().View()
	assert.Contains(t, view, "▸ NEW TEST")
	assert.Contains(t, view, "(n)")
	assert.Equal(t, 3, len(strings.Split(view, "\n")))
}

func TestNumberInput_RejectsNonDigits(t *testing.T) {
	in := NewNumberInput(1, 2)
	in.Focus()
	in, _ = in.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.Equal(t, "1", in.Value())

	in, _ = in.Update(tea.KeyPressMsg{Code: '5', Text: "5"})
	n, err := in.Int()
	require.NoError(t, err)
	assert.Equal(t, 15, n)
}

func TestTextInput_TrimsValue(t *testing.T) {
	in := NewTextInput("topic", 20)
	in.SetValue("  Photosynthesis ")
	assert.Equal(t, "Photosynthesis", in.Value())
	assert.False(t, in.Focused())
}

func TestProgressBar_ClampsFraction(t *testing.T) {
	over := NewProgressBar("", 1.7, true, 20).View()
	assert.Contains(t, over, "100%")

	under := NewProgressBar("", -1, true, 20).View()
	assert.Contains(t, under, "0%")
}
