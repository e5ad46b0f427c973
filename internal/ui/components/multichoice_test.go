package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func newPhotosynthesisChoice() MultiChoice {
	return NewMultiChoice("What gas do plants absorb?", []string{"Oxygen", "Carbon dioxide", "Nitrogen", "Helium"})
}

func TestMultiChoice_NothingChosenInitially(t *testing.T) {
	m := newPhotosynthesisChoice()
	if m.Chosen() != "" {
		t.Fatalf("Chosen() = %q, want empty", m.Chosen())
	}
	if m.Revealed() {
		t.Fatal("new component must not be revealed")
	}
}

func TestMultiChoice_ArrowsThenEnter(t *testing.T) {
	m := newPhotosynthesisChoice()
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if got := m.Chosen(); got != "B" {
		t.Errorf("Chosen() = %q, want B", got)
	}
}

func TestMultiChoice_LetterKeysChooseAndCanChange(t *testing.T) {
	m := newPhotosynthesisChoice()
	m, _ = m.Update(key('d'))
	if m.Chosen() != "D" || m.Selected != 3 {
		t.Fatalf("after 'd': chosen=%q selected=%d", m.Chosen(), m.Selected)
	}
	m, _ = m.Update(key('a'))
	if m.Chosen() != "A" {
		t.Errorf("after 'a': chosen=%q", m.Chosen())
	}
}

func TestMultiChoice_SelectionClamped(t *testing.T) {
	m := newPhotosynthesisChoice()
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 0 {
		t.Errorf("Selected = %d, want 0", m.Selected)
	}
	for i := 0; i < 10; i++ {
		m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if m.Selected != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected)
	}
}

func TestMultiChoice_RevealFreezesInput(t *testing.T) {
	m := newPhotosynthesisChoice()
	m, _ = m.Update(key('b'))
	m.Reveal("B")

	if !m.IsCorrect() {
		t.Error("expected chosen B to be correct")
	}
	m, _ = m.Update(key('c'))
	if m.Chosen() != "B" {
		t.Errorf("choice changed after reveal: %q", m.Chosen())
	}
}

func TestMultiChoice_RevealUnknownLetter(t *testing.T) {
	m := newPhotosynthesisChoice()
	m.Reveal("Not answered")
	if m.Revealed() {
		t.Error("unknown letter must not reveal")
	}
}

func TestMultiChoice_ViewListsOptions(t *testing.T) {
	view := newPhotosynthesisChoice().View()
	for _, want := range []string{"What gas do plants absorb?", "A)", "Carbon dioxide", "D)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
