package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgenie/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Hotkey, when set, activates the item
// directly.
type MenuItem struct {
	Label  string
	Hotkey string
	Action func() tea.Cmd
}

// Menu is a vertical list navigated with the arrow keys. Movement wraps
// around at both ends.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.Selected = (m.Selected + len(m.Items) - 1) % len(m.Items)
		return m, nil
	case "down", "j", "tab":
		m.Selected = (m.Selected + 1) % len(m.Items)
		return m, nil
	case "enter", "space":
		return m, m.activate(m.Selected)
	}

	for i, item := range m.Items {
		if item.Hotkey != "" && strings.EqualFold(item.Hotkey, key) {
			m.Selected = i
			return m, m.activate(i)
		}
	}
	return m, nil
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) || m.Items[i].Action == nil {
		return nil
	}
	return m.Items[i].Action()
}

func (m Menu) View() string {
	selected := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	normal := lipgloss.NewStyle().Foreground(theme.Text)
	hotkey := lipgloss.NewStyle().Foreground(theme.TextDim)

	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		label := "    " + item.Label
		style := normal
		if i == m.Selected {
			label = "  ▸ " + item.Label
			style = selected
		}
		line := style.Render(label)
		if item.Hotkey != "" {
			line += hotkey.Render("  (" + item.Hotkey + ")")
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
