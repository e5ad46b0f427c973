package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgenie/internal/ui/theme"
)

// Smallest terminal the frame is drawn in.
const (
	MinWidth  = 72
	MinHeight = 20
)

const appName = "MCQ Genie"

// KeyHint is one key binding listed in the footer.
type KeyHint struct {
	Key         string
	Description string
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border).
	Padding(0, 1)

// Chrome is the header and footer drawn around the active screen.
type Chrome struct {
	Title  string
	Status string
	Hints  []KeyHint
}

// Frame draws the chrome around body, which is given the width and height
// left between header and footer. Terminals below the minimum size get a
// resize notice instead.
func (c Chrome) Frame(width, height int, body func(width, height int) string) string {
	if width < MinWidth || height < MinHeight {
		return resizeNotice(width, height)
	}

	header := c.header(width)
	footer := c.footer(width)
	room := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().Width(width).Height(room).MaxHeight(room).Render(body(width, room))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (c Chrome) header(width int) string {
	inner := max(width-bar.GetHorizontalFrameSize(), 0)

	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(appName)
	status := lipgloss.NewStyle().Foreground(theme.Accent).Render(c.Status)
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(c.Title)

	side := max(lipgloss.Width(name), lipgloss.Width(status))
	middle := max(inner-2*side, 0)
	row := lipgloss.NewStyle().Width(side).Render(name) +
		lipgloss.NewStyle().Width(middle).Align(lipgloss.Center).Render(title) +
		lipgloss.NewStyle().Width(side).Align(lipgloss.Right).Render(status)

	return bar.Width(width).Render(row)
}

func (c Chrome) footer(width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	items := make([]string, len(c.Hints))
	for i, h := range c.Hints {
		items[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return bar.Width(width).Render(strings.Join(items, "   "))
}

func resizeNotice(width, height int) string {
	msg := fmt.Sprintf("Terminal too small (%dx%d).\nResize to at least %dx%d.", width, height, MinWidth, MinHeight)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Warning).Render(msg))
}

// Centered renders s horizontally centered in width with style.
func Centered(width int, style lipgloss.Style, s string) string {
	return style.Width(width).Align(lipgloss.Center).Render(s)
}
