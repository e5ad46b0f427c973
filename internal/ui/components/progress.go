package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgenie/internal/ui/theme"
)

// ProgressBar is a horizontal bar filled to Fraction (0..1).
type ProgressBar struct {
	Label       string
	Fraction    float64
	ShowPercent bool
	Width       int
	Fill        color.Color
}

func NewProgressBar(label string, fraction float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Fraction:    fraction,
		ShowPercent: showPercent,
		Width:       width,
		Fill:        theme.Secondary,
	}
}

func (p ProgressBar) View() string {
	frac := min(max(p.Fraction, 0), 1)

	var prefix, suffix string
	if p.Label != "" {
		prefix = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	if p.ShowPercent {
		suffix = lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %3.0f%%", frac*100))
	}

	bar := max(p.Width-lipgloss.Width(prefix)-lipgloss.Width(suffix), 4)
	filled := int(float64(bar)*frac + 0.5)

	return prefix +
		lipgloss.NewStyle().Background(p.Fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", bar-filled)) +
		suffix
}
