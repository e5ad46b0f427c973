package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgenie/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗ ██████╗ ██████╗      ██████╗ ███████╗███╗   ██╗██╗███████╗
 ████╗ ████║██╔════╝██╔═══██╗    ██╔════╝ ██╔════╝████╗  ██║██║██╔════╝
 ██╔████╔██║██║     ██║   ██║    ██║  ███╗█████╗  ██╔██╗ ██║██║█████╗
 ██║╚██╔╝██║██║     ██║▄▄ ██║    ██║   ██║██╔══╝  ██║╚██╗██║██║██╔══╝
 ██║ ╚═╝ ██║╚██████╗╚██████╔╝    ╚██████╔╝███████╗██║ ╚████║██║███████╗
 ╚═╝     ╚═╝ ╚═════╝ ╚══▀▀═╝      ╚═════╝ ╚══════╝╚═╝  ╚═══╝╚═╝╚══════╝`

const bannerCompact = "M C Q   G E N I E"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 72

// RenderBanner returns the banner styled in the primary color, with a
// compact fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
