package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflip/internal/ui/theme"
)

const bannerArt = `
 ██╗     ██╗███╗   ██╗ ██████╗  ██████╗ ███████╗██╗     ██╗██████╗
 ██║     ██║████╗  ██║██╔════╝ ██╔═══██╗██╔════╝██║     ██║██╔══██╗
 ██║     ██║██╔██╗ ██║██║  ███╗██║   ██║█████╗  ██║     ██║██████╔╝
 ██║     ██║██║╚██╗██║██║   ██║██║   ██║██╔══╝  ██║     ██║██╔═══╝
 ███████╗██║██║ ╚████║╚██████╔╝╚██████╔╝██║     ███████╗██║██║
 ╚══════╝╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚═════╝ ╚═╝     ╚══════╝╚═╝╚═╝`

const bannerCompact = "L I N G O F L I P"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 69

// RenderBanner returns the LINGOFLIP banner styled in the primary color.
// Uses a compact fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
