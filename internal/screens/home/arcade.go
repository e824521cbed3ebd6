package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflip/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const arcadeTitleFull = ` ██╗     ██╗███╗   ██╗ ██████╗  ██████╗
 ██║     ██║████╗  ██║██╔════╝ ██╔═══██╗
 ██║     ██║██╔██╗ ██║██║  ███╗██║   ██║
 ██║     ██║██║╚██╗██║██║   ██║██║   ██║
 ███████╗██║██║ ╚████║╚██████╔╝╚██████╔╝
 ╚══════╝╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚═════╝
            F · L · I · P`

const arcadeTitleCompact = "L · I · N · G · O · F · L · I · P"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	art := arcadeTitleFull
	if compact {
		art = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// statsText renders the dashboard figures shown inside the stats bar.
func statsText(remaining int, missing bool, knownToday, decksDone int, compact bool) string {
	leftStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	knownStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	if compact {
		left := leftStyle.Render(fmt.Sprintf("◆%d", remaining))
		if missing {
			left = dimStyle.Render("◆?")
		}
		return fmt.Sprintf("%s %s %s",
			left,
			knownStyle.Render(fmt.Sprintf("★%d", knownToday)),
			doneText(decksDone, true, doneStyle, dimStyle),
		)
	}

	left := leftStyle.Render(fmt.Sprintf("◆ %d LEFT", remaining))
	if missing {
		left = dimStyle.Render("◆ NO DECK")
	}
	return fmt.Sprintf("%s  %s  %s",
		left,
		knownStyle.Render(fmt.Sprintf("★ %d KNOWN TODAY", knownToday)),
		doneText(decksDone, false, doneStyle, dimStyle),
	)
}

func doneText(done int, compact bool, active, dim lipgloss.Style) string {
	if done == 0 {
		if compact {
			return dim.Render("✓0")
		}
		return dim.Render("✓ NONE FINISHED")
	}
	if compact {
		return active.Render(fmt.Sprintf("✓%d", done))
	}
	return active.Render(fmt.Sprintf("✓ %d FINISHED", done))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
