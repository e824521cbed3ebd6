package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflip/internal/ui/theme"
)

// DeckProgress is a horizontal bar showing how much of a deck has been
// cleared: Done cards out of Total.
type DeckProgress struct {
	Label string
	Done  int
	Total int
	Width int
}

// NewDeckProgress creates a progress bar for done of total cards.
func NewDeckProgress(label string, done, total, width int) DeckProgress {
	return DeckProgress{Label: label, Done: done, Total: total, Width: width}
}

// Fraction returns Done/Total clamped to [0, 1]. An empty deck counts as cleared.
func (p DeckProgress) Fraction() float64 {
	if p.Total <= 0 {
		return 1
	}
	f := float64(p.Done) / float64(p.Total)
	return min(max(f, 0), 1)
}

// View renders the bar followed by a "done/total" counter.
func (p DeckProgress) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	counter := fmt.Sprintf("  %d/%d", p.Done, p.Total)
	barWidth := max(p.Width-lipgloss.Width(b.String())-len(counter), 4)
	filled := int(float64(barWidth) * p.Fraction())

	b.WriteString(lipgloss.NewStyle().
		Background(theme.Success).
		Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(counter))
	return b.String()
}
