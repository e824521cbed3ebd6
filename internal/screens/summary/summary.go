package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflip/internal/router"
	"github.com/abhisek/lingoflip/internal/screen"
	"github.com/abhisek/lingoflip/internal/session"
	"github.com/abhisek/lingoflip/internal/store"
	"github.com/abhisek/lingoflip/internal/ui/components"
	"github.com/abhisek/lingoflip/internal/ui/layout"
	"github.com/abhisek/lingoflip/internal/ui/theme"
)

// SummaryScreen displays the review summary.
type SummaryScreen struct {
	summary session.Summary
	today   map[store.Action]int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. today holds the actions recorded so far
// today and may be nil when history is unavailable.
func New(summary session.Summary, today map[store.Action]int) *SummaryScreen {
	return &SummaryScreen{summary: summary, today: today}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Review Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	// Title.
	title := "Review complete!"
	if sum.Exhausted {
		title = "Deck finished!"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Render(sum.Selector.String()))
	b.WriteString("\n\n")

	// Duration.
	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	// Stats line.
	statsLine := fmt.Sprintf("Reviewed: %d        Known: %d        Again: %d        Left: %d",
		sum.Reviewed(), sum.Known, sum.Unknown, sum.Remaining)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n")
	if sum.Reviewed() > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(rateColor(sum.KnownRate())).
			Render(fmt.Sprintf("%.0f%% known", sum.KnownRate()*100)))
		b.WriteString("\n")
	}
	if sum.Known+sum.Remaining > 0 {
		bar := components.NewDeckProgress("Cleared", sum.Known, sum.Known+sum.Remaining, min(width-8, 50))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}

	// Today section.
	if s.today != nil {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Today")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		line := fmt.Sprintf("Decks opened: %d    Known: %d    Again: %d    Decks finished: %d",
			s.today[store.ActionStart],
			s.today[store.ActionKnown],
			s.today[store.ActionUnknown],
			s.today[store.ActionExhausted])
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

// rateColor returns the theme color for a known rate.
func rateColor(rate float64) color.Color {
	switch {
	case rate >= 0.8:
		return theme.Success
	case rate >= 0.5:
		return theme.Accent
	default:
		return theme.Error
	}
}
