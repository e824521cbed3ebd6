package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/lingoflip/internal/session"
	"github.com/abhisek/lingoflip/internal/ui/components"
	"github.com/abhisek/lingoflip/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.showingQuitConfirm {
		return renderQuitConfirm(width, height)
	}

	state := s.session.State()
	var b strings.Builder
	b.WriteString(renderInfoLine(state, width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	switch {
	case state.LoadErr != nil:
		b.WriteString(renderLoadError(state, width))
	case state.Exhausted():
		b.WriteString(renderExhausted(width))
	case state.Phase == sess.PhasePrompt:
		b.WriteString(renderCard(state.Prompt, false, width, height))
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Hint.Render("Think of the answer...")))
	case state.Phase == sess.PhaseAnswer:
		b.WriteString(centered(width, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("%s: %s", state.Prompt.Label, state.Prompt.Text))))
		b.WriteString("\n\n")
		b.WriteString(renderCard(state.Answer, true, width, height))
	default:
		b.WriteString(renderLoading(width))
	}

	if state.PersistErr != nil {
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Warning.Render(
			"Progress could not be saved: "+state.PersistErr.Error())))
	}

	return b.String()
}

// renderInfoLine shows the deck on the left and the tallies on the right.
func renderInfoLine(state sess.State, width int) string {
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + state.Selector.String())

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Left %d  %s %d  %s %d",
			state.Remaining(),
			theme.Known.Render("✓"),
			state.Known,
			theme.Unknown.Render("✗"),
			state.Unknown,
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	return infoLine
}

func renderCard(c sess.Card, back bool, width, height int) string {
	cw := components.ContentWidth(width)
	ch := 7
	if height < 20 {
		ch = 5
	}
	card := components.NewFlashcard(c.Label, c.Text, back, cw, ch)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card.View())
}

func renderExhausted(width int) string {
	var b strings.Builder
	b.WriteString(centered(width, lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("No more phrases!")))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Known.Render("Congratulations!")))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Hint.Render("Pick another deck or press Esc to finish.")))
	return b.String()
}

func renderLoadError(state sess.State, width int) string {
	var b strings.Builder
	b.WriteString(centered(width, theme.Warning.Render(
		fmt.Sprintf("Could not load %s", state.Selector))))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(state.LoadErr.Error())))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Hint.Render("Pick another deck or press Esc to finish.")))
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(centered(width, lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("End review?")))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Cards you marked known stay removed.")))
	b.WriteString("\n\n")

	b.WriteString(centered(width, lipgloss.NewStyle().
		Foreground(theme.Success).
		Render("[Y] Yes, end review")))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().
		Foreground(theme.Primary).
		Render("[N] No, keep going")))

	return b.String()
}

// renderLoading renders the state before the first card is drawn.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n  Shuffling the deck...")
}

func centered(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
