package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflip/internal/ui/theme"
)

// Flashcard is one face of a card: the prompt on the front, the answer on
// the back.
type Flashcard struct {
	Label  string
	Text   string
	Back   bool
	Width  int
	Height int
}

// NewFlashcard creates a card face sized to fit within width x height.
func NewFlashcard(label, text string, back bool, width, height int) Flashcard {
	return Flashcard{Label: label, Text: text, Back: back, Width: width, Height: height}
}

// View renders the card face.
func (c Flashcard) View() string {
	style := theme.FrontFace
	labelColor := theme.TextDim
	if c.Back {
		style = theme.BackFace
		labelColor = theme.CardFront
	}

	inner := max(c.Width-4, 1)
	label := style.
		UnsetBorderStyle().
		Foreground(labelColor).
		Italic(true).
		Width(inner).
		Render(c.Label)
	text := style.
		UnsetBorderStyle().
		Bold(true).
		Width(inner).
		Render(c.Text)

	return style.
		Width(c.Width).
		Height(c.Height).
		Render(lipgloss.JoinVertical(lipgloss.Center, label, "", text))
}
