package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflip/internal/ui/theme"
)

// MascotVariant selects which flashcard art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default card
	MascotCelebrating                      // Gold, star eyes: deck finished
	MascotAlert                            // Orange, exclamation: deck missing
)

const mascotIdle = `┌───────┐
│ ◉   ◉ │
│   ▽   │
│ A → Z │
└───────┘`

const mascotCelebrating = `┌───────┐
│ ★   ★ │
│   ▿   │
│ A → Z │
└─╥═══╥─┘
  ╚═══╝`

const mascotAlert = `┌───────┐
│ ◉   ◉ │ !
│   ▽   │
│ ? → ? │
└───────┘`

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
