package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingoflip/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show a status
// line on the right of the header.
type StatusProvider interface {
	Status() string
}

// MeterProvider is an optional interface for screens that show how far
// through a deck the user is. ok is false when there is no deck to measure.
type MeterProvider interface {
	DeckMeter() (meter layout.DeckMeter, ok bool)
}

// BackHandler is an optional interface for screens that handle Esc
// themselves instead of being popped.
type BackHandler interface {
	HandlesBack() bool
}

// Closer is an optional interface for screens that hold resources, such as
// a running review, which must be released when they leave the stack.
// Close may be called more than once.
type Closer interface {
	Close()
}
