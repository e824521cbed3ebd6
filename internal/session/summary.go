package session

import (
	"time"

	"github.com/abhisek/lingoflip/internal/deck"
)

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID string
	Selector  deck.Selector
	Duration  time.Duration
	Known     int
	Unknown   int
	Remaining int
	Exhausted bool
}

// Reviewed returns the number of cards marked either way.
func (s Summary) Reviewed() int {
	return s.Known + s.Unknown
}

// KnownRate returns Known / Reviewed, or 0 when nothing was reviewed.
func (s Summary) KnownRate() float64 {
	if s.Reviewed() == 0 {
		return 0
	}
	return float64(s.Known) / float64(s.Reviewed())
}

// Summary builds a Summary from the current state.
func (s *Session) Summary() Summary {
	return Summary{
		SessionID: s.state.SessionID,
		Selector:  s.state.Selector,
		Duration:  s.now().Sub(s.state.StartTime),
		Known:     s.state.Known,
		Unknown:   s.state.Unknown,
		Remaining: s.state.Remaining(),
		Exhausted: s.state.Exhausted(),
	}
}
