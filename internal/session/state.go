package session

import (
	"time"

	"github.com/abhisek/lingoflip/internal/deck"
)

// Phase represents the current phase of a review.
type Phase int

const (
	PhaseIdle      Phase = iota // Nothing drawn yet
	PhasePrompt                 // Prompt shown, answer pending
	PhaseAnswer                 // Answer revealed
	PhaseExhausted              // Deck is empty
)

func (p Phase) String() string {
	switch p {
	case PhasePrompt:
		return "prompt"
	case PhaseAnswer:
		return "answer"
	case PhaseExhausted:
		return "exhausted"
	}
	return "idle"
}

// Card is one face of the flashcard.
type Card struct {
	// Label is the column the text came from, e.g. "French" or "English".
	Label string
	Text  string
}

// State tracks the runtime state of a review session.
type State struct {
	// SessionID is the UUID for this session.
	SessionID string

	// Selector picks the deck being reviewed.
	Selector deck.Selector

	// Deck is the working set of entries not yet marked known.
	Deck *deck.Deck

	// DeckSize is how many entries Deck held when it was loaded.
	DeckSize int

	// Current is the entry on screen (nil before the first draw or once exhausted).
	Current *deck.Entry

	// Phase is the current review phase.
	Phase Phase

	// Prompt is shown first; Answer after the reveal.
	Prompt Card
	Answer Card

	// LoadErr is set when the deck for Selector could not be loaded.
	LoadErr error

	// PersistErr is the most recent failure to write the in-progress file.
	PersistErr error

	// Known and Unknown count this session's marks across all decks.
	Known   int
	Unknown int

	// StartTime is when the session began.
	StartTime time.Time
}

// Exhausted reports whether there is nothing left to review.
func (s State) Exhausted() bool {
	return s.Phase == PhaseExhausted
}

// Remaining returns the number of entries left in the deck.
func (s State) Remaining() int {
	return s.Deck.Len()
}

// Cleared returns how many entries of the loaded deck have been removed.
func (s State) Cleared() int {
	return max(s.DeckSize-s.Remaining(), 0)
}

// Revealed reports whether the answer side is showing.
func (s State) Revealed() bool {
	return s.Phase == PhaseAnswer
}
