// Package session runs a flashcard review: draw a random entry, show its
// prompt, reveal the answer after a delay, and shrink the deck as entries are
// marked known.
//
// A Session is not safe for concurrent use. Every method, including callbacks
// handed to the Scheduler, must run on one goroutine.
package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/lingoflip/internal/deck"
	"github.com/abhisek/lingoflip/internal/store"
)

// DefaultRevealDelay is used when Options.RevealDelay is nil.
const DefaultRevealDelay = 5 * time.Second

// DeckStore loads decks and persists removals. *deck.Store satisfies it.
type DeckStore interface {
	Load(sel deck.Selector) (*deck.Deck, error)
	Remove(sel deck.Selector, d *deck.Deck, e deck.Entry) (*deck.Deck, error)
}

// Speaker speaks text without blocking. *speech.Dispatcher satisfies it.
type Speaker interface {
	Say(text, languageName string)
}

// Options configures a Session. Store is required; everything else is optional.
type Options struct {
	Store DeckStore

	// Scheduler fires the delayed reveal. With no scheduler the answer is
	// only shown when Reveal is called.
	Scheduler Scheduler

	// Speaker voices each card face as it is shown.
	Speaker Speaker

	// Events records review history (nil disables recording).
	Events store.EventRepo

	// Rand picks entries. Defaults to math/rand/v2.
	Rand deck.Rand

	// RevealDelay returns the prompt-to-answer delay for a deck.
	RevealDelay func(deck.Selector) time.Duration

	Log *zap.Logger
	Now func() time.Time
}

// Session is the review state machine: PROMPT → ANSWER, repeated until the
// deck is EXHAUSTED.
type Session struct {
	store   DeckStore
	sched   Scheduler
	speaker Speaker
	events  store.EventRepo
	rng     deck.Rand
	delay   func(deck.Selector) time.Duration
	log     *zap.Logger
	now     func() time.Time

	state   State
	pending Handle
	draws   uint64
	closed  bool
}

// New creates a Session for sel. Call Start to load the deck and draw.
func New(sel deck.Selector, opts Options) *Session {
	s := &Session{
		store:   opts.Store,
		sched:   opts.Scheduler,
		speaker: opts.Speaker,
		events:  opts.Events,
		rng:     opts.Rand,
		delay:   opts.RevealDelay,
		log:     opts.Log,
		now:     opts.Now,
	}
	if s.rng == nil {
		s.rng = globalRand{}
	}
	if s.delay == nil {
		s.delay = func(deck.Selector) time.Duration { return DefaultRevealDelay }
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.state = State{
		SessionID: uuid.NewString(),
		Selector:  sel,
		StartTime: s.now(),
	}
	s.log = s.log.With(zap.String("session_id", s.state.SessionID))
	return s
}

// State returns a snapshot of the session state.
func (s *Session) State() State {
	return s.state
}

// Start loads the deck for the initial selector and draws the first entry.
func (s *Session) Start() {
	s.load(s.state.Selector)
	s.Advance()
}

// Advance cancels any pending reveal and draws a random entry. An empty deck
// moves the session to PhaseExhausted.
func (s *Session) Advance() {
	s.cancelReveal()

	e, ok := s.state.Deck.PickRandom(s.rng)
	if !ok {
		s.exhaust()
		return
	}

	sel := s.state.Selector
	s.state.Current = &e
	s.state.Phase = PhasePrompt
	s.state.Prompt = Card{Label: sel.PromptColumn(), Text: e.Get(sel.PromptColumn())}
	s.state.Answer = Card{Label: sel.AnswerColumn(), Text: e.Get(sel.AnswerColumn())}
	s.say(s.state.Prompt)

	if s.sched == nil {
		return
	}
	s.draws++
	draw := s.draws
	s.pending = s.sched.AfterFunc(s.delay(sel), func() {
		// A stopped handle may still deliver its callback.
		if s.draws == draw {
			s.Reveal()
		}
	})
}

// Reveal shows the answer for the current entry. It does nothing unless the
// prompt is showing.
func (s *Session) Reveal() {
	if s.state.Phase != PhasePrompt {
		return
	}
	s.cancelReveal()
	s.state.Phase = PhaseAnswer
	s.say(s.state.Answer)
}

// MarkKnown removes every row equal to the current entry from the deck,
// persists the deck, and advances. With no current entry it only advances.
// A persist failure is logged and kept in State.PersistErr until the next
// successful write; the in-memory deck stays authoritative.
func (s *Session) MarkKnown() {
	if cur := s.state.Current; cur != nil {
		next, err := s.store.Remove(s.state.Selector, s.state.Deck, *cur)
		if next != nil {
			s.state.Deck = next
		}
		s.state.PersistErr = err
		if err != nil {
			s.log.Warn("persist deck failed", zap.Stringer("selector", s.state.Selector), zap.Error(err))
		}
		s.state.Known++
		s.record(store.ActionKnown, cur)
	}
	s.Advance()
}

// MarkUnknown advances, leaving the current entry in the deck.
func (s *Session) MarkUnknown() {
	if cur := s.state.Current; cur != nil {
		s.state.Unknown++
		s.record(store.ActionUnknown, cur)
	}
	s.Advance()
}

// SetSelector replaces the deck with the one for sel and draws from it.
func (s *Session) SetSelector(sel deck.Selector) {
	s.load(sel)
	s.Advance()
}

// SetDirection switches the prompt side.
func (s *Session) SetDirection(d deck.Direction) {
	sel := s.state.Selector
	sel.Direction = d
	s.SetSelector(sel)
}

// ToggleDirection switches between to-English and from-English.
func (s *Session) ToggleDirection() {
	s.SetDirection(s.state.Selector.Direction.Opposite())
}

// SetLanguage switches to the phrase deck for l, leaving legacy mode.
func (s *Session) SetLanguage(l deck.Language) {
	sel := s.state.Selector
	sel.Language = l
	sel.Legacy = false
	s.SetSelector(sel)
}

// SetCategory switches to the phrase deck for c, leaving legacy mode.
func (s *Session) SetCategory(c deck.Category) {
	sel := s.state.Selector
	sel.Category = c
	sel.Legacy = false
	s.SetSelector(sel)
}

// Close cancels any pending reveal and records the end of the session.
// Calling Close more than once has no further effect.
func (s *Session) Close() {
	s.cancelReveal()
	if s.closed {
		return
	}
	s.closed = true
	s.record(store.ActionEnd, nil)
	s.log.Info("review session closed",
		zap.Int("known", s.state.Known),
		zap.Int("unknown", s.state.Unknown),
		zap.Duration("duration", s.now().Sub(s.state.StartTime)),
	)
}

func (s *Session) load(sel deck.Selector) {
	s.cancelReveal()
	s.state.Selector = sel
	s.state.Current = nil
	s.state.Prompt, s.state.Answer = Card{}, Card{}
	s.state.Phase = PhaseIdle
	s.state.LoadErr = nil

	d, err := s.store.Load(sel)
	switch {
	case err == nil:
	case d != nil && errors.Is(err, deck.ErrPersist):
		s.state.PersistErr = err
		s.log.Warn("in-progress file not created", zap.Stringer("selector", sel), zap.Error(err))
	default:
		s.state.LoadErr = err
		s.state.Deck = nil
		s.state.DeckSize = 0
		s.log.Error("load deck failed", zap.Stringer("selector", sel), zap.Error(err))
		return
	}

	s.state.Deck = d
	s.state.DeckSize = d.Len()
	s.log.Info("deck loaded", zap.Stringer("selector", sel), zap.Int("rows", d.Len()))
	s.record(store.ActionStart, nil)
}

func (s *Session) exhaust() {
	already := s.state.Phase == PhaseExhausted
	s.state.Current = nil
	s.state.Prompt, s.state.Answer = Card{}, Card{}
	s.state.Phase = PhaseExhausted
	if already || s.state.LoadErr != nil {
		return
	}
	s.log.Info("deck exhausted", zap.Stringer("selector", s.state.Selector))
	s.record(store.ActionExhausted, nil)
}

func (s *Session) cancelReveal() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.draws++
}

func (s *Session) say(c Card) {
	if s.speaker != nil && c.Text != "" {
		s.speaker.Say(c.Text, c.Label)
	}
}

func (s *Session) record(action store.Action, e *deck.Entry) {
	if s.events == nil {
		return
	}
	sel := s.state.Selector
	ev := store.ReviewEvent{
		SessionID: s.state.SessionID,
		Action:    action,
		Language:  sel.LanguageColumn(),
		Category:  string(sel.Category),
		Direction: string(sel.Direction),
		CreatedAt: s.now(),
	}
	if e != nil {
		ev.Prompt = e.Get(sel.PromptColumn())
		ev.Answer = e.Get(sel.AnswerColumn())
	}
	// Don't fail the review if history can't be written.
	if err := s.events.Append(context.Background(), ev); err != nil {
		s.log.Warn("record review event failed", zap.String("action", string(action)), zap.Error(err))
	}
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }
