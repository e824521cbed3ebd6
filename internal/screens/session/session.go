package session

import (
	"context"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingoflip/internal/deck"
	"github.com/abhisek/lingoflip/internal/router"
	"github.com/abhisek/lingoflip/internal/screen"
	"github.com/abhisek/lingoflip/internal/screens/summary"
	"github.com/abhisek/lingoflip/internal/screens/tips"
	sess "github.com/abhisek/lingoflip/internal/session"
	"github.com/abhisek/lingoflip/internal/store"
	"github.com/abhisek/lingoflip/internal/ui/layout"
)

// Factory builds a review session for sel that schedules reveals on sched.
type Factory func(sel deck.Selector, sched sess.Scheduler) *sess.Session

// sessionEndMsg is sent to trigger the session end flow.
type sessionEndMsg struct{}

// SessionScreen implements screen.Screen for an active review.
type SessionScreen struct {
	session            *sess.Session
	sched              *teaScheduler
	events             store.EventRepo
	keys               keyMap
	showingQuitConfirm bool
	ended              bool
}

var (
	_ screen.Screen          = (*SessionScreen)(nil)
	_ screen.KeyHintProvider = (*SessionScreen)(nil)
	_ screen.StatusProvider  = (*SessionScreen)(nil)
	_ screen.MeterProvider   = (*SessionScreen)(nil)
	_ screen.BackHandler     = (*SessionScreen)(nil)
	_ screen.Closer          = (*SessionScreen)(nil)
)

// New creates a review screen for sel. events may be nil.
func New(sel deck.Selector, factory Factory, events store.EventRepo) *SessionScreen {
	sched := newScheduler()
	return &SessionScreen{
		session: factory(sel, sched),
		sched:   sched,
		events:  events,
		keys:    defaultKeyMap(),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	s.session.Start()
	return s.sched.Flush()
}

func (s *SessionScreen) Title() string {
	return "Review"
}

func (s *SessionScreen) Status() string {
	return s.session.State().Selector.String()
}

// DeckMeter reports progress through the deck loaded for this review.
func (s *SessionScreen) DeckMeter() (layout.DeckMeter, bool) {
	st := s.session.State()
	if st.LoadErr != nil || st.DeckSize == 0 {
		return layout.DeckMeter{}, false
	}
	return layout.DeckMeter{Cleared: st.Cleared(), Total: st.DeckSize}, true
}

func (s *SessionScreen) HandlesBack() bool {
	return true
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End review"},
			{Key: "N", Description: "Keep going"},
		}
	}
	k := s.keys
	if s.session.State().Exhausted() {
		return hints(k.Direction, k.Language, k.Category, k.End)
	}
	return hints(k.Known, k.Unknown, k.Reveal, k.Direction, k.Tips, k.End)
}

// Close stops the review. The router calls it when the screen leaves the
// stack and on quit.
func (s *SessionScreen) Close() {
	s.session.Close()
}

// Session returns the underlying review session.
func (s *SessionScreen) Session() *sess.Session {
	return s.session
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case revealMsg:
		s.sched.Deliver(msg.id)
		return s, s.sched.Flush()

	case sessionEndMsg:
		return s.handleSessionEnd()

	case router.ResumeMsg:
		// Reveal ticks go to whichever screen is on top, so any that fell
		// due while tips were open were lost.
		s.sched.Rearm()
		return s, s.sched.Flush()

	case tea.KeyMsg:
		sc, cmd := s.handleKey(msg)
		return sc, tea.Batch(cmd, s.sched.Flush())
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.ended {
		return s, nil
	}

	// Quit confirmation dialog.
	if s.showingQuitConfirm {
		switch msg.String() {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	state := s.session.State()
	switch {
	case key.Matches(msg, s.keys.End):
		if state.Exhausted() || state.Known+state.Unknown == 0 {
			return s, func() tea.Msg { return sessionEndMsg{} }
		}
		s.showingQuitConfirm = true
	case key.Matches(msg, s.keys.Known):
		s.session.MarkKnown()
	case key.Matches(msg, s.keys.Unknown):
		s.session.MarkUnknown()
	case key.Matches(msg, s.keys.Reveal):
		s.session.Reveal()
	case key.Matches(msg, s.keys.Direction):
		s.session.ToggleDirection()
	case key.Matches(msg, s.keys.Language):
		s.session.SetLanguage(nextLanguage(state.Selector.Language))
	case key.Matches(msg, s.keys.Category):
		s.session.SetCategory(nextCategory(state.Selector.Category))
	case key.Matches(msg, s.keys.Tips):
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: tips.New()} }
	}
	return s, nil
}

func (s *SessionScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	if s.ended {
		return s, nil
	}
	s.ended = true
	s.session.Close()

	today := s.todayCounts()
	sum := s.session.Summary()
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum, today)}
	}
}

// todayCounts returns the review actions recorded since local midnight.
func (s *SessionScreen) todayCounts() map[store.Action]int {
	if s.events == nil {
		return nil
	}
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	counts, err := s.events.Counts(context.Background(), midnight)
	if err != nil {
		return nil
	}
	return counts
}

func nextLanguage(cur deck.Language) deck.Language {
	for i, l := range deck.Languages {
		if l == cur {
			return deck.Languages[(i+1)%len(deck.Languages)]
		}
	}
	return deck.Languages[0]
}

func nextCategory(cur deck.Category) deck.Category {
	for i, c := range deck.Categories {
		if c == cur {
			return deck.Categories[(i+1)%len(deck.Categories)]
		}
	}
	return deck.Categories[0]
}
