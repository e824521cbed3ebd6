package session

import (
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	sess "github.com/abhisek/lingoflip/internal/session"
)

// revealMsg is sent when a scheduled reveal comes due.
type revealMsg struct {
	id uint64
}

// teaScheduler implements sess.Scheduler on top of tea.Tick so that reveal
// callbacks run on the Bubble Tea update loop, the same goroutine that
// drives the session.
type teaScheduler struct {
	next    uint64
	pending map[uint64]*teaTimer
	queued  []tea.Cmd
	now     func() time.Time
}

var _ sess.Scheduler = (*teaScheduler)(nil)

type teaTimer struct {
	sched *teaScheduler
	id    uint64
	f     func()
	due   time.Time
	done  bool
}

func (t *teaTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	delete(t.sched.pending, t.id)
	return true
}

func newScheduler() *teaScheduler {
	return &teaScheduler{pending: make(map[uint64]*teaTimer), now: time.Now}
}

// AfterFunc queues a tick for f. The tick only starts once Flush hands the
// command to the runtime.
func (s *teaScheduler) AfterFunc(d time.Duration, f func()) sess.Handle {
	s.next++
	id := s.next
	t := &teaTimer{sched: s, id: id, f: f, due: s.now().Add(d)}
	s.pending[id] = t
	s.queue(id, d)
	return t
}

func (s *teaScheduler) queue(id uint64, d time.Duration) {
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return revealMsg{id: id}
	}))
}

// Rearm recovers ticks that were delivered to another screen. Callbacks that
// are already due run now; the rest get a fresh tick for the time left.
// Whichever tick for an id arrives second is ignored.
func (s *teaScheduler) Rearm() {
	now := s.now()
	ids := make([]uint64, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		t, ok := s.pending[id]
		if !ok {
			continue
		}
		if left := t.due.Sub(now); left > 0 {
			s.queue(id, left)
			continue
		}
		s.Deliver(id)
	}
}

// Flush returns the ticks queued since the last call.
func (s *teaScheduler) Flush() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// Deliver runs the callback for id unless it was stopped. It reports whether
// a callback ran.
func (s *teaScheduler) Deliver(id uint64) bool {
	t, ok := s.pending[id]
	if !ok {
		return false
	}
	t.done = true
	delete(s.pending, id)
	t.f()
	return true
}

// Pending returns the number of callbacks still waiting to run.
func (s *teaScheduler) Pending() int {
	return len(s.pending)
}
