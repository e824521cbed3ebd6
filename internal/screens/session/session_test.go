package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingoflip/internal/deck"
	"github.com/abhisek/lingoflip/internal/router"
	"github.com/abhisek/lingoflip/internal/screens/summary"
	"github.com/abhisek/lingoflip/internal/screens/tips"
	sess "github.com/abhisek/lingoflip/internal/session"
	"github.com/abhisek/lingoflip/internal/store"
)

var frenchGeneral = deck.Selector{
	Language:  deck.LanguageFrench,
	Category:  deck.CategoryGeneral,
	Direction: deck.ToEnglish,
}

type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	events []store.ReviewEvent
}

func (m *mockEventRepo) Append(_ context.Context, ev store.ReviewEvent) error {
	m.events = append(m.events, ev)
	return nil
}

func (m *mockEventRepo) Counts(_ context.Context, _ time.Time) (map[store.Action]int, error) {
	out := make(map[store.Action]int)
	for _, ev := range m.events {
		out[ev.Action]++
	}
	return out, nil
}

func (m *mockEventRepo) Recent(_ context.Context, _ int) ([]store.ReviewEvent, error) {
	return m.events, nil
}

func (m *mockEventRepo) count(a store.Action) int {
	n := 0
	for _, ev := range m.events {
		if ev.Action == a {
			n++
		}
	}
	return n
}

func writeDeck(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, "french_general_phrases.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestScreen(t *testing.T, dir string, events store.EventRepo) *SessionScreen {
	t.Helper()
	decks := deck.NewStore(dir, nil)
	factory := func(sel deck.Selector, sched sess.Scheduler) *sess.Session {
		return sess.New(sel, sess.Options{
			Store:     decks,
			Scheduler: sched,
			Events:    events,
			Rand:      firstRand{},
		})
	}
	return New(frenchGeneral, factory, events)
}

func press(s *SessionScreen, msg tea.KeyPressMsg) tea.Cmd {
	_, cmd := s.Update(msg)
	return cmd
}

func TestScheduler_DeliverAndStop(t *testing.T) {
	sched := newScheduler()
	ran := 0
	h := sched.AfterFunc(time.Second, func() { ran++ })
	sched.AfterFunc(time.Second, func() { ran += 10 })

	if sched.Flush() == nil {
		t.Fatal("expected queued ticks")
	}
	if sched.Flush() != nil {
		t.Error("second flush should be empty")
	}

	if !h.Stop() {
		t.Error("first Stop should report true")
	}
	if h.Stop() {
		t.Error("second Stop should report false")
	}
	if sched.Deliver(1) {
		t.Error("stopped callback should not run")
	}
	if !sched.Deliver(2) {
		t.Error("pending callback should run")
	}
	if sched.Deliver(2) {
		t.Error("callback should run at most once")
	}
	if ran != 10 {
		t.Errorf("ran = %d, want 10", ran)
	}
	if sched.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", sched.Pending())
	}
}

func TestSessionScreen_RevealOnTick(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, "French,English\nchat,cat\nchien,dog\n")
	s := newTestScreen(t, dir, nil)

	if s.Init() == nil {
		t.Fatal("expected the reveal tick from Init")
	}
	st := s.Session().State()
	if st.Phase != sess.PhasePrompt || st.Prompt.Text != "chat" {
		t.Fatalf("expected prompt chat, got %v %q", st.Phase, st.Prompt.Text)
	}
	if !strings.Contains(s.View(80, 24), "chat") {
		t.Error("expected the prompt on screen")
	}

	s.Update(revealMsg{id: 1})
	st = s.Session().State()
	if st.Phase != sess.PhaseAnswer {
		t.Fatalf("expected answer phase, got %v", st.Phase)
	}
	if !strings.Contains(s.View(80, 24), "cat") {
		t.Error("expected the answer on screen")
	}
}

func TestSessionScreen_StaleRevealIgnored(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, "French,English\nchat,cat\nchien,dog\n")
	s := newTestScreen(t, dir, nil)
	s.Init()

	cmd := press(s, tea.KeyPressMsg{Code: tea.KeyRight})
	if cmd == nil {
		t.Fatal("expected a new reveal tick after marking known")
	}
	if s.sched.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", s.sched.Pending())
	}

	s.Update(revealMsg{id: 1})
	st := s.Session().State()
	if st.Phase != sess.PhasePrompt || st.Prompt.Text != "chien" {
		t.Errorf("stale reveal changed state: %v %q", st.Phase, st.Prompt.Text)
	}
}

func TestSessionScreen_SpaceReveals(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, "French,English\nchat,cat\n")
	s := newTestScreen(t, dir, nil)
	s.Init()

	press(s, tea.KeyPressMsg{Code: tea.KeySpace})
	if !s.Session().State().Revealed() {
		t.Error("space should reveal the answer")
	}
	if s.sched.Pending() != 0 {
		t.Errorf("manual reveal should cancel the tick, Pending = %d", s.sched.Pending())
	}
}

func TestSessionScreen_UnknownKeepsEntry(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, "French,English\nchat,cat\n")
	s := newTestScreen(t, dir, nil)
	s.Init()

	press(s, tea.KeyPressMsg{Code: tea.KeyLeft})
	st := s.Session().State()
	if st.Unknown != 1 || st.Remaining() != 1 {
		t.Errorf("expected 1 unknown and 1 remaining, got %d and %d", st.Unknown, st.Remaining())
	}
}

func TestSessionScreen_ExhaustedView(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, "French,English\nchat,cat\n")
	s := newTestScreen(t, dir, nil)
	s.Init()

	press(s, tea.KeyPressMsg{Code: tea.KeyRight})
	if !s.Session().State().Exhausted() {
		t.Fatal("expected exhausted deck")
	}
	view := s.View(80, 24)
	if !strings.Contains(view, "No more phrases!") || !strings.Contains(view, "Congratulations!") {
		t.Error("expected the exhausted message")
	}
}

func TestSessionScreen_LanguageCyclesToMissingDeck(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, "French,English\nchat,cat\n")
	s := newTestScreen(t, dir, nil)
	s.Init()

	press(s, tea.KeyPressMsg{Code: 'l', Text: "l"})
	st := s.Session().State()
	if st.Selector.Language != deck.LanguageGerman {
		t.Errorf("Language = %q, want German", st.Selector.Language)
	}
	if st.LoadErr == nil {
		t.Fatal("expected a load error for the missing German deck")
	}
	if !strings.Contains(s.View(100, 24), "Could not load") {
		t.Error("expected the load error on screen")
	}
}

func TestSessionScreen_DirectionToggle(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, "French,English\nchat,cat\n")
	s := newTestScreen(t, dir, nil)
	s.Init()

	press(s, tea.KeyPressMsg{Code: 'd', Text: "d"})
	st := s.Session().State()
	if st.Selector.Direction != deck.FromEnglish || st.Prompt.Text != "cat" {
		t.Errorf("expected from-English prompt cat, got %q %q", st.Selector.Direction, st.Prompt.Text)
	}
	if s.Status() != st.Selector.String() {
		t.Errorf("Status = %q, want %q", s.Status(), st.Selector.String())
	}
}

func TestSessionScreen_TipsPushes(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, "French,English\nchat,cat\n")
	s := newTestScreen(t, dir, nil)
	s.Init()

	cmd := press(s, tea.KeyPressMsg{Code: '?', Text: "?"})
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	msg := findMsg[router.PushScreenMsg](cmd)
	if msg == nil {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*tips.TipsScreen); !ok {
		t.Errorf("expected tips screen, got %T", msg.Screen)
	}
}

func TestScheduler_Rearm(t *testing.T) {
	sched := newScheduler()
	base := time.Now()
	sched.now = func() time.Time { return base }
	ran := 0
	sched.AfterFunc(time.Second, func() { ran++ })
	sched.AfterFunc(time.Minute, func() { ran += 10 })
	sched.Flush()

	sched.now = func() time.Time { return base.Add(2 * time.Second) }
	sched.Rearm()
	if ran != 1 {
		t.Errorf("ran = %d, want only the due callback", ran)
	}
	if sched.Pending() != 1 {
		t.Errorf("pending = %d, want 1", sched.Pending())
	}
	if sched.Flush() == nil {
		t.Error("expected a fresh tick for the callback not yet due")
	}
	if sched.Deliver(1) {
		t.Error("late original tick should be ignored")
	}
}

// revealDueDuringTips drives a review through the router: tips are pushed,
// the reveal tick lands on the tips screen, and tips are popped again.
func revealDueDuringTips(t *testing.T, later time.Duration) (*SessionScreen, tea.Cmd) {
	t.Helper()
	dir := t.TempDir()
	writeDeck(t, dir, "French,English\nchat,cat\n")
	s := newTestScreen(t, dir, nil)
	base := time.Now()
	s.sched.now = func() time.Time { return base }

	r := router.New(s)
	s.Init()
	r.Push(tips.New())
	r.Update(revealMsg{id: 1})
	if got := s.Session().State().Phase; got != sess.PhasePrompt {
		t.Fatalf("phase while tips shown = %v, want prompt", got)
	}

	s.sched.now = func() time.Time { return base.Add(later) }
	pop := r.Pop()
	if pop == nil {
		t.Fatal("expected a resume command")
	}
	return s, r.Update(pop())
}

func TestSessionScreen_RevealDueDuringTips(t *testing.T) {
	s, _ := revealDueDuringTips(t, time.Minute)
	if got := s.Session().State().Phase; got != sess.PhaseAnswer {
		t.Errorf("phase after returning from tips = %v, want answer", got)
	}
	if s.sched.Pending() != 0 {
		t.Errorf("pending = %d, want 0", s.sched.Pending())
	}
}

func TestSessionScreen_RevealNotYetDueAfterTips(t *testing.T) {
	s, cmd := revealDueDuringTips(t, time.Second)
	if got := s.Session().State().Phase; got != sess.PhasePrompt {
		t.Errorf("phase = %v, want prompt until the delay passes", got)
	}
	if cmd == nil {
		t.Fatal("expected the reveal to be re-armed")
	}
	s.Update(revealMsg{id: 1})
	if got := s.Session().State().Phase; got != sess.PhaseAnswer {
		t.Errorf("phase after re-armed tick = %v, want answer", got)
	}
}

func TestSessionScreen_EscWithoutMarksEnds(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, "French,English\nchat,cat\n")
	events := &mockEventRepo{}
	s := newTestScreen(t, dir, events)
	s.Init()

	cmd := press(s, tea.KeyPressMsg{Code: tea.KeyEscape})
	if findMsg[sessionEndMsg](cmd) == nil {
		t.Fatal("expected the review to end without confirmation")
	}
}

func TestSessionScreen_QuitConfirmThenSummary(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, "French,English\nchat,cat\nchien,dog\n")
	events := &mockEventRepo{}
	s := newTestScreen(t, dir, events)
	s.Init()
	press(s, tea.KeyPressMsg{Code: tea.KeyLeft})

	press(s, tea.KeyPressMsg{Code: tea.KeyEscape})
	if !s.showingQuitConfirm {
		t.Fatal("expected the quit confirmation")
	}
	if !strings.Contains(s.View(80, 24), "End review?") {
		t.Error("expected the confirmation dialog")
	}

	press(s, tea.KeyPressMsg{Code: 'n', Text: "n"})
	if s.showingQuitConfirm {
		t.Fatal("N should dismiss the confirmation")
	}

	press(s, tea.KeyPressMsg{Code: tea.KeyEscape})
	cmd := press(s, tea.KeyPressMsg{Code: 'y', Text: "y"})
	if findMsg[sessionEndMsg](cmd) == nil {
		t.Fatal("expected sessionEndMsg")
	}

	_, cmd = s.Update(sessionEndMsg{})
	if cmd == nil {
		t.Fatal("expected a replace command")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := replace.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected summary screen, got %T", replace.Screen)
	}
	if events.count(store.ActionEnd) != 1 {
		t.Errorf("expected one end event, got %d", events.count(store.ActionEnd))
	}

	// Ending twice, or closing afterwards, records nothing more.
	s.Update(sessionEndMsg{})
	s.Close()
	if events.count(store.ActionEnd) != 1 {
		t.Errorf("expected one end event after Close, got %d", events.count(store.ActionEnd))
	}
}

func TestSessionScreen_KeyHints(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, "French,English\nchat,cat\n")
	s := newTestScreen(t, dir, nil)
	s.Init()

	if len(s.KeyHints()) != 6 {
		t.Errorf("KeyHints length = %d, want 6", len(s.KeyHints()))
	}
	if !s.HandlesBack() {
		t.Error("review screen handles Esc itself")
	}
}

// findMsg runs cmd and returns the first message of type T, looking inside
// batches.
func findMsg[T any](cmd tea.Cmd) *T {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case T:
		return &msg
	case tea.BatchMsg:
		for _, c := range msg {
			if found := findMsg[T](c); found != nil {
				return found
			}
		}
	}
	return nil
}
