package home

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingoflip/internal/deck"
	"github.com/abhisek/lingoflip/internal/router"
	"github.com/abhisek/lingoflip/internal/screens/history"
	"github.com/abhisek/lingoflip/internal/screens/picker"
	sessionscreen "github.com/abhisek/lingoflip/internal/screens/session"
	"github.com/abhisek/lingoflip/internal/screens/tips"
	sess "github.com/abhisek/lingoflip/internal/session"
	"github.com/abhisek/lingoflip/internal/store"
)

var frenchGeneral = deck.Selector{
	Language:  deck.LanguageFrench,
	Category:  deck.CategoryGeneral,
	Direction: deck.ToEnglish,
}

type fakeDecks struct {
	remaining map[deck.Selector]int
	masters   map[deck.Selector]int
}

func (f *fakeDecks) Remaining(sel deck.Selector) (int, bool, error) {
	n, ok := f.remaining[sel]
	return n, ok, nil
}

func (f *fakeDecks) Master(sel deck.Selector) (*deck.Deck, error) {
	n, ok := f.masters[sel]
	if !ok {
		return nil, errors.New("no master")
	}
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{"fr", "en"}
	}
	return deck.New([]string{"French", "English"}, rows...)
}

type fakeEvents struct {
	counts map[store.Action]int
}

func (f *fakeEvents) Append(context.Context, store.ReviewEvent) error { return nil }
func (f *fakeEvents) Counts(context.Context, time.Time) (map[store.Action]int, error) {
	return f.counts, nil
}
func (f *fakeEvents) Recent(context.Context, int) ([]store.ReviewEvent, error) { return nil, nil }

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func down(h *HomeScreen, n int) {
	for i := 0; i < n; i++ {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
}

func TestHome_MenuLabels(t *testing.T) {
	h := New(Options{Selector: frenchGeneral})
	want := []string{
		"START REVIEW",
		"LANGUAGE: French",
		"CATEGORY: general",
		"DIRECTION: to English",
		"LEARNING TIPS",
		"HISTORY",
		"EXIT",
	}
	got := h.menu.Labels()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("labels = %v, want %v", got, want)
	}
}

func TestHome_LegacyLabels(t *testing.T) {
	h := New(Options{Selector: deck.Selector{Language: deck.LanguageFrench, Direction: deck.ToEnglish, Legacy: true}})
	labels := h.menu.Labels()
	if labels[itemLanguage] != "LANGUAGE: French words" || labels[itemCategory] != "CATEGORY: -" {
		t.Errorf("unexpected legacy labels %v", labels)
	}
}

func TestHome_StartReviewPushesSession(t *testing.T) {
	var got deck.Selector
	factory := func(sel deck.Selector, sched sess.Scheduler) *sess.Session {
		got = sel
		return sess.New(sel, sess.Options{Store: deck.NewStore(t.TempDir(), nil), Scheduler: sched})
	}
	h := New(Options{Selector: frenchGeneral, NewSession: factory})

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := runCmd(t, cmd).(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*sessionscreen.SessionScreen); !ok {
		t.Errorf("expected review screen, got %T", push.Screen)
	}
	if got != frenchGeneral {
		t.Errorf("factory got %v, want %v", got, frenchGeneral)
	}
}

func TestHome_StartWithoutFactory(t *testing.T) {
	h := New(Options{Selector: frenchGeneral})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("start should do nothing without a session factory")
	}
}

func TestHome_PickLanguage(t *testing.T) {
	h := New(Options{Selector: frenchGeneral})
	down(h, itemLanguage)

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := runCmd(t, cmd).(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	p, ok := push.Screen.(*picker.PickerScreen)
	if !ok {
		t.Fatalf("expected picker, got %T", push.Screen)
	}
	if p.Selected() != 0 {
		t.Errorf("picker should start on French, got %d", p.Selected())
	}

	h.Update(languagePickedMsg{language: deck.LanguageSpanish})
	if h.Selector().Language != deck.LanguageSpanish {
		t.Errorf("Language = %q, want Spanish", h.Selector().Language)
	}
	if h.menu.Labels()[itemLanguage] != "LANGUAGE: Spanish" {
		t.Errorf("label not refreshed: %q", h.menu.Labels()[itemLanguage])
	}
	if h.menu.Selected != itemLanguage {
		t.Errorf("selection moved to %d", h.menu.Selected)
	}
}

func TestHome_PickCategoryLeavesLegacy(t *testing.T) {
	h := New(Options{Selector: deck.Selector{Language: deck.LanguageFrench, Direction: deck.ToEnglish, Legacy: true}})
	h.Update(categoryPickedMsg{category: deck.CategoryWork})
	sel := h.Selector()
	if sel.Legacy || sel.Category != deck.CategoryWork {
		t.Errorf("unexpected selector %+v", sel)
	}
}

func TestHome_ToggleDirection(t *testing.T) {
	h := New(Options{Selector: frenchGeneral})
	down(h, itemDirection)
	h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if h.Selector().Direction != deck.FromEnglish {
		t.Errorf("Direction = %q, want from_english", h.Selector().Direction)
	}
	if h.menu.Labels()[itemDirection] != "DIRECTION: from English" {
		t.Errorf("label = %q", h.menu.Labels()[itemDirection])
	}
}

func TestHome_TipsAndExit(t *testing.T) {
	h := New(Options{Selector: frenchGeneral})
	down(h, itemTips)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := runCmd(t, cmd).(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*tips.TipsScreen); !ok {
		t.Errorf("expected tips screen, got %T", push.Screen)
	}

	down(h, 2)
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := runCmd(t, cmd).(tea.QuitMsg); !ok {
		t.Error("expected quit")
	}
}

func TestHome_History(t *testing.T) {
	h := New(Options{Selector: frenchGeneral})
	down(h, itemHistory)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("history without an event store should do nothing")
	}

	h = New(Options{Selector: frenchGeneral, Events: &fakeEvents{}})
	down(h, itemHistory)
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := runCmd(t, cmd).(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("expected history screen, got %T", push.Screen)
	}
}

func TestHome_Stats(t *testing.T) {
	fromEnglish := frenchGeneral
	fromEnglish.Direction = deck.FromEnglish
	decks := &fakeDecks{
		remaining: map[deck.Selector]int{frenchGeneral: 7},
		masters:   map[deck.Selector]int{fromEnglish: 20},
	}
	events := &fakeEvents{counts: map[store.Action]int{store.ActionKnown: 4, store.ActionExhausted: 1}}
	h := New(Options{Selector: frenchGeneral, Decks: decks, Events: events})

	if h.remaining != 7 || h.knownToday != 4 || h.decksDone != 1 {
		t.Errorf("stats = %d/%d/%d, want 7/4/1", h.remaining, h.knownToday, h.decksDone)
	}
	view := h.View(120, 40)
	if !strings.Contains(view, "7 LEFT") || !strings.Contains(view, "4 KNOWN TODAY") {
		t.Error("expected stats in the view")
	}

	// No in-progress file yet: fall back to the master size.
	h.toggleDirection()
	if h.remaining != 20 {
		t.Errorf("remaining = %d, want 20", h.remaining)
	}

	events.counts[store.ActionKnown] = 9
	h.Update(router.ResumeMsg{})
	if h.knownToday != 9 {
		t.Errorf("knownToday = %d after resume, want 9", h.knownToday)
	}
}

func TestHome_MissingDeck(t *testing.T) {
	h := New(Options{Selector: frenchGeneral, Decks: &fakeDecks{}})
	if !h.deckMissing || h.mascotVariant() != MascotAlert {
		t.Error("expected the missing-deck state")
	}
	if !strings.Contains(h.View(80, 20), "◆?") {
		t.Error("expected the compact missing marker")
	}
}

func TestHome_Title(t *testing.T) {
	h := New(Options{Selector: frenchGeneral})
	if h.Title() != "Home" {
		t.Errorf("Title = %q", h.Title())
	}
}
