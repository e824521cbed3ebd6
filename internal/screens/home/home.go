package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingoflip/internal/deck"
	"github.com/abhisek/lingoflip/internal/router"
	"github.com/abhisek/lingoflip/internal/screen"
	"github.com/abhisek/lingoflip/internal/screens/history"
	"github.com/abhisek/lingoflip/internal/screens/picker"
	sessionscreen "github.com/abhisek/lingoflip/internal/screens/session"
	"github.com/abhisek/lingoflip/internal/screens/tips"
	"github.com/abhisek/lingoflip/internal/store"
	"github.com/abhisek/lingoflip/internal/ui/components"
	"github.com/abhisek/lingoflip/internal/ui/layout"
)

// DeckStats reports deck sizes for the stats bar. *deck.Store satisfies it.
type DeckStats interface {
	Remaining(sel deck.Selector) (int, bool, error)
	Master(sel deck.Selector) (*deck.Deck, error)
}

// Options configures the home screen.
type Options struct {
	Selector   deck.Selector
	NewSession sessionscreen.Factory

	// Events and Decks feed the stats bar; either may be nil.
	Events store.EventRepo
	Decks  DeckStats

	Now func() time.Time
}

type languagePickedMsg struct{ language deck.Language }

type categoryPickedMsg struct{ category deck.Category }

const (
	itemStart = iota
	itemLanguage
	itemCategory
	itemDirection
	itemTips
	itemHistory
	itemExit
)

// HomeScreen is the main menu: choose a deck and start reviewing.
type HomeScreen struct {
	opts     Options
	selector deck.Selector
	menu     components.Menu

	remaining   int
	deckMissing bool
	knownToday  int
	decksDone   int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	h := &HomeScreen{opts: opts, selector: opts.Selector}
	h.rebuildMenu()
	h.refresh()
	return h
}

// Selector returns the deck the next review will use.
func (h *HomeScreen) Selector() deck.Selector {
	return h.selector
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Move"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.ResumeMsg:
		h.refresh()
		return h, nil
	case languagePickedMsg:
		h.selector.Language = msg.language
		h.selector.Legacy = false
		h.rebuildMenu()
		h.refresh()
		return h, nil
	case categoryPickedMsg:
		h.selector.Category = msg.category
		h.selector.Legacy = false
		h.rebuildMenu()
		h.refresh()
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 36 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant(), cw))
	}
	sections = append(sections, components.StatsBar(
		statsText(h.remaining, h.deckMissing, h.knownToday, h.decksDone, compact), cw))
	sections = append(sections, components.ButtonMenu(h.menu, cw, compact))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) mascotVariant() MascotVariant {
	switch {
	case h.deckMissing:
		return MascotAlert
	case h.opts.Decks != nil && h.remaining == 0:
		return MascotCelebrating
	}
	return MascotIdle
}

func (h *HomeScreen) rebuildMenu() {
	sel := h.selector
	language := string(sel.Language)
	category := string(sel.Category)
	if sel.Legacy {
		language = string(deck.LanguageFrench) + " words"
		category = "-"
	}

	items := make([]components.MenuItem, itemExit+1)
	items[itemStart] = components.MenuItem{Label: "START REVIEW", Action: h.startReview}
	items[itemLanguage] = components.MenuItem{Label: "LANGUAGE", Value: language, Action: h.pickLanguage}
	items[itemCategory] = components.MenuItem{Label: "CATEGORY", Value: category, Action: h.pickCategory}
	items[itemDirection] = components.MenuItem{Label: "DIRECTION", Value: sel.Direction.Label(), Action: h.toggleDirection}
	items[itemTips] = components.MenuItem{Label: "LEARNING TIPS", Action: func() tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: tips.New()} }
	}}
	items[itemHistory] = components.MenuItem{Label: "HISTORY", Action: h.showHistory}
	items[itemExit] = components.MenuItem{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }}

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	h.menu.Selected = selected
}

func (h *HomeScreen) startReview() tea.Cmd {
	if h.opts.NewSession == nil {
		return nil
	}
	s := sessionscreen.New(h.selector, h.opts.NewSession, h.opts.Events)
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) showHistory() tea.Cmd {
	if h.opts.Events == nil {
		return nil
	}
	s := history.New(h.opts.Events)
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) pickLanguage() tea.Cmd {
	names := make([]string, len(deck.Languages))
	current := -1
	for i, l := range deck.Languages {
		names[i] = string(l)
		if l == h.selector.Language {
			current = i
		}
	}
	p := picker.New("Choose a language", names, current, func(i int) tea.Msg {
		return languagePickedMsg{language: deck.Languages[i]}
	})
	return func() tea.Msg { return router.PushScreenMsg{Screen: p} }
}

func (h *HomeScreen) pickCategory() tea.Cmd {
	names := make([]string, len(deck.Categories))
	current := -1
	for i, c := range deck.Categories {
		names[i] = string(c)
		if c == h.selector.Category {
			current = i
		}
	}
	p := picker.New("Choose a category", names, current, func(i int) tea.Msg {
		return categoryPickedMsg{category: deck.Categories[i]}
	})
	return func() tea.Msg { return router.PushScreenMsg{Screen: p} }
}

func (h *HomeScreen) toggleDirection() tea.Cmd {
	h.selector.Direction = h.selector.Direction.Opposite()
	h.rebuildMenu()
	h.refresh()
	return nil
}

// refresh reloads the stats bar figures.
func (h *HomeScreen) refresh() {
	h.remaining, h.deckMissing = 0, false
	if h.opts.Decks != nil {
		n, exists, err := h.opts.Decks.Remaining(h.selector)
		switch {
		case err != nil:
			h.deckMissing = true
		case exists:
			h.remaining = n
		default:
			master, err := h.opts.Decks.Master(h.selector)
			if err != nil {
				h.deckMissing = true
			} else {
				h.remaining = master.Len()
			}
		}
	}

	h.knownToday, h.decksDone = 0, 0
	if h.opts.Events != nil {
		now := h.opts.Now()
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if counts, err := h.opts.Events.Counts(context.Background(), midnight); err == nil {
			h.knownToday = counts[store.ActionKnown]
			h.decksDone = counts[store.ActionExhausted]
		}
	}
}
