package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflip/internal/router"
	"github.com/abhisek/lingoflip/internal/screen"
	"github.com/abhisek/lingoflip/internal/store"
	"github.com/abhisek/lingoflip/internal/ui/layout"
	"github.com/abhisek/lingoflip/internal/ui/theme"
)

// eventLimit is how many recent events the screen loads.
const eventLimit = 200

type historyLoadedMsg struct {
	Sessions []SessionRecord
	Err      error
}

// SessionRecord groups the recent events of one review session.
type SessionRecord struct {
	SessionID string
	Language  string
	Known     int
	Unknown   int
	Finished  bool
	// Cards are the marked cards, newest first.
	Cards []store.ReviewEvent
	// Latest is the newest event of the session.
	Latest store.ReviewEvent
}

// GroupSessions groups newest-first events by session, keeping the order in
// which each session first appears.
func GroupSessions(events []store.ReviewEvent) []SessionRecord {
	var out []SessionRecord
	index := make(map[string]int)
	for _, ev := range events {
		i, ok := index[ev.SessionID]
		if !ok {
			i = len(out)
			index[ev.SessionID] = i
			out = append(out, SessionRecord{SessionID: ev.SessionID, Language: ev.Language, Latest: ev})
		}
		rec := &out[i]
		switch ev.Action {
		case store.ActionKnown:
			rec.Known++
			rec.Cards = append(rec.Cards, ev)
		case store.ActionUnknown:
			rec.Unknown++
			rec.Cards = append(rec.Cards, ev)
		case store.ActionExhausted:
			rec.Finished = true
		}
	}
	return out
}

// HistoryScreen displays past review sessions and the cards marked in each.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []SessionRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.eventRepo.Recent(context.Background(), eventLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Sessions: GroupSessions(events)}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Cards"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No reviews yet. Start flipping!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.sessions {
		dateStr := rec.Latest.CreatedAt.Local().Format("Jan 02, 2006 15:04")

		var rate float64
		if reviewed := rec.Known + rec.Unknown; reviewed > 0 {
			rate = float64(rec.Known) / float64(reviewed) * 100
		}

		doneStr := ""
		if rec.Finished {
			doneStr = "  deck finished"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d known  %d again  %.0f%%%s",
			prefix, dateStr, rec.Language, rec.Known, rec.Unknown, rate, doneStr)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		// Show expanded card details.
		if s.expanded[i] {
			if len(rec.Cards) == 0 {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
						Render("    No cards marked this session")))
				b.WriteString("\n")
				continue
			}
			for _, c := range rec.Cards {
				mark := theme.Known.Render("✓")
				if c.Action == store.ActionUnknown {
					mark = theme.Unknown.Render("✗")
				}
				cardLine := fmt.Sprintf("    %s %s → %s", mark, c.Prompt, c.Answer)
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.Text).Render(cardLine)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}
