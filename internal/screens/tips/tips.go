package tips

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflip/internal/router"
	"github.com/abhisek/lingoflip/internal/screen"
	"github.com/abhisek/lingoflip/internal/ui/layout"
	"github.com/abhisek/lingoflip/internal/ui/theme"
)

// Tips are shown in order, numbered from 1.
var Tips = []string{
	"Focus on phrases rather than individual words for more natural language use.",
	"Practice speaking from day one, even if you make mistakes.",
	"Immerse yourself in the language through music, movies, and podcasts.",
	"Use spaced repetition techniques for memorization.",
	"Set realistic goals and track your progress.",
	"Find a language exchange partner or join language learning communities.",
	"Learn phrases related to your interests and daily activities.",
	"Don't be afraid to make mistakes - they're part of the learning process.",
	"Try to think in your target language.",
	"Review regularly and use the language whenever possible.",
}

// Topics lists what is worth learning first.
var Topics = []string{
	"Common greetings and social phrases",
	"Phrases for asking for help or clarification",
	"Expressions for ordering food and shopping",
	"Directions and transportation-related phrases",
	"Basic questions and answers for conversations",
	"Phrases for describing yourself and others",
	"Common idioms and colloquial expressions",
	"Phrases for expressing opinions and emotions",
	"Emergency and health-related phrases",
	"Cultural-specific expressions and etiquette",
}

// TipsScreen shows the learning tips in a scrollable viewport.
type TipsScreen struct {
	vp viewport.Model
}

var _ screen.Screen = (*TipsScreen)(nil)
var _ screen.KeyHintProvider = (*TipsScreen)(nil)

// New creates a new TipsScreen.
func New() *TipsScreen {
	return &TipsScreen{vp: viewport.New()}
}

func (t *TipsScreen) Init() tea.Cmd {
	return nil
}

func (t *TipsScreen) Title() string {
	return "Learning Tips"
}

func (t *TipsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (t *TipsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "q", "enter":
			return t, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	var cmd tea.Cmd
	t.vp, cmd = t.vp.Update(msg)
	return t, cmd
}

func (t *TipsScreen) View(width, height int) string {
	w := min(width-4, 76)
	t.vp.SetWidth(w)
	t.vp.SetHeight(max(height-2, 1))
	t.vp.SetContent(Render(w))

	scroll := theme.Hint.Render(fmt.Sprintf("%3.0f%%", t.vp.ScrollPercent()*100))
	body := lipgloss.JoinVertical(lipgloss.Right, t.vp.View(), scroll)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

// Render lays out the tips and topics wrapped to width.
func Render(width int) string {
	wrap := lipgloss.NewStyle().Foreground(theme.Text).Width(max(width-4, 10))
	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	var b strings.Builder
	b.WriteString(heading.Render("Language Learning Tips:"))
	b.WriteString("\n\n")
	for i, tip := range Tips {
		num := lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("%2d. ", i+1))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, num, wrap.Render(tip)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(heading.Render("What to Learn:"))
	b.WriteString("\n\n")
	for _, topic := range Topics {
		bullet := lipgloss.NewStyle().Foreground(theme.Secondary).Render("  • ")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, bullet, wrap.Render(topic)))
		b.WriteString("\n")
	}
	return b.String()
}
