// Package picker is a one-shot choice list pushed on top of another screen.
package picker

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflip/internal/router"
	"github.com/abhisek/lingoflip/internal/screen"
	"github.com/abhisek/lingoflip/internal/ui/components"
	"github.com/abhisek/lingoflip/internal/ui/layout"
	"github.com/abhisek/lingoflip/internal/ui/theme"
)

// PickerScreen lists options and reports the chosen one to the screen below.
type PickerScreen struct {
	title string
	menu  components.Menu
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a picker over options with current highlighted. Choosing an
// option pops the picker and then delivers onPick(index) to the screen that
// becomes active.
func New(title string, options []string, current int, onPick func(int) tea.Msg) *PickerScreen {
	items := make([]components.MenuItem, len(options))
	for i, opt := range options {
		items[i] = components.MenuItem{
			Label: opt,
			Action: func() tea.Cmd {
				return tea.Sequence(
					func() tea.Msg { return router.PopScreenMsg{} },
					func() tea.Msg { return onPick(i) },
				)
			},
		}
	}
	menu := components.NewMenu(items)
	if current >= 0 && current < len(items) {
		menu.Selected = current
	}
	return &PickerScreen{title: title, menu: menu}
}

func (p *PickerScreen) Init() tea.Cmd {
	return nil
}

func (p *PickerScreen) Title() string {
	return p.title
}

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Move"},
		{Key: "Enter", Description: "Choose"},
		{Key: "Esc", Description: "Cancel"},
	}
}

// Selected returns the highlighted index.
func (p *PickerScreen) Selected() int {
	return p.menu.Selected
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PickerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	heading := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(p.title)
	list := components.ButtonMenu(p.menu, cw, layout.IsCompactHeight(height) || len(p.menu.Items)*3 > height-4)
	content := lipgloss.JoinVertical(lipgloss.Center, heading, "", list)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
