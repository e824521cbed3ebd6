package session

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/lingoflip/internal/ui/layout"
)

type keyMap struct {
	Known     key.Binding
	Unknown   key.Binding
	Reveal    key.Binding
	Direction key.Binding
	Language  key.Binding
	Category  key.Binding
	Tips      key.Binding
	End       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Known: key.NewBinding(
			key.WithKeys("right", "k"),
			key.WithHelp("→", "Known"),
		),
		Unknown: key.NewBinding(
			key.WithKeys("left", "u"),
			key.WithHelp("←", "Again"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("space"),
			key.WithHelp("Space", "Flip"),
		),
		Direction: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("D", "Direction"),
		),
		Language: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("L", "Language"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("C", "Category"),
		),
		Tips: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Tips"),
		),
		End: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "End"),
		),
	}
}

// hints converts bindings to footer hints.
func hints(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
