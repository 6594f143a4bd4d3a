package keys

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/isaacphi/promptpad/internal/config"
)

// KeyMap holds the bindings built from the configured keymap.
type KeyMap struct {
	Quit            key.Binding
	Open            key.Binding
	Back            key.Binding
	Edit            key.Binding
	Close           key.Binding
	AddToExperiment key.Binding
	Delete          key.Binding
	New             key.Binding
	Toggle          key.Binding
	Paste           key.Binding
	NextVariable    key.Binding
	Confirm         key.Binding
	Cancel          key.Binding

	Up   key.Binding
	Down key.Binding
}

func New(km config.KeyMap) KeyMap {
	bind := func(action, help string) key.Binding {
		keys := km.GetKeys(action)
		return key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(helpKeys(keys), help),
		)
	}

	return KeyMap{
		Quit:            bind(config.KeyActionQuit, "quit"),
		Open:            bind(config.KeyActionOpen, "open"),
		Back:            bind(config.KeyActionBack, "back"),
		Edit:            bind(config.KeyActionEdit, "edit"),
		Close:           bind(config.KeyActionClose, "close"),
		AddToExperiment: bind(config.KeyActionAddToExperiment, "add to experiment"),
		Delete:          bind(config.KeyActionDelete, "delete"),
		New:             bind(config.KeyActionNew, "new prompt"),
		Toggle:          bind(config.KeyActionToggle, "expand/collapse"),
		Paste:           bind(config.KeyActionPaste, "paste"),
		NextVariable:    bind(config.KeyActionNextVariable, "next variable"),
		Confirm:         bind(config.KeyActionConfirm, "yes"),
		Cancel:          bind(config.KeyActionCancel, "no"),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "move down"),
		),
	}
}

func helpKeys(keys []string) string {
	labels := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		labels[i] = k
	}
	return strings.Join(labels, "/")
}

// Help adapts a flat binding list to help.KeyMap.
type Help []key.Binding

func (h Help) ShortHelp() []key.Binding {
	return h
}

func (h Help) FullHelp() [][]key.Binding {
	return [][]key.Binding{h}
}
