package components

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/isaacphi/promptpad/internal/tui/keys"
	"github.com/isaacphi/promptpad/internal/tui/styles"
)

// Confirm is a yes/no overlay. While active it consumes every key press.
type Confirm struct {
	question  string
	onConfirm tea.Cmd
	active    bool
	keys      keys.KeyMap
	styles    styles.Styles
}

func NewConfirm(km keys.KeyMap, st styles.Styles) Confirm {
	return Confirm{keys: km, styles: st}
}

// Open shows question; onConfirm runs only if the user confirms.
func (c Confirm) Open(question string, onConfirm tea.Cmd) Confirm {
	c.question = question
	c.onConfirm = onConfirm
	c.active = true
	return c
}

func (c Confirm) Active() bool {
	return c.active
}

func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	if !c.active {
		return c, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch {
	case key.Matches(keyMsg, c.keys.Confirm):
		cmd := c.onConfirm
		c.active = false
		c.onConfirm = nil
		return c, cmd
	case key.Matches(keyMsg, c.keys.Cancel):
		c.active = false
		c.onConfirm = nil
	}
	return c, nil
}

func (c Confirm) View() string {
	if !c.active {
		return ""
	}
	hint := c.styles.Muted.Render(c.keys.Confirm.Help().Key + " confirm • " + c.keys.Cancel.Help().Key + " cancel")
	return c.styles.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left,
		c.styles.Highlight.Render(c.question),
		"",
		hint,
	))
}
