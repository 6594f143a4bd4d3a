package components

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/isaacphi/promptpad/internal/config"
	"github.com/isaacphi/promptpad/internal/tui/keys"
	"github.com/isaacphi/promptpad/internal/tui/styles"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testKeys() keys.KeyMap {
	return keys.New(config.KeyMap{
		Quit:            []string{"ctrl+c"},
		Open:            []string{"enter"},
		Back:            []string{"esc"},
		Edit:            []string{"e"},
		Close:           []string{"ctrl+s", "esc"},
		AddToExperiment: []string{"a"},
		Delete:          []string{"d"},
		New:             []string{"n"},
		Toggle:          []string{" "},
		Paste:           []string{"ctrl+v"},
		NextVariable:    []string{"ctrl+n", "tab"},
		Confirm:         []string{"y", "enter"},
		Cancel:          []string{"n", "esc"},
	})
}

func testStyles() styles.Styles {
	return styles.New(config.Theme{Name: "dark", Accent: "205", Muted: "240", Title: "99", Success: "#04B575", Error: "#FF5F87", Selection: "62"})
}

// runCmd executes cmd and any batches it produces, returning the leaf
// messages. Commands must not block.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func find[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+v":
		return tea.KeyMsg{Type: tea.KeyCtrlV}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func pasteMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s), Paste: true}
}

type fakeClipboard struct {
	text string
	err  error
}

func (f fakeClipboard) ReadText() (string, error) {
	return f.text, f.err
}

var errNoClipboard = errors.New("no clipboard")
