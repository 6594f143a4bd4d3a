package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/isaacphi/promptpad/internal/tui/styles"
)

type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

// ShowToastMsg asks the app to show a transient status message.
type ShowToastMsg struct {
	Text string
	Kind ToastKind
}

type toastExpiredMsg struct {
	id int
}

// ShowToast returns a command emitting a ShowToastMsg.
func ShowToast(text string, kind ToastKind) tea.Cmd {
	return func() tea.Msg {
		return ShowToastMsg{Text: text, Kind: kind}
	}
}

// Toast is a single-line status message that expires after a fixed duration.
// Showing a new toast replaces the current one and restarts the timer.
type Toast struct {
	text     string
	kind     ToastKind
	id       int
	duration time.Duration
	styles   styles.Styles
}

func NewToast(st styles.Styles, duration time.Duration) Toast {
	return Toast{duration: duration, styles: st}
}

func (t Toast) Visible() bool {
	return t.text != ""
}

func (t Toast) Text() string {
	return t.text
}

func (t Toast) Kind() ToastKind {
	return t.kind
}

func (t Toast) Update(msg tea.Msg) (Toast, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowToastMsg:
		t.id++
		t.text = msg.Text
		t.kind = msg.Kind
		id := t.id
		return t, tea.Tick(t.duration, func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		})

	case toastExpiredMsg:
		// Only the newest toast may clear itself.
		if msg.id == t.id {
			t.text = ""
		}
	}
	return t, nil
}

func (t Toast) View() string {
	if t.text == "" {
		return ""
	}
	if t.kind == ToastError {
		return t.styles.Error.Render("✗ " + t.text)
	}
	return t.styles.Success.Render("✓ " + t.text)
}
