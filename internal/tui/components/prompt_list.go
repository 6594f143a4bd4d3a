package components

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/isaacphi/promptpad/internal/domain"
	"github.com/isaacphi/promptpad/internal/tui/keys"
	"github.com/isaacphi/promptpad/internal/tui/styles"
)

type OpenPromptMsg struct {
	Prompt *domain.Prompt
}

type AddToExperimentMsg struct {
	Prompt *domain.Prompt
}

type NewPromptMsg struct{}

// DeletePromptMsg requests deletion; the app confirms before acting on it.
type DeletePromptMsg struct {
	Prompt *domain.Prompt
}

type PromptItem struct {
	prompt *domain.Prompt
}

func (i PromptItem) Title() string { return i.prompt.Name }

func (i PromptItem) Description() string {
	if i.prompt.Description != "" {
		return i.prompt.Description
	}
	if len(i.prompt.Messages) > 0 {
		return firstLine(i.prompt.Messages[0].Content)
	}
	return ""
}

func (i PromptItem) FilterValue() string { return i.prompt.Name }

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx] + "…"
	}
	return s
}

// promptDelegate renders two lines per prompt and marks the current prompt.
type promptDelegate struct {
	current uuid.UUID
	styles  styles.Styles
}

func (d promptDelegate) Height() int                             { return 2 }
func (d promptDelegate) Spacing() int                            { return 1 }
func (d promptDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d promptDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(PromptItem)
	if !ok {
		return
	}

	title := item.Title()
	if item.prompt.ID == d.current {
		title = d.styles.Current.Render("● " + title)
	} else {
		title = "  " + title
	}
	desc := "  " + d.styles.Muted.Render(item.Description())

	block := title + "\n" + desc
	if index == m.Index() {
		block = d.styles.Selected.Render(block)
	} else {
		block = padUnselected(block)
	}
	fmt.Fprint(w, block)
}

// padUnselected indents unselected rows to line up with the selection border.
func padUnselected(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

type PromptList struct {
	list    list.Model
	keys    keys.KeyMap
	styles  styles.Styles
	current uuid.UUID
}

func NewPromptList(km keys.KeyMap, st styles.Styles) *PromptList {
	l := list.New([]list.Item{}, promptDelegate{styles: st}, 0, 0)
	l.Title = "Prompts"
	l.Styles.Title = st.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	return &PromptList{
		list:   l,
		keys:   km,
		styles: st,
	}
}

// SetPrompts replaces the list contents, keeping the cursor on selectID when
// it is still present.
func (m *PromptList) SetPrompts(prompts []*domain.Prompt, selectID uuid.UUID) tea.Cmd {
	items := make([]list.Item, len(prompts))
	selected := -1
	for i, p := range prompts {
		items[i] = PromptItem{prompt: p}
		if p.ID == selectID {
			selected = i
		}
	}
	cmd := m.list.SetItems(items)
	if selected < 0 && m.list.Index() >= len(items) {
		selected = len(items) - 1
	}
	if selected >= 0 {
		m.list.Select(selected)
	}
	return cmd
}

// SetCurrent marks the prompt currently open in the detail view.
func (m *PromptList) SetCurrent(id uuid.UUID) {
	m.current = id
	m.list.SetDelegate(promptDelegate{current: id, styles: m.styles})
}

func (m *PromptList) Selected() (*domain.Prompt, bool) {
	item, ok := m.list.SelectedItem().(PromptItem)
	if !ok {
		return nil, false
	}
	return item.prompt, true
}

func (m *PromptList) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m *PromptList) Init() tea.Cmd {
	return nil
}

func (m *PromptList) Update(msg tea.Msg) (*PromptList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.New):
			return m, func() tea.Msg { return NewPromptMsg{} }
		case key.Matches(msg, m.keys.Open):
			if p, ok := m.Selected(); ok {
				return m, func() tea.Msg { return OpenPromptMsg{Prompt: p} }
			}
			return m, nil
		case key.Matches(msg, m.keys.AddToExperiment):
			if p, ok := m.Selected(); ok {
				return m, func() tea.Msg { return AddToExperimentMsg{Prompt: p} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if p, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeletePromptMsg{Prompt: p} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *PromptList) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Open, m.keys.New, m.keys.AddToExperiment, m.keys.Delete, m.keys.Quit}
}

func (m *PromptList) View() string {
	if len(m.list.Items()) == 0 {
		return m.styles.Title.Render("Prompts") + "\n\n" +
			m.styles.Muted.Render(fmt.Sprintf("  No prompts yet. Press %s to create one.", m.keys.New.Help().Key))
	}
	return m.list.View()
}
