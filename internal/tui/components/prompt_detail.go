package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/isaacphi/promptpad/internal/domain"
	"github.com/isaacphi/promptpad/internal/tui/keys"
	"github.com/isaacphi/promptpad/internal/tui/styles"
	"github.com/isaacphi/promptpad/internal/variables"
)

// EditMessageMsg asks the app to open the editor dialog for one message.
type EditMessageMsg struct {
	Prompt *domain.Prompt
	Index  int
}

type BackMsg struct{}

// Prompts with at most this many messages show every section expanded.
const openSectionsThreshold = 3

// PromptDetail shows one collapsible section per prompt message.
type PromptDetail struct {
	prompt   *domain.Prompt
	sections []Collapsible
	cursor   int

	viewport viewport.Model
	renderer *glamour.TermRenderer
	markdown bool
	width    int

	keys   keys.KeyMap
	styles styles.Styles
}

func NewPromptDetail(km keys.KeyMap, st styles.Styles, markdown bool) *PromptDetail {
	d := &PromptDetail{
		viewport: viewport.New(80, 20),
		markdown: markdown,
		width:    80,
		keys:     km,
		styles:   st,
	}
	d.renderer = d.newRenderer()
	return d
}

func (d *PromptDetail) newRenderer() *glamour.TermRenderer {
	if !d.markdown {
		return nil
	}
	style := "dark"
	if d.styles.Name == "light" {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(d.width-6, 20)),
	)
	if err != nil {
		return nil
	}
	return r
}

func (d *PromptDetail) Prompt() *domain.Prompt {
	return d.prompt
}

// SetPrompt shows p. Sections of the same prompt keep their open state; a
// different prompt starts from the defaults.
func (d *PromptDetail) SetPrompt(p *domain.Prompt) {
	samePrompt := d.prompt != nil && p != nil && d.prompt.ID == p.ID
	d.prompt = p
	if !samePrompt {
		d.sections = nil
		d.cursor = 0
	}

	defaultOpen := p != nil && len(p.Messages) <= openSectionsThreshold
	var sections []Collapsible
	if p != nil {
		for i, msg := range p.Messages {
			title := fmt.Sprintf("#%d %s", msg.Position+1, msg.Role)
			trigger := variableSummary(msg.Content)
			if i < len(d.sections) {
				s := d.sections[i]
				s.Title = title
				s.Trigger = trigger
				s.Content = d.render(msg.Content)
				s.SetDefaultOpen(defaultOpen)
				sections = append(sections, s)
				continue
			}
			sections = append(sections, NewCollapsible(title, trigger, d.render(msg.Content), defaultOpen))
		}
	}
	d.sections = sections
	if d.cursor >= len(d.sections) {
		d.cursor = max(len(d.sections)-1, 0)
	}
	d.refresh()
}

func variableSummary(content string) string {
	names := variables.Names(content)
	if len(names) == 0 {
		return "no variables"
	}
	for i, n := range names {
		names[i] = "[" + n + "]"
	}
	return strings.Join(names, " ")
}

func (d *PromptDetail) render(content string) string {
	if strings.TrimSpace(content) == "" {
		return d.styles.Muted.Render("(empty)")
	}
	if d.renderer == nil {
		return content
	}
	out, err := d.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

// Sections exposes the collapsible sections, mainly for tests.
func (d *PromptDetail) Sections() []Collapsible {
	return d.sections
}

func (d *PromptDetail) Cursor() int {
	return d.cursor
}

func (d *PromptDetail) SetSize(width, height int) {
	if width != d.width {
		d.width = width
		d.renderer = d.newRenderer()
		if d.prompt != nil {
			d.SetPrompt(d.prompt)
		}
	}
	d.viewport.Width = width
	d.viewport.Height = max(height-4, 1)
	d.refresh()
}

func (d *PromptDetail) Update(msg tea.Msg) (*PromptDetail, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || d.prompt == nil {
		return d, nil
	}

	switch {
	case key.Matches(keyMsg, d.keys.Back):
		return d, func() tea.Msg { return BackMsg{} }
	case key.Matches(keyMsg, d.keys.Up):
		if d.cursor > 0 {
			d.cursor--
		}
	case key.Matches(keyMsg, d.keys.Down):
		if d.cursor < len(d.sections)-1 {
			d.cursor++
		}
	case key.Matches(keyMsg, d.keys.Toggle):
		if d.cursor < len(d.sections) {
			d.sections[d.cursor].Toggle()
		}
	case key.Matches(keyMsg, d.keys.Edit), key.Matches(keyMsg, d.keys.Open):
		if d.cursor < len(d.sections) {
			p, index := d.prompt, d.prompt.Messages[d.cursor].Position
			return d, func() tea.Msg { return EditMessageMsg{Prompt: p, Index: index} }
		}
	}
	d.refresh()
	return d, nil
}

func (d *PromptDetail) refresh() {
	var b strings.Builder
	focusLine := 0
	for i, s := range d.sections {
		if i == d.cursor {
			focusLine = strings.Count(b.String(), "\n")
		}
		b.WriteString(s.View(d.styles, i == d.cursor))
		b.WriteString("\n\n")
	}
	d.viewport.SetContent(b.String())

	if focusLine < d.viewport.YOffset {
		d.viewport.SetYOffset(focusLine)
	} else if focusLine >= d.viewport.YOffset+d.viewport.Height {
		d.viewport.SetYOffset(focusLine - d.viewport.Height + 1)
	}
}

func (d *PromptDetail) ShortHelp() []key.Binding {
	return []key.Binding{d.keys.Up, d.keys.Down, d.keys.Toggle, d.keys.Edit, d.keys.Back}
}

func (d *PromptDetail) View() string {
	if d.prompt == nil {
		return ""
	}
	header := d.styles.Title.Render(d.prompt.Name)
	if d.prompt.Description != "" {
		header += "\n" + d.styles.Muted.PaddingLeft(1).Render(d.prompt.Description)
	} else {
		header += "\n"
	}
	return header + "\n\n" + d.viewport.View()
}
