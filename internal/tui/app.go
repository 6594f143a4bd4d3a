package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/isaacphi/promptpad/internal/config"
	"github.com/isaacphi/promptpad/internal/domain"
	"github.com/isaacphi/promptpad/internal/prompt"
	"github.com/isaacphi/promptpad/internal/tui/components"
	"github.com/isaacphi/promptpad/internal/tui/keys"
	"github.com/isaacphi/promptpad/internal/tui/styles"
)

// Library is the part of prompt.Service the TUI depends on.
type Library interface {
	List(ctx context.Context) ([]*domain.Prompt, error)
	Create(ctx context.Context, opts prompt.CreateOptions) (*domain.Prompt, error)
	UpdateMessage(ctx context.Context, promptID uuid.UUID, index int, content string) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddToExperiment(ctx context.Context, promptID uuid.UUID, experimentName string) (*domain.Experiment, error)
}

type AppState int

const (
	StatePromptList AppState = iota
	StatePromptDetail
)

type promptsLoadedMsg struct {
	prompts  []*domain.Prompt
	selectID uuid.UUID
}

type errMsg struct {
	err error
}

type Option func(*Model)

// WithClipboard replaces the system clipboard used by the paste binding.
func WithClipboard(c components.Clipboard) Option {
	return func(m *Model) {
		m.clipboard = c
	}
}

// WithLogger overrides slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

type Model struct {
	ctx     context.Context
	library Library
	cfg     *config.ConfigSchema
	logger  *slog.Logger

	state   AppState
	prompts []*domain.Prompt
	current *domain.Prompt

	list    *components.PromptList
	detail  *components.PromptDetail
	dialog  *components.PromptDialog
	confirm components.Confirm
	toast   components.Toast
	help    help.Model

	suggestions *prompt.SuggestionProvider
	clipboard   components.Clipboard
	saver       *saver

	keys   keys.KeyMap
	styles styles.Styles
	width  int
	height int
}

func NewModel(ctx context.Context, library Library, cfg *config.ConfigSchema, opts ...Option) Model {
	km := keys.New(cfg.KeyMap)
	st := styles.New(cfg.Theme)

	m := Model{
		ctx:         ctx,
		library:     library,
		cfg:         cfg,
		logger:      slog.Default(),
		state:       StatePromptList,
		list:        components.NewPromptList(km, st),
		detail:      components.NewPromptDetail(km, st, cfg.Editor.PreviewMarkdown),
		confirm:     components.NewConfirm(km, st),
		toast:       components.NewToast(st, cfg.Editor.ToastDuration),
		help:        help.New(),
		suggestions: prompt.NewSuggestionProvider(nil, cfg.Editor.Trigger, cfg.Editor.SuggestionLimit),
		clipboard:   components.SystemClipboard,
		saver:       newSaver(library),
		keys:        km,
		styles:      st,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run starts the full-screen TUI and blocks until it exits.
func Run(ctx context.Context, library Library, cfg *config.ConfigSchema) error {
	p := tea.NewProgram(NewModel(ctx, library, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return m.loadPrompts(uuid.Nil)
}

func (m Model) loadPrompts(selectID uuid.UUID) tea.Cmd {
	ctx, library := m.ctx, m.library
	return func() tea.Msg {
		prompts, err := library.List(ctx)
		if err != nil {
			return errMsg{err}
		}
		return promptsLoadedMsg{prompts: prompts, selectID: selectID}
	}
}

func (m Model) State() AppState {
	return m.state
}

func (m Model) Dialog() *components.PromptDialog {
	return m.dialog
}

func (m Model) Current() *domain.Prompt {
	return m.current
}

func (m Model) Toast() components.Toast {
	return m.toast
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.list.SetSize(msg.Width-4, msg.Height-4)
		m.detail.SetSize(msg.Width-4, msg.Height-4)
		if m.dialog != nil {
			m.dialog.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.confirm.Active() {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}
		if m.dialog != nil {
			var cmd tea.Cmd
			m.dialog, cmd = m.dialog.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		switch m.state {
		case StatePromptList:
			m.list, cmd = m.list.Update(msg)
		case StatePromptDetail:
			m.detail, cmd = m.detail.Update(msg)
		}
		return m, cmd

	case promptsLoadedMsg:
		m.prompts = msg.prompts
		m.suggestions.SetPrompts(msg.prompts)
		selectID := msg.selectID
		if selectID == uuid.Nil && m.current != nil {
			selectID = m.current.ID
		}
		cmds = append(cmds, m.list.SetPrompts(msg.prompts, selectID))
		cmds = append(cmds, m.syncCurrent())
		return m, tea.Batch(cmds...)

	case components.OpenPromptMsg:
		m.current = msg.Prompt
		m.list.SetCurrent(msg.Prompt.ID)
		m.detail.SetPrompt(msg.Prompt)
		m.state = StatePromptDetail
		return m, nil

	case components.BackMsg:
		m.state = StatePromptList
		return m, nil

	case components.EditMessageMsg:
		d, cmd := components.NewPromptDialog(msg.Prompt, msg.Index, components.DialogOptions{
			Keys:        m.keys,
			Styles:      m.styles,
			Trigger:     m.cfg.Editor.Trigger,
			Suggestions: m.suggestions,
			Clipboard:   m.clipboard,
		})
		if m.width > 0 {
			d.SetSize(m.width, m.height)
		}
		m.dialog = d
		return m, cmd

	case components.ContentChangedMsg:
		m.applyChange(msg)
		return m, m.saver.save(m.ctx, msg)

	case savedMsg:
		m.logger.Debug("message saved", "prompt", msg.PromptID, "field", msg.Field)
		return m, nil

	case components.DialogClosedMsg:
		m.dialog = nil
		return m, nil

	case components.NewPromptMsg:
		return m, m.createPrompt()

	case components.AddToExperimentMsg:
		return m, m.addToExperiment(msg.Prompt)

	case components.DeletePromptMsg:
		p := msg.Prompt
		m.confirm = m.confirm.Open(fmt.Sprintf("Delete prompt %q?", p.Name), m.deletePrompt(p))
		return m, nil

	case components.ShowToastMsg:
		if msg.Kind == components.ToastError {
			m.logger.Error(msg.Text)
		}
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Update(msg)
		return m, cmd

	case errMsg:
		m.logger.Error("operation failed", "error", msg.err)
		return m, components.ShowToast(msg.err.Error(), components.ToastError)
	}

	// Everything else (timers, blink, selection placement) goes to the
	// components that may be waiting for it.
	var cmd tea.Cmd
	m.toast, cmd = m.toast.Update(msg)
	cmds = append(cmds, cmd)
	if m.dialog != nil {
		m.dialog, cmd = m.dialog.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.state == StatePromptList {
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// applyChange mirrors a saved edit into the in-memory prompts so the views
// reflect it without reloading.
func (m *Model) applyChange(change components.ContentChangedMsg) {
	for _, p := range m.prompts {
		if p.ID != change.PromptID {
			continue
		}
		for i := range p.Messages {
			if p.Messages[i].Position == change.Field {
				p.Messages[i].Content = change.Value
			}
		}
		if m.current != nil && m.current.ID == p.ID {
			m.current = p
			m.detail.SetPrompt(p)
		}
	}
}

// syncCurrent points the detail view and an open dialog at the reloaded
// copy of the current prompt.
func (m *Model) syncCurrent() tea.Cmd {
	if m.current == nil {
		return nil
	}
	for _, p := range m.prompts {
		if p.ID != m.current.ID {
			continue
		}
		m.current = p
		m.detail.SetPrompt(p)
		if m.dialog != nil && m.dialog.PromptID() == p.ID {
			if msg, ok := p.Message(m.dialog.Field()); ok {
				return m.dialog.SetContent(msg.Content)
			}
		}
		return nil
	}

	// The current prompt is gone.
	m.current = nil
	m.dialog = nil
	m.state = StatePromptList
	m.list.SetCurrent(uuid.Nil)
	return nil
}

func (m Model) createPrompt() tea.Cmd {
	ctx, library := m.ctx, m.library
	name := m.untitledName()
	return func() tea.Msg {
		p, err := library.Create(ctx, prompt.CreateOptions{
			Name:     name,
			Messages: []prompt.MessageInput{{Role: domain.RoleUser, Content: "[input]"}},
		})
		if err != nil {
			return errMsg{err}
		}
		prompts, err := library.List(ctx)
		if err != nil {
			return errMsg{err}
		}
		return promptsLoadedMsg{prompts: prompts, selectID: p.ID}
	}
}

func (m Model) untitledName() string {
	taken := make(map[string]bool, len(m.prompts))
	for _, p := range m.prompts {
		taken[p.Name] = true
	}
	name := "untitled"
	for i := 2; taken[name]; i++ {
		name = fmt.Sprintf("untitled-%d", i)
	}
	return name
}

func (m Model) addToExperiment(p *domain.Prompt) tea.Cmd {
	ctx, library := m.ctx, m.library
	return func() tea.Msg {
		exp, err := library.AddToExperiment(ctx, p.ID, "")
		if err != nil {
			return errMsg{err}
		}
		return components.ShowToastMsg{
			Text: fmt.Sprintf("Added %s to experiment %s", p.Name, exp.Name),
			Kind: components.ToastSuccess,
		}
	}
}

func (m Model) deletePrompt(p *domain.Prompt) tea.Cmd {
	ctx, library := m.ctx, m.library
	return func() tea.Msg {
		if err := library.Delete(ctx, p.ID); err != nil {
			return errMsg{err}
		}
		prompts, err := library.List(ctx)
		if err != nil {
			return errMsg{err}
		}
		return tea.BatchMsg{
			func() tea.Msg { return promptsLoadedMsg{prompts: prompts} },
			components.ShowToast(fmt.Sprintf("Deleted %s", p.Name), components.ToastSuccess),
		}
	}
}

func (m Model) helpView() string {
	var bindings keys.Help
	switch {
	case m.confirm.Active():
		bindings = keys.Help{m.keys.Confirm, m.keys.Cancel}
	case m.dialog != nil:
		bindings = m.dialog.ShortHelp()
	case m.state == StatePromptDetail:
		bindings = m.detail.ShortHelp()
	default:
		bindings = m.list.ShortHelp()
	}
	return m.help.View(bindings)
}

func (m Model) View() string {
	var body string
	switch {
	case m.dialog != nil:
		body = m.dialog.View()
	case m.state == StatePromptDetail:
		body = m.detail.View()
	default:
		body = m.list.View()
	}

	if m.confirm.Active() && m.width > 0 {
		body = lipgloss.Place(m.width-4, max(m.height-6, 1), lipgloss.Center, lipgloss.Center, m.confirm.View())
	} else if m.confirm.Active() {
		body = m.confirm.View()
	}

	footer := m.helpView()
	if m.toast.Visible() {
		footer = m.toast.View() + "\n" + footer
	}
	return m.styles.Doc.Render(body + "\n" + m.styles.Footer.Render(footer))
}
