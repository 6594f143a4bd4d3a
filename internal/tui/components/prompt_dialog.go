package components

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/runeutil"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/isaacphi/promptpad/internal/domain"
	"github.com/isaacphi/promptpad/internal/editor"
	"github.com/isaacphi/promptpad/internal/prompt"
	"github.com/isaacphi/promptpad/internal/tui/keys"
	"github.com/isaacphi/promptpad/internal/tui/styles"
	"github.com/isaacphi/promptpad/internal/variables"
)

const (
	dialogDescription = "Variables like [input] can be replaced by pasting text."
	dialogPlaceholder = "Type '/' to search prompts..."
)

// ContentChangedMsg carries every change the editor makes to a message. The
// app persists it.
type ContentChangedMsg struct {
	PromptID uuid.UUID
	Field    int
	Value    string
}

type DialogClosedMsg struct {
	PromptID uuid.UUID
	Field    int
}

// applySelectionMsg places the cursor on the active variable. It is
// delivered after the view has rendered the new text and is ignored when
// the editor has moved on since it was scheduled.
type applySelectionMsg struct {
	generation uint64
}

type DialogOptions struct {
	Keys        keys.KeyMap
	Styles      styles.Styles
	Trigger     string
	Suggestions *prompt.SuggestionProvider
	Clipboard   Clipboard
}

// textSanitizer applies the rules textarea.InsertString applies to its
// input. Text reaches the editor only after passing through it, so editor
// offsets always index the text the textarea shows.
var textSanitizer = runeutil.NewSanitizer()

// normalizeText folds CRLF into a single newline and sanitizes the rest.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return string(textSanitizer.Sanitize([]rune(s)))
}

// popupKeys are fixed so typing letters never moves the suggestion cursor.
var popupKeys = struct {
	Up, Down, Accept, Dismiss key.Binding
}{
	Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
	Down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
	Accept:  key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter", "use prompt")),
	Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
}

// PromptDialog edits one message of a prompt. Pasting while a variable is
// active replaces that variable and moves on to the next one.
type PromptDialog struct {
	promptID uuid.UUID
	title    string

	editor       *editor.Editor
	textarea     textarea.Model
	autocomplete Autocomplete
	suggestions  *prompt.SuggestionProvider
	clipboard    Clipboard

	// pending holds change notifications produced during the current
	// Update; they are turned into messages before Update returns.
	pending []ContentChangedMsg

	keys   keys.KeyMap
	styles styles.Styles
	width  int
	height int
}

// NewPromptDialog opens the message at field of p. The returned command
// places the cursor on the first variable.
func NewPromptDialog(p *domain.Prompt, field int, opts DialogOptions) (*PromptDialog, tea.Cmd) {
	var (
		content string
		role    domain.Role
	)
	if msg, ok := p.Message(field); ok {
		content = msg.Content
		role = msg.Role
	}

	ta := textarea.New()
	ta.Placeholder = dialogPlaceholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Prompt = "┃ "
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.Cursor.SetMode(cursor.CursorStatic)
	ta.SetWidth(76)
	ta.SetHeight(10)
	ta.Focus()

	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard
	}

	d := &PromptDialog{
		promptID:    p.ID,
		title:       fmt.Sprintf("%s · #%d %s", p.Name, field+1, role),
		textarea:    ta,
		suggestions: opts.Suggestions,
		clipboard:   opts.Clipboard,
		keys:        opts.Keys,
		styles:      opts.Styles,
		width:       80,
	}
	d.textarea.SetValue(normalizeText(content))
	d.editor = editor.New(d.textarea.Value(), field, d.recordChange, editor.WithTrigger(opts.Trigger))

	return d, d.scheduleSelection()
}

func (d *PromptDialog) recordChange(value string, field int) {
	d.pending = append(d.pending, ContentChangedMsg{
		PromptID: d.promptID,
		Field:    field,
		Value:    value,
	})
}

func (d *PromptDialog) PromptID() uuid.UUID {
	return d.promptID
}

func (d *PromptDialog) Field() int {
	return d.editor.Field()
}

func (d *PromptDialog) Value() string {
	return d.editor.Value()
}

// Selection is the variable a paste would currently replace.
func (d *PromptDialog) Selection() (variables.Token, bool) {
	return d.editor.Selection()
}

func (d *PromptDialog) SuggestionsVisible() bool {
	return d.autocomplete.Visible()
}

// CursorPosition reports the textarea cursor as a row and rune column.
func (d *PromptDialog) CursorPosition() (row, col int) {
	info := d.textarea.LineInfo()
	return d.textarea.Line(), info.StartColumn + info.ColumnOffset
}

func (d *PromptDialog) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.textarea.SetWidth(max(width-8, 20))
	d.textarea.SetHeight(max(height-14, 3))
}

// SetContent reconciles the dialog with a value that changed outside it.
// Local edits are discarded when the values differ.
func (d *PromptDialog) SetContent(value string) tea.Cmd {
	if !d.editor.SyncFromExternal(normalizeText(value)) {
		return nil
	}
	d.textarea.SetValue(d.editor.Value())
	d.autocomplete.Clear()
	return d.scheduleSelection()
}

func (d *PromptDialog) scheduleSelection() tea.Cmd {
	gen := d.editor.Generation()
	return func() tea.Msg {
		return applySelectionMsg{generation: gen}
	}
}

func (d *PromptDialog) Update(msg tea.Msg) (*PromptDialog, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case applySelectionMsg:
		if d.editor.Closed() || msg.generation != d.editor.Generation() {
			return d, nil
		}
		if tok, ok := d.editor.Selection(); ok {
			d.placeCursor(tok.Start)
		}
		return d, nil

	case tea.KeyMsg:
		if d.autocomplete.Visible() {
			if handled, cmd := d.updateSuggestions(msg); handled {
				return d, tea.Batch(cmd, d.flush())
			}
		}

		switch {
		case msg.Paste:
			cmds = append(cmds, d.paste(string(msg.Runes)))
		case key.Matches(msg, d.keys.Close):
			return d, tea.Batch(d.flush(), d.close())
		case key.Matches(msg, d.keys.Paste):
			// An unreadable clipboard pastes nothing, which still consumes
			// the active variable.
			text, err := d.clipboard.ReadText()
			if err != nil {
				slog.Debug("Clipboard read failed, pasting empty text", "error", err)
				text = ""
			}
			cmds = append(cmds, d.paste(text))
		case key.Matches(msg, d.keys.NextVariable):
			after := -1
			if tok, ok := d.editor.Selection(); ok {
				after = tok.Start
			}
			if !d.editor.SelectNext(after) {
				d.editor.SelectNext(-1)
			}
			if tok, ok := d.editor.Selection(); ok {
				d.placeCursor(tok.Start)
			}
		default:
			var cmd tea.Cmd
			d.textarea, cmd = d.textarea.Update(msg)
			cmds = append(cmds, cmd)
			if v := d.textarea.Value(); v != d.editor.Value() {
				d.editor.Edit(v)
				d.refreshSuggestions()
			}
		}

	default:
		var cmd tea.Cmd
		d.textarea, cmd = d.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, d.flush())
	return d, tea.Batch(cmds...)
}

// paste hands text to the editor and falls back to a plain insert when no
// variable is active.
func (d *PromptDialog) paste(text string) tea.Cmd {
	text = normalizeText(text)
	if d.editor.Paste(text) {
		d.textarea.SetValue(d.editor.Value())
		d.autocomplete.Clear()
		return d.scheduleSelection()
	}
	d.textarea.InsertString(text)
	d.editor.Edit(d.textarea.Value())
	d.refreshSuggestions()
	return nil
}

func (d *PromptDialog) updateSuggestions(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, popupKeys.Up):
		d.autocomplete.Prev()
	case key.Matches(msg, popupKeys.Down):
		d.autocomplete.Next()
	case key.Matches(msg, popupKeys.Accept):
		s, ok := d.autocomplete.Selected()
		if !ok {
			return false, nil
		}
		d.editor.SelectSuggestion(normalizeText(s.Value))
		d.textarea.SetValue(d.editor.Value())
		d.autocomplete.Clear()
		return true, d.scheduleSelection()
	case key.Matches(msg, popupKeys.Dismiss):
		d.editor.DismissSuggestions()
		d.autocomplete.Clear()
	default:
		return false, nil
	}
	return true, nil
}

func (d *PromptDialog) refreshSuggestions() {
	if !d.editor.TriggerActive() || d.suggestions == nil {
		d.autocomplete.Clear()
		return
	}
	d.autocomplete.SetItems(d.suggestions.Suggest(d.editor.Value()))
}

func (d *PromptDialog) close() tea.Cmd {
	field := d.editor.Field()
	d.editor.Close()
	d.autocomplete.Clear()
	d.textarea.Blur()
	id := d.promptID
	return func() tea.Msg {
		return DialogClosedMsg{PromptID: id, Field: field}
	}
}

// flush turns the notifications recorded during this Update into commands,
// preserving their order.
func (d *PromptDialog) flush() tea.Cmd {
	if len(d.pending) == 0 {
		return nil
	}
	pending := d.pending
	d.pending = nil

	cmds := make([]tea.Cmd, len(pending))
	for i, msg := range pending {
		cmds[i] = func() tea.Msg { return msg }
	}
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Sequence(cmds...)
}

// placeCursor moves the textarea cursor to the byte offset in the current
// value, converting it to a logical row and a rune column.
func (d *PromptDialog) placeCursor(offset int) {
	value := d.textarea.Value()
	offset = min(max(offset, 0), len(value))

	row := strings.Count(value[:offset], "\n")
	lineStart := strings.LastIndexByte(value[:offset], '\n') + 1
	col := utf8.RuneCountInString(value[lineStart:offset])

	// Soft-wrapped rows take several moves, so bound the loops by the
	// number of characters rather than the number of rows.
	for i := 0; d.textarea.Line() > row && i <= len(value); i++ {
		d.textarea.CursorUp()
	}
	for i := 0; d.textarea.Line() < row && i <= len(value); i++ {
		d.textarea.CursorDown()
	}
	d.textarea.SetCursor(col)
}

func (d *PromptDialog) ShortHelp() []key.Binding {
	if d.autocomplete.Visible() {
		return []key.Binding{popupKeys.Up, popupKeys.Down, popupKeys.Accept, popupKeys.Dismiss}
	}
	return []key.Binding{d.keys.Paste, d.keys.NextVariable, d.keys.Close}
}

func (d *PromptDialog) status() string {
	tok, ok := d.editor.Selection()
	if !ok {
		if len(variables.All(d.editor.Value())) == 0 {
			return d.styles.Muted.Render("No variables")
		}
		return d.styles.Muted.Render("No variable selected")
	}
	return "Paste replaces " + d.styles.Variable.Render(tok.Text)
}

func (d *PromptDialog) View() string {
	parts := []string{
		d.styles.Title.Render(d.title),
		d.styles.Muted.Render(dialogDescription),
		"",
		d.textarea.View(),
	}
	if d.autocomplete.Visible() {
		parts = append(parts, "", d.autocomplete.View(d.styles))
	}
	parts = append(parts, "", d.status(), d.styles.Muted.Render("Changes are saved automatically."))
	return d.styles.Dialog.Width(max(d.width-4, 20)).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
