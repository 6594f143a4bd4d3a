package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/isaacphi/promptpad/internal/domain"
	"github.com/isaacphi/promptpad/internal/prompt"
	"github.com/isaacphi/promptpad/internal/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptWith(contents ...string) *domain.Prompt {
	p := &domain.Prompt{ID: uuid.New(), Name: "letter"}
	for i, c := range contents {
		p.Messages = append(p.Messages, domain.PromptMessage{Position: i, Role: domain.RoleUser, Content: c})
	}
	return p
}

type dialogHarness struct {
	t      *testing.T
	dialog *PromptDialog
	msgs   []tea.Msg
}

func openDialog(t *testing.T, p *domain.Prompt, field int, opts DialogOptions) *dialogHarness {
	t.Helper()
	opts.Keys = testKeys()
	opts.Styles = testStyles()
	if opts.Trigger == "" {
		opts.Trigger = "/"
	}
	if opts.Clipboard == nil {
		opts.Clipboard = fakeClipboard{err: errNoClipboard}
	}
	d, cmd := NewPromptDialog(p, field, opts)
	h := &dialogHarness{t: t, dialog: d}
	h.deliver(runCmd(cmd))
	return h
}

// send updates the dialog with msg and feeds back any applySelectionMsg it
// schedules, the way the runtime would after rendering.
func (h *dialogHarness) send(msg tea.Msg) []tea.Msg {
	var cmd tea.Cmd
	h.dialog, cmd = h.dialog.Update(msg)
	out := runCmd(cmd)
	h.deliver(out)
	return out
}

func (h *dialogHarness) deliver(msgs []tea.Msg) {
	for _, m := range msgs {
		h.msgs = append(h.msgs, m)
		if sel, ok := m.(applySelectionMsg); ok {
			h.dialog, _ = h.dialog.Update(sel)
		}
	}
}

func changes(msgs []tea.Msg) []ContentChangedMsg {
	var out []ContentChangedMsg
	for _, m := range msgs {
		if c, ok := m.(ContentChangedMsg); ok {
			out = append(out, c)
		}
	}
	return out
}

func TestPromptDialog_OpenSelectsFirstVariable(t *testing.T) {
	h := openDialog(t, promptWith("Dear [input],"), 0, DialogOptions{})

	tok, ok := h.dialog.Selection()
	require.True(t, ok)
	assert.Equal(t, variables.Token{Start: 5, End: 12, Text: "[input]"}, tok)

	row, col := h.dialog.CursorPosition()
	assert.Equal(t, 0, row)
	assert.Equal(t, 5, col)
	assert.Contains(t, h.dialog.View(), "Variables like [input] can be replaced by pasting text.")
}

func TestPromptDialog_OpenWithoutVariables(t *testing.T) {
	h := openDialog(t, promptWith("plain text"), 0, DialogOptions{})

	_, ok := h.dialog.Selection()
	assert.False(t, ok)
	row, col := h.dialog.CursorPosition()
	assert.Equal(t, 0, row)
	assert.Equal(t, len("plain text"), col, "cursor stays at the end")
	assert.Contains(t, h.dialog.View(), "No variables")
}

func TestPromptDialog_PasteReplacesVariable(t *testing.T) {
	p := promptWith("Hi", "Dear [input],")
	h := openDialog(t, p, 1, DialogOptions{})

	out := h.send(pasteMsg("Alice"))

	assert.Equal(t, "Dear Alice,", h.dialog.Value())
	assert.Equal(t, []ContentChangedMsg{{PromptID: p.ID, Field: 1, Value: "Dear Alice,"}}, changes(out))
	_, ok := h.dialog.Selection()
	assert.False(t, ok)
}

func TestPromptDialog_PasteAdvancesToNextVariable(t *testing.T) {
	h := openDialog(t, promptWith("[a] and [b]"), 0, DialogOptions{})

	h.send(pasteMsg("X"))

	assert.Equal(t, "X and [b]", h.dialog.Value())
	tok, ok := h.dialog.Selection()
	require.True(t, ok)
	assert.Equal(t, variables.Token{Start: 6, End: 9, Text: "[b]"}, tok)

	_, col := h.dialog.CursorPosition()
	assert.Equal(t, 6, col)
}

func TestPromptDialog_PasteOnLaterLine(t *testing.T) {
	h := openDialog(t, promptWith("[greeting]\nSigned, [name]"), 0, DialogOptions{})

	h.send(pasteMsg("Héllo"))

	tok, ok := h.dialog.Selection()
	require.True(t, ok)
	assert.Equal(t, "[name]", tok.Text)
	row, col := h.dialog.CursorPosition()
	assert.Equal(t, 1, row)
	assert.Equal(t, len("Signed, "), col)
}

func TestPromptDialog_PasteWithoutVariableInserts(t *testing.T) {
	p := promptWith("abc")
	h := openDialog(t, p, 0, DialogOptions{})

	out := h.send(pasteMsg("XYZ"))

	assert.Equal(t, "abcXYZ", h.dialog.Value())
	assert.Equal(t, []ContentChangedMsg{{PromptID: p.ID, Field: 0, Value: "abcXYZ"}}, changes(out))
}

func TestPromptDialog_ClipboardPaste(t *testing.T) {
	h := openDialog(t, promptWith("Dear [input],"), 0, DialogOptions{Clipboard: fakeClipboard{text: "Bob"}})
	h.send(keyMsg("ctrl+v"))
	assert.Equal(t, "Dear Bob,", h.dialog.Value())
}

func TestPromptDialog_ClipboardFailurePastesEmptyText(t *testing.T) {
	p := promptWith("Dear [input],")
	h := openDialog(t, p, 0, DialogOptions{})

	out := h.send(keyMsg("ctrl+v"))

	assert.Equal(t, "Dear ,", h.dialog.Value(), "the variable is consumed")
	assert.Equal(t, []ContentChangedMsg{{PromptID: p.ID, Field: 0, Value: "Dear ,"}}, changes(out))
	_, ok := find[ShowToastMsg](out)
	assert.False(t, ok, "an empty clipboard is not an error")
}

func TestPromptDialog_EmptyClipboardAdvances(t *testing.T) {
	h := openDialog(t, promptWith("[a] and [b]"), 0, DialogOptions{Clipboard: fakeClipboard{}})

	h.send(keyMsg("ctrl+v"))

	assert.Equal(t, " and [b]", h.dialog.Value())
	tok, ok := h.dialog.Selection()
	require.True(t, ok)
	assert.Equal(t, "[b]", tok.Text)
}

func TestPromptDialog_TextMatchesTextarea(t *testing.T) {
	tests := []struct {
		name    string
		content string
		paste   string
		value   string
		col     int
	}{
		{name: "tabs", content: "[a]\t[b]", paste: "x\ty", value: "x    y    [b]", col: 10},
		{name: "crlf", content: "[a]\r\n[b]", paste: "x\r\ny", value: "x\ny\n[b]", col: 0},
		{name: "control characters", content: "[a] [b]", paste: "x\x00y", value: "xy [b]", col: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := promptWith(tt.content)
			h := openDialog(t, p, 0, DialogOptions{})

			out := h.send(pasteMsg(tt.paste))

			assert.Equal(t, tt.value, h.dialog.Value())
			assert.Equal(t, tt.value, h.dialog.textarea.Value())
			assert.Equal(t, []ContentChangedMsg{{PromptID: p.ID, Field: 0, Value: tt.value}}, changes(out))
			tok, ok := h.dialog.Selection()
			require.True(t, ok)
			assert.Equal(t, tt.value[tok.Start:tok.End], "[b]")
			_, col := h.dialog.CursorPosition()
			assert.Equal(t, tt.col, col)

			out = h.send(keyMsg("right"))
			assert.Empty(t, changes(out), "moving the cursor is not an edit")
		})
	}
}

func TestPromptDialog_OpenWithTabsDoesNotSave(t *testing.T) {
	h := openDialog(t, promptWith("a\tb [c]"), 0, DialogOptions{})

	assert.Equal(t, "a    b [c]", h.dialog.Value())
	out := h.send(keyMsg("right"))
	assert.Empty(t, changes(out))
	assert.Nil(t, h.dialog.SetContent("a\tb [c]"), "the stored value is unchanged")
}

func TestPromptDialog_TypingNotifiesAndKeepsCursor(t *testing.T) {
	p := promptWith("[a]")
	h := openDialog(t, p, 0, DialogOptions{})

	out := h.send(keyMsg("x"))

	assert.Equal(t, "x[a]", h.dialog.Value())
	assert.Equal(t, []ContentChangedMsg{{PromptID: p.ID, Field: 0, Value: "x[a]"}}, changes(out))
	tok, ok := h.dialog.Selection()
	require.True(t, ok)
	assert.Equal(t, 1, tok.Start)
	_, col := h.dialog.CursorPosition()
	assert.Equal(t, 1, col, "typing does not move the cursor to the variable")
}

func TestPromptDialog_StaleSelectionIsDropped(t *testing.T) {
	p := promptWith("abc [x]")
	d, openCmd := NewPromptDialog(p, 0, DialogOptions{Keys: testKeys(), Styles: testStyles(), Trigger: "/"})
	stale := runCmd(openCmd)
	require.Len(t, stale, 1)

	d, _ = d.Update(keyMsg("!"))
	_, colBefore := d.CursorPosition()

	d, _ = d.Update(stale[0])
	_, colAfter := d.CursorPosition()
	assert.Equal(t, colBefore, colAfter)
	assert.Equal(t, len("abc [x]!"), colAfter)
}

func TestPromptDialog_CloseDropsPendingSelection(t *testing.T) {
	p := promptWith("abc [x]")
	d, openCmd := NewPromptDialog(p, 0, DialogOptions{Keys: testKeys(), Styles: testStyles(), Trigger: "/"})
	pending := runCmd(openCmd)

	d, cmd := d.Update(keyMsg("ctrl+s"))
	closed, ok := find[DialogClosedMsg](runCmd(cmd))
	require.True(t, ok)
	assert.Equal(t, DialogClosedMsg{PromptID: p.ID, Field: 0}, closed)

	d, cmd = d.Update(pending[0])
	assert.Nil(t, cmd)
	_, ok = d.Selection()
	assert.False(t, ok)

	d, cmd = d.Update(pasteMsg("late"))
	assert.Empty(t, changes(runCmd(cmd)), "a closed dialog does not notify")
}

func TestPromptDialog_NextVariableCycles(t *testing.T) {
	h := openDialog(t, promptWith("[a] [b]"), 0, DialogOptions{})

	h.send(keyMsg("ctrl+n"))
	tok, _ := h.dialog.Selection()
	assert.Equal(t, "[b]", tok.Text)
	_, col := h.dialog.CursorPosition()
	assert.Equal(t, 4, col)

	h.send(keyMsg("tab"))
	tok, _ = h.dialog.Selection()
	assert.Equal(t, "[a]", tok.Text)
}

func TestPromptDialog_SuggestionsReplaceBuffer(t *testing.T) {
	lib := []*domain.Prompt{
		promptWith("Summarize [input]"),
		promptWith("Translate [input]"),
	}
	lib[0].Name = "summarize"
	lib[1].Name = "translate"
	sp := prompt.NewSuggestionProvider(lib, "/", 8)

	p := promptWith("")
	h := openDialog(t, p, 0, DialogOptions{Suggestions: sp})

	h.send(keyMsg("/"))
	require.True(t, h.dialog.SuggestionsVisible())
	h.send(keyMsg("s"))
	h.send(keyMsg("u"))
	require.True(t, h.dialog.SuggestionsVisible())

	out := h.send(keyMsg("enter"))

	assert.False(t, h.dialog.SuggestionsVisible())
	assert.Equal(t, "Summarize [input]", h.dialog.Value())
	assert.Equal(t, []ContentChangedMsg{{PromptID: p.ID, Field: 0, Value: "Summarize [input]"}}, changes(out))
	tok, ok := h.dialog.Selection()
	require.True(t, ok)
	assert.Equal(t, 10, tok.Start)
	_, col := h.dialog.CursorPosition()
	assert.Equal(t, 10, col)
}

func TestPromptDialog_DismissSuggestions(t *testing.T) {
	sp := prompt.NewSuggestionProvider([]*domain.Prompt{{Name: "summarize"}}, "/", 8)
	h := openDialog(t, promptWith(""), 0, DialogOptions{Suggestions: sp})

	h.send(keyMsg("/"))
	require.True(t, h.dialog.SuggestionsVisible())

	out := h.send(keyMsg("esc"))
	assert.False(t, h.dialog.SuggestionsVisible())
	_, closed := find[DialogClosedMsg](out)
	assert.False(t, closed, "esc dismisses the popup before closing the dialog")
	assert.Equal(t, "/", h.dialog.Value())
}

func TestPromptDialog_TriggerOnlyAtStart(t *testing.T) {
	sp := prompt.NewSuggestionProvider([]*domain.Prompt{{Name: "summarize"}}, "/", 8)
	h := openDialog(t, promptWith("a"), 0, DialogOptions{Suggestions: sp})

	h.send(keyMsg("/"))
	assert.Equal(t, "a/", h.dialog.Value())
	assert.False(t, h.dialog.SuggestionsVisible())
}

func TestPromptDialog_SetContent(t *testing.T) {
	h := openDialog(t, promptWith("[a] [b]"), 0, DialogOptions{})
	h.send(pasteMsg("X"))
	require.Equal(t, "X [b]", h.dialog.Value())

	assert.Nil(t, h.dialog.SetContent("X [b]"), "an echo of the dialog's own change is ignored")

	cmd := h.dialog.SetContent("[c] reset")
	require.NotNil(t, cmd)
	h.deliver(runCmd(cmd))
	assert.Equal(t, "[c] reset", h.dialog.Value())
	tok, ok := h.dialog.Selection()
	require.True(t, ok)
	assert.Equal(t, "[c]", tok.Text)
	_, col := h.dialog.CursorPosition()
	assert.Equal(t, 0, col)
}
