// Package editor holds the state machine behind the prompt dialog: a local
// copy of the text being edited, the placeholder currently targeted for
// replacement, and the autocomplete trigger.
//
// The Editor never touches a terminal. Views read Selection after every call
// and place the cursor themselves, once the new text has been rendered.
package editor

import (
	"strings"

	"github.com/isaacphi/promptpad/internal/variables"
)

// DefaultTrigger opens the suggestion surface when the text starts with it.
const DefaultTrigger = "/"

// ChangeFunc receives the full text and the field index every time the
// editor changes the text.
type ChangeFunc func(value string, field int)

type Option func(*Editor)

// WithTrigger overrides DefaultTrigger. An empty trigger disables
// suggestions.
func WithTrigger(trigger string) Option {
	return func(e *Editor) {
		e.trigger = trigger
	}
}

type Editor struct {
	buffer    string
	external  string
	field     int
	onChange  ChangeFunc
	selection *variables.Token
	trigger   string
	suggest   bool
	closed    bool

	// generation increases on every mutation so deferred work scheduled
	// against an older buffer can be recognised and dropped.
	generation uint64
}

// New opens an editor on value and selects its first placeholder.
func New(value string, field int, onChange ChangeFunc, opts ...Option) *Editor {
	e := &Editor{
		buffer:   value,
		external: value,
		field:    field,
		onChange: onChange,
		trigger:  DefaultTrigger,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.selectFromStart()
	return e
}

func (e *Editor) Value() string {
	return e.buffer
}

func (e *Editor) Field() int {
	return e.field
}

func (e *Editor) Generation() uint64 {
	return e.generation
}

func (e *Editor) Closed() bool {
	return e.closed
}

// Selection returns the active placeholder, if any.
func (e *Editor) Selection() (variables.Token, bool) {
	if e.selection == nil {
		return variables.Token{}, false
	}
	return *e.selection, true
}

// TriggerActive reports whether the suggestion surface should be shown.
func (e *Editor) TriggerActive() bool {
	return e.suggest
}

// SelectNext rescans the current text and selects the first placeholder
// starting strictly after offset after. It reports whether one was found.
func (e *Editor) SelectNext(after int) bool {
	tok, ok := variables.Next(e.buffer, after)
	if !ok {
		e.selection = nil
		return false
	}
	e.selection = &tok
	return true
}

// Paste replaces the active placeholder with text and advances to the first
// placeholder starting strictly after start+len(text), so nothing inside the
// inserted text is ever selected. It returns false without changing anything when no placeholder is active,
// in which case the caller should apply its normal paste.
func (e *Editor) Paste(text string) bool {
	if e.closed || e.selection == nil {
		return false
	}
	tok := *e.selection
	e.commit(variables.Replace(e.buffer, tok, text))
	e.SelectNext(tok.Start + len(text))
	return true
}

// Edit records text typed directly into the view.
func (e *Editor) Edit(value string) {
	if e.closed || value == e.buffer {
		return
	}
	e.commit(value)
	e.selectFromStart()
	e.suggest = e.trigger != "" && strings.HasPrefix(value, e.trigger)
}

// SelectSuggestion replaces the whole text with value and closes the
// suggestion surface.
func (e *Editor) SelectSuggestion(value string) {
	if e.closed {
		return
	}
	e.suggest = false
	if value == e.buffer {
		return
	}
	e.commit(value)
	e.selectFromStart()
}

func (e *Editor) DismissSuggestions() {
	e.suggest = false
}

// SyncFromExternal reconciles the local text with the caller's value. Only a
// caller value that differs from the last one seen counts as a change; the
// local text is then replaced, local edits are discarded and the first
// placeholder is selected again. A new caller value equal to the local text,
// such as an echo of the editor's own change, keeps the selection. It reports
// whether the local text was reset.
func (e *Editor) SyncFromExternal(value string) bool {
	if e.closed || value == e.external {
		return false
	}
	e.external = value
	if value == e.buffer {
		return false
	}
	e.buffer = value
	e.generation++
	e.suggest = false
	e.selectFromStart()
	return true
}

// Close discards the local state. Deferred work holding an older generation
// becomes stale.
func (e *Editor) Close() {
	e.closed = true
	e.buffer = ""
	e.external = ""
	e.selection = nil
	e.suggest = false
	e.generation++
}

// commit stores value as the new text and notifies the caller synchronously.
// The selection is cleared so no stale offsets survive the mutation; callers
// recompute it right after.
func (e *Editor) commit(value string) {
	e.buffer = value
	e.selection = nil
	e.generation++
	if e.onChange != nil {
		e.onChange(value, e.field)
	}
}

func (e *Editor) selectFromStart() {
	e.SelectNext(-1)
}
