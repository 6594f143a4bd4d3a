package components

import (
	"testing"

	"github.com/google/uuid"
	"github.com/isaacphi/promptpad/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedPrompt(name string, contents ...string) *domain.Prompt {
	p := promptWith(contents...)
	p.Name = name
	return p
}

func TestPromptList(t *testing.T) {
	l := NewPromptList(testKeys(), testStyles())
	l.SetSize(60, 20)
	assert.Contains(t, l.View(), "No prompts yet. Press n to create one.")

	_, ok := l.Selected()
	assert.False(t, ok)

	a := namedPrompt("alpha", "first line\nsecond")
	b := namedPrompt("beta", "Dear [input],")
	runCmd(l.SetPrompts([]*domain.Prompt{a, b}, b.ID))

	sel, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, b.ID, sel.ID)

	l.SetCurrent(a.ID)
	view := l.View()
	assert.Contains(t, view, "● alpha")
	assert.Contains(t, view, "first line…")

	t.Run("keys emit requests for the selected prompt", func(t *testing.T) {
		_, cmd := l.Update(keyMsg("enter"))
		open, ok := find[OpenPromptMsg](runCmd(cmd))
		require.True(t, ok)
		assert.Equal(t, b, open.Prompt)

		_, cmd = l.Update(keyMsg("a"))
		add, ok := find[AddToExperimentMsg](runCmd(cmd))
		require.True(t, ok)
		assert.Equal(t, b, add.Prompt)

		_, cmd = l.Update(keyMsg("d"))
		del, ok := find[DeletePromptMsg](runCmd(cmd))
		require.True(t, ok)
		assert.Equal(t, b, del.Prompt)

		_, cmd = l.Update(keyMsg("n"))
		_, ok = find[NewPromptMsg](runCmd(cmd))
		assert.True(t, ok)
	})

	t.Run("reload keeps the selection when the prompt survives", func(t *testing.T) {
		runCmd(l.SetPrompts([]*domain.Prompt{b, a}, a.ID))
		sel, _ := l.Selected()
		assert.Equal(t, a.ID, sel.ID)

		runCmd(l.SetPrompts([]*domain.Prompt{b}, uuid.New()))
		sel, ok := l.Selected()
		require.True(t, ok)
		assert.Equal(t, b.ID, sel.ID)
	})
}

func TestPromptItemDescription(t *testing.T) {
	p := namedPrompt("x", "body")
	assert.Equal(t, "body", PromptItem{prompt: p}.Description())

	p.Description = "explicit"
	assert.Equal(t, "explicit", PromptItem{prompt: p}.Description())

	assert.Empty(t, PromptItem{prompt: &domain.Prompt{Name: "empty"}}.Description())
}

func TestPromptDetail(t *testing.T) {
	d := NewPromptDetail(testKeys(), testStyles(), false)
	d.SetSize(80, 30)
	assert.Empty(t, d.View())

	p := namedPrompt("letter", "Dear [input],", "no placeholders here")
	d.SetPrompt(p)

	sections := d.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, "#1 user", sections[0].Title)
	assert.Equal(t, "[input]", sections[0].Trigger)
	assert.Equal(t, "no variables", sections[1].Trigger)
	assert.True(t, sections[0].Open(), "short prompts start expanded")

	view := d.View()
	assert.Contains(t, view, "letter")
	assert.Contains(t, view, "Dear [input],")

	t.Run("toggle and navigate", func(t *testing.T) {
		d, _ = d.Update(keyMsg(" "))
		assert.False(t, d.Sections()[0].Open())

		d, _ = d.Update(keyMsg("down"))
		assert.Equal(t, 1, d.Cursor())
		d, _ = d.Update(keyMsg("down"))
		assert.Equal(t, 1, d.Cursor(), "cursor stops at the last section")
	})

	t.Run("reloading the same prompt keeps toggled sections", func(t *testing.T) {
		updated := *p
		updated.Messages = append([]domain.PromptMessage(nil), p.Messages...)
		updated.Messages[1].Content = "now with [name]"
		d.SetPrompt(&updated)

		assert.False(t, d.Sections()[0].Open())
		assert.Equal(t, "[name]", d.Sections()[1].Trigger)
		assert.Equal(t, 1, d.Cursor())
	})

	t.Run("edit opens the focused message", func(t *testing.T) {
		_, cmd := d.Update(keyMsg("e"))
		msg, ok := find[EditMessageMsg](runCmd(cmd))
		require.True(t, ok)
		assert.Equal(t, 1, msg.Index)
	})

	t.Run("back", func(t *testing.T) {
		_, cmd := d.Update(keyMsg("esc"))
		_, ok := find[BackMsg](runCmd(cmd))
		assert.True(t, ok)
	})

	t.Run("another prompt starts from defaults", func(t *testing.T) {
		long := namedPrompt("long", "a", "b", "c", "d")
		d.SetPrompt(long)
		assert.Equal(t, 0, d.Cursor())
		for _, s := range d.Sections() {
			assert.False(t, s.Open())
		}
	})
}
