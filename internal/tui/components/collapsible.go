package components

import (
	"strings"

	"github.com/isaacphi/promptpad/internal/tui/styles"
)

// Collapsible is a titled section whose body can be expanded or hidden.
type Collapsible struct {
	Title   string
	Trigger string
	Content string

	open        bool
	defaultOpen bool
}

func NewCollapsible(title, trigger, content string, defaultOpen bool) Collapsible {
	return Collapsible{
		Title:       title,
		Trigger:     trigger,
		Content:     content,
		open:        defaultOpen,
		defaultOpen: defaultOpen,
	}
}

func (c Collapsible) Open() bool {
	return c.open
}

func (c *Collapsible) Toggle() {
	c.open = !c.open
}

// SetDefaultOpen re-syncs the open state, but only when the default
// actually changes. A toggled section keeps its state otherwise.
func (c *Collapsible) SetDefaultOpen(v bool) {
	if v == c.defaultOpen {
		return
	}
	c.defaultOpen = v
	c.open = v
}

func (c Collapsible) View(st styles.Styles, focused bool) string {
	marker := "▸"
	if c.open {
		marker = "▾"
	}

	header := marker + " " + c.Title
	if focused {
		header = st.Highlight.Render(header)
	}
	if c.Trigger != "" {
		header += "  " + st.Muted.Render(c.Trigger)
	}
	if !c.open {
		return header
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(st.Section.Render(strings.TrimRight(c.Content, "\n")))
	return b.String()
}
