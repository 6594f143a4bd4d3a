package components

import (
	"strings"

	"github.com/isaacphi/promptpad/internal/prompt"
	"github.com/isaacphi/promptpad/internal/tui/styles"
)

// Autocomplete is the popup listing prompt suggestions under the editor.
type Autocomplete struct {
	items  []prompt.Suggestion
	cursor int
}

func (a *Autocomplete) SetItems(items []prompt.Suggestion) {
	a.items = items
	if a.cursor >= len(items) {
		a.cursor = 0
	}
}

func (a *Autocomplete) Clear() {
	a.items = nil
	a.cursor = 0
}

func (a Autocomplete) Visible() bool {
	return len(a.items) > 0
}

func (a *Autocomplete) Next() {
	if len(a.items) > 0 {
		a.cursor = (a.cursor + 1) % len(a.items)
	}
}

func (a *Autocomplete) Prev() {
	if len(a.items) > 0 {
		a.cursor = (a.cursor - 1 + len(a.items)) % len(a.items)
	}
}

func (a Autocomplete) Selected() (prompt.Suggestion, bool) {
	if a.cursor < 0 || a.cursor >= len(a.items) {
		return prompt.Suggestion{}, false
	}
	return a.items[a.cursor], true
}

func (a Autocomplete) View(st styles.Styles) string {
	if !a.Visible() {
		return ""
	}
	var b strings.Builder
	for i, s := range a.items {
		line := highlightMatches(s.Title, s.MatchedIndexes, st)
		if s.Description != "" {
			line += " " + st.Muted.Render(s.Description)
		}
		if i == a.cursor {
			line = st.Highlight.Render("› ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(a.items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// highlightMatches styles the byte positions reported by the fuzzy matcher.
func highlightMatches(title string, matched []int, st styles.Styles) string {
	if len(matched) == 0 {
		return title
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}
	var b strings.Builder
	for i, r := range title {
		if hit[i] {
			b.WriteString(st.Highlight.Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
