package prompt

import (
	"strings"

	"github.com/isaacphi/promptpad/internal/domain"
	"github.com/sahilm/fuzzy"
)

// Suggestion is one entry of the autocomplete popup. Value replaces the
// whole editor buffer when the suggestion is chosen.
type Suggestion struct {
	Title          string
	Description    string
	Value          string
	MatchedIndexes []int
}

// SuggestionProvider matches the text typed after the trigger against a
// snapshot of prompt names.
type SuggestionProvider struct {
	prompts []*domain.Prompt
	trigger string
	limit   int
}

func NewSuggestionProvider(prompts []*domain.Prompt, trigger string, limit int) *SuggestionProvider {
	return &SuggestionProvider{
		prompts: prompts,
		trigger: trigger,
		limit:   limit,
	}
}

// SetPrompts replaces the snapshot, e.g. after the library was reloaded.
func (p *SuggestionProvider) SetPrompts(prompts []*domain.Prompt) {
	p.prompts = prompts
}

// Suggest returns nothing unless buffer starts with the trigger. An empty
// query lists prompts in library order.
func (p *SuggestionProvider) Suggest(buffer string) []Suggestion {
	if p.trigger == "" || !strings.HasPrefix(buffer, p.trigger) {
		return nil
	}
	query := strings.TrimSpace(strings.TrimPrefix(buffer, p.trigger))

	var out []Suggestion
	if query == "" {
		for _, pr := range p.prompts {
			out = append(out, toSuggestion(pr, nil))
			if len(out) == p.limit {
				break
			}
		}
		return out
	}

	names := make([]string, len(p.prompts))
	for i, pr := range p.prompts {
		names[i] = pr.Name
	}
	for _, match := range fuzzy.Find(query, names) {
		out = append(out, toSuggestion(p.prompts[match.Index], match.MatchedIndexes))
		if len(out) == p.limit {
			break
		}
	}
	return out
}

func toSuggestion(p *domain.Prompt, matched []int) Suggestion {
	var value string
	if msg, ok := p.Message(0); ok {
		value = msg.Content
	} else if len(p.Messages) > 0 {
		value = p.Messages[0].Content
	}
	return Suggestion{
		Title:          p.Name,
		Description:    p.Description,
		Value:          value,
		MatchedIndexes: matched,
	}
}
