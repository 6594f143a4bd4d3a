package prompt

import (
	"testing"

	"github.com/isaacphi/promptpad/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func library() []*domain.Prompt {
	mk := func(name, body string) *domain.Prompt {
		return &domain.Prompt{
			Name:     name,
			Messages: []domain.PromptMessage{{Position: 0, Role: domain.RoleUser, Content: body}},
		}
	}
	return []*domain.Prompt{
		mk("code-review", "Review [input]"),
		mk("summarize", "Summarize [input]"),
		mk("translate", "Translate [input] to [language]"),
		{Name: "empty"},
	}
}

func TestSuggestionProvider_RequiresTrigger(t *testing.T) {
	p := NewSuggestionProvider(library(), "/", 8)
	assert.Nil(t, p.Suggest("summ"))
	assert.Nil(t, p.Suggest(" /summ"))

	disabled := NewSuggestionProvider(library(), "", 8)
	assert.Nil(t, disabled.Suggest("/summ"))
}

func TestSuggestionProvider_EmptyQueryListsLibrary(t *testing.T) {
	p := NewSuggestionProvider(library(), "/", 2)
	got := p.Suggest("/")
	require.Len(t, got, 2)
	assert.Equal(t, "code-review", got[0].Title)
	assert.Equal(t, "summarize", got[1].Title)
}

func TestSuggestionProvider_FuzzyMatch(t *testing.T) {
	p := NewSuggestionProvider(library(), "/", 8)

	got := p.Suggest("/summ")
	require.NotEmpty(t, got)
	assert.Equal(t, "summarize", got[0].Title)
	assert.Equal(t, "Summarize [input]", got[0].Value)
	assert.Equal(t, []int{0, 1, 2, 3}, got[0].MatchedIndexes)

	assert.Empty(t, p.Suggest("/zzz"))
}

func TestSuggestionProvider_PromptWithoutMessages(t *testing.T) {
	p := NewSuggestionProvider(library(), "/", 8)
	got := p.Suggest("/empty")
	require.NotEmpty(t, got)
	assert.Equal(t, "empty", got[0].Title)
	assert.Equal(t, "", got[0].Value)
}

func TestSuggestionProvider_SetPrompts(t *testing.T) {
	p := NewSuggestionProvider(nil, "/", 8)
	assert.Empty(t, p.Suggest("/"))
	p.SetPrompts(library())
	assert.Len(t, p.Suggest("/"), 4)
}
