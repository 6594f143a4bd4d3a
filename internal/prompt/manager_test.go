package prompt

import (
	"context"
	"testing"

	"github.com/isaacphi/promptpad/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemplate(t *testing.T) {
	p := &domain.Prompt{
		Name:        "review",
		Description: "Code review",
		Messages: []domain.PromptMessage{
			{Position: 0, Role: domain.RoleSystem, Content: "You review [language] code."},
			{Position: 1, Role: domain.RoleUser, Content: "Review [input] in [language]."},
		},
	}

	tmpl := NewTemplate(p)
	assert.Equal(t, "review", tmpl.Name)
	assert.Equal(t, "Code review", tmpl.Description)
	assert.Equal(t, "You review [language] code.\n\nReview [input] in [language].", tmpl.Template)
	assert.Equal(t, []string{"language", "input"}, tmpl.Variables)
}

func TestManager_RenderTemplate(t *testing.T) {
	m := NewManager(nil)
	tmpl := &Template{Template: "Dear [name], your [role] awaits"}

	out, err := m.RenderTemplate(tmpl, map[string]string{"name": "Alice", "role": "seat"})
	require.NoError(t, err)
	assert.Equal(t, "Dear Alice, your seat awaits", out)

	out, err = m.RenderTemplate(tmpl, map[string]string{"name": "Alice"})
	var missing MissingVariablesError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"role"}, missing.Names)
	assert.Equal(t, "Dear Alice, your [role] awaits", out)
	assert.EqualError(t, err, "missing values for variables: role")
}

func TestManager_LoadTemplate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, CreateOptions{
		Name:     "letter",
		Messages: []MessageInput{{Role: domain.RoleUser, Content: "Dear [input],"}},
	})
	require.NoError(t, err)

	m := NewManager(svc)
	tmpl, err := m.LoadTemplate(ctx, "letter")
	require.NoError(t, err)
	assert.Equal(t, []string{"input"}, tmpl.Variables)

	_, err = m.LoadTemplate(ctx, "absent")
	assert.True(t, domain.IsNotFound(err))
}
