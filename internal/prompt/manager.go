package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/isaacphi/promptpad/internal/domain"
	"github.com/isaacphi/promptpad/internal/variables"
)

// Template is the flattened, fillable view of a prompt.
type Template struct {
	Name        string
	Description string
	Template    string
	Variables   []string
}

// MissingVariablesError lists the placeholders a render left unfilled.
type MissingVariablesError struct {
	Names []string
}

func (e MissingVariablesError) Error() string {
	return fmt.Sprintf("missing values for variables: %s", strings.Join(e.Names, ", "))
}

const messageSeparator = "\n\n"

// NewTemplate joins the prompt's messages in position order.
func NewTemplate(p *domain.Prompt) *Template {
	parts := make([]string, 0, len(p.Messages))
	for _, m := range p.Messages {
		parts = append(parts, m.Content)
	}
	text := strings.Join(parts, messageSeparator)

	return &Template{
		Name:        p.Name,
		Description: p.Description,
		Template:    text,
		Variables:   variables.Names(text),
	}
}

type Manager struct {
	service *Service
}

func NewManager(service *Service) *Manager {
	return &Manager{service: service}
}

// LoadTemplate resolves name (or ID) through the service.
func (m *Manager) LoadTemplate(ctx context.Context, name string) (*Template, error) {
	p, err := m.service.Find(ctx, name)
	if err != nil {
		return nil, err
	}
	return NewTemplate(p), nil
}

// RenderTemplate substitutes every placeholder that has a value. When some
// remain, the partially filled text is returned with a MissingVariablesError.
func (m *Manager) RenderTemplate(template *Template, values map[string]string) (string, error) {
	out, missing := variables.Fill(template.Template, values)
	if len(missing) > 0 {
		return out, MissingVariablesError{Names: missing}
	}
	return out, nil
}
