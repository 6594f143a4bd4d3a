package prompt

import (
	"context"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/isaacphi/promptpad/internal/domain"
	"github.com/isaacphi/promptpad/internal/repository"
)

// Service is the prompt library used by both the TUI and the CLI.
type Service struct {
	prompts     repository.PromptRepository
	experiments repository.ExperimentRepository
	validate    *validator.Validate
	closer      io.Closer
}

func NewService(prompts repository.PromptRepository, experiments repository.ExperimentRepository) *Service {
	return &Service{
		prompts:     prompts,
		experiments: experiments,
		validate:    validator.New(),
	}
}

type MessageInput struct {
	Role    domain.Role
	Content string
}

type CreateOptions struct {
	Name        string
	Description string
	// Messages defaults to a single empty user message.
	Messages []MessageInput
}

func (s *Service) List(ctx context.Context) ([]*domain.Prompt, error) {
	prompts, err := s.prompts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	return prompts, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Prompt, error) {
	return s.prompts.GetByID(ctx, id)
}

// Find resolves ref as a prompt ID first and a prompt name second.
func (s *Service) Find(ctx context.Context, ref string) (*domain.Prompt, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return s.prompts.GetByID(ctx, id)
	}
	return s.prompts.GetByName(ctx, ref)
}

func (s *Service) Create(ctx context.Context, opts CreateOptions) (*domain.Prompt, error) {
	inputs := opts.Messages
	if len(inputs) == 0 {
		inputs = []MessageInput{{Role: domain.RoleUser}}
	}

	p := &domain.Prompt{
		Name:        opts.Name,
		Description: opts.Description,
	}
	for i, in := range inputs {
		p.Messages = append(p.Messages, domain.PromptMessage{
			Position: i,
			Role:     in.Role,
			Content:  in.Content,
		})
	}

	if err := s.validate.Struct(p); err != nil {
		return nil, domain.ValidationError{Err: err}
	}
	if err := s.ensureNameFree(ctx, p.Name, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.prompts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create prompt: %w", err)
	}
	return p, nil
}

// UpdateMessage replaces the content of the message at index. It is the
// persistence side of the editor's change callback.
func (s *Service) UpdateMessage(ctx context.Context, promptID uuid.UUID, index int, content string) error {
	return s.prompts.UpdateMessageContent(ctx, promptID, index, content)
}

func (s *Service) AddMessage(ctx context.Context, promptID uuid.UUID, role domain.Role, content string) (*domain.PromptMessage, error) {
	msg := &domain.PromptMessage{Role: role, Content: content}
	if err := s.validate.Struct(msg); err != nil {
		return nil, domain.ValidationError{Err: err}
	}
	if err := s.prompts.AddMessage(ctx, promptID, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *Service) Rename(ctx context.Context, id uuid.UUID, name string) error {
	if err := s.validate.Var(name, "required,max=120"); err != nil {
		return domain.ValidationError{Err: err}
	}
	if err := s.ensureNameFree(ctx, name, id); err != nil {
		return err
	}
	return s.prompts.Rename(ctx, id, name)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.prompts.Delete(ctx, id)
}

// AddToExperiment adds the prompt to the named experiment, creating it on
// first use. An empty name selects the default experiment.
func (s *Service) AddToExperiment(ctx context.Context, promptID uuid.UUID, experimentName string) (*domain.Experiment, error) {
	if experimentName == "" {
		experimentName = domain.DefaultExperimentName
	}

	p, err := s.prompts.GetByID(ctx, promptID)
	if err != nil {
		return nil, err
	}

	exp, err := s.experiments.GetOrCreate(ctx, experimentName)
	if err != nil {
		return nil, fmt.Errorf("failed to load experiment: %w", err)
	}
	if err := s.experiments.AddPrompt(ctx, exp.ID, p); err != nil {
		return nil, fmt.Errorf("failed to add prompt to experiment: %w", err)
	}
	return exp, nil
}

func (s *Service) ListExperiments(ctx context.Context) ([]*domain.Experiment, error) {
	return s.experiments.List(ctx)
}

// Close releases the underlying database connection, if the service owns one.
func (s *Service) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// ensureNameFree fails when another prompt than self already uses name.
func (s *Service) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.prompts.GetByName(ctx, name)
	switch {
	case err == nil && existing.ID == self:
		return nil
	case err == nil:
		return domain.ValidationError{Err: fmt.Errorf("a prompt named %q already exists", name)}
	case domain.IsNotFound(err):
		return nil
	default:
		return err
	}
}
