package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/isaacphi/promptpad/internal/domain"
)

type PromptRepository interface {
	Create(ctx context.Context, prompt *domain.Prompt) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Prompt, error)
	GetByName(ctx context.Context, name string) (*domain.Prompt, error)
	List(ctx context.Context) ([]*domain.Prompt, error)
	Rename(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Messages
	AddMessage(ctx context.Context, promptID uuid.UUID, msg *domain.PromptMessage) error
	UpdateMessageContent(ctx context.Context, promptID uuid.UUID, position int, content string) error
}
