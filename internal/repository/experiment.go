package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/isaacphi/promptpad/internal/domain"
)

type ExperimentRepository interface {
	GetOrCreate(ctx context.Context, name string) (*domain.Experiment, error)
	List(ctx context.Context) ([]*domain.Experiment, error)
	AddPrompt(ctx context.Context, experimentID uuid.UUID, prompt *domain.Prompt) error
}
