package sqlite

import (
	"context"

	"github.com/google/uuid"
	"github.com/isaacphi/promptpad/internal/domain"
	"github.com/isaacphi/promptpad/internal/repository"
	"github.com/pkg/errors"

	"gorm.io/gorm"
)

type experimentRepo struct {
	db *gorm.DB
}

func NewExperimentRepository(db *gorm.DB) repository.ExperimentRepository {
	return &experimentRepo{db: db}
}

func (r *experimentRepo) GetOrCreate(ctx context.Context, name string) (*domain.Experiment, error) {
	var experiment domain.Experiment
	err := r.db.WithContext(ctx).
		Preload("Prompts").
		Where(domain.Experiment{Name: name}).
		FirstOrCreate(&experiment).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get experiment %q", name)
	}
	return &experiment, nil
}

func (r *experimentRepo) List(ctx context.Context) ([]*domain.Experiment, error) {
	var experiments []*domain.Experiment
	if err := r.db.WithContext(ctx).Preload("Prompts").Order("name ASC").Find(&experiments).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list experiments")
	}
	return experiments, nil
}

func (r *experimentRepo) AddPrompt(ctx context.Context, experimentID uuid.UUID, prompt *domain.Prompt) error {
	experiment := domain.Experiment{ID: experimentID}
	if err := r.db.WithContext(ctx).Model(&experiment).Association("Prompts").Append(prompt); err != nil {
		return errors.Wrap(err, "failed to add prompt to experiment")
	}
	return nil
}
