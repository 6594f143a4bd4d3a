package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/isaacphi/promptpad/internal/domain"
	"github.com/isaacphi/promptpad/internal/repository"
	"github.com/pkg/errors"

	"gorm.io/gorm"
)

type promptRepo struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) repository.PromptRepository {
	return &promptRepo{db: db}
}

func orderedMessages(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *promptRepo) Create(ctx context.Context, prompt *domain.Prompt) error {
	if err := r.db.WithContext(ctx).Create(prompt).Error; err != nil {
		return errors.Wrapf(err, "failed to create prompt %q", prompt.Name)
	}
	return nil
}

func (r *promptRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Prompt, error) {
	var prompt domain.Prompt
	if err := r.db.WithContext(ctx).Preload("Messages", orderedMessages).First(&prompt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Kind: "prompt", Key: id.String()}
		}
		return nil, errors.Wrap(err, "failed to get prompt")
	}
	return &prompt, nil
}

func (r *promptRepo) GetByName(ctx context.Context, name string) (*domain.Prompt, error) {
	var prompt domain.Prompt
	if err := r.db.WithContext(ctx).Preload("Messages", orderedMessages).Where("name = ?", name).First(&prompt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Kind: "prompt", Key: name}
		}
		return nil, errors.Wrap(err, "failed to get prompt")
	}
	return &prompt, nil
}

func (r *promptRepo) List(ctx context.Context) ([]*domain.Prompt, error) {
	var prompts []*domain.Prompt
	if err := r.db.WithContext(ctx).Preload("Messages", orderedMessages).Order("name ASC").Find(&prompts).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list prompts")
	}
	return prompts, nil
}

func (r *promptRepo) Rename(ctx context.Context, id uuid.UUID, name string) error {
	result := r.db.WithContext(ctx).Model(&domain.Prompt{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to rename prompt")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Kind: "prompt", Key: id.String()}
	}
	return nil
}

func (r *promptRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Prompt has no back-reference to experiments, so clear the join rows directly.
		if err := tx.Exec("DELETE FROM experiment_prompts WHERE prompt_id = ?", id).Error; err != nil {
			return errors.Wrap(err, "failed to detach prompt from experiments")
		}
		if err := tx.Unscoped().Where("prompt_id = ?", id).Delete(&domain.PromptMessage{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete prompt messages")
		}
		result := tx.Unscoped().Where("id = ?", id).Delete(&domain.Prompt{})
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to delete prompt")
		}
		if result.RowsAffected == 0 {
			return domain.NotFoundError{Kind: "prompt", Key: id.String()}
		}
		return nil
	})
}

func (r *promptRepo) AddMessage(ctx context.Context, promptID uuid.UUID, msg *domain.PromptMessage) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.PromptMessage{}).Where("prompt_id = ?", promptID).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to count prompt messages")
	}
	msg.PromptID = promptID
	msg.Position = int(count)
	return errors.Wrap(r.db.WithContext(ctx).Create(msg).Error, "failed to add message")
}

func (r *promptRepo) UpdateMessageContent(ctx context.Context, promptID uuid.UUID, position int, content string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.PromptMessage{}).
		Where("prompt_id = ? AND position = ?", promptID, position).
		Update("content", content)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update message")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Kind: "message", Key: fmt.Sprintf("%s#%d", promptID, position)}
	}
	return nil
}
