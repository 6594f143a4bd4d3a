package domain

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// DefaultExperimentName is used when prompts are added without naming an
// experiment.
const DefaultExperimentName = "default"

type Prompt struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	Name        string          `gorm:"uniqueIndex" validate:"required,max=120"`
	Description string          `validate:"max=500"`
	Messages    []PromptMessage `gorm:"constraint:OnDelete:CASCADE" validate:"dive"`
	gorm.Model
}

// PromptMessage is one editable field of a prompt. Position orders the
// messages and is the field index used by the editor.
type PromptMessage struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	PromptID uuid.UUID `gorm:"type:uuid;index"`
	Position int
	Role     Role `gorm:"type:text" validate:"required,oneof=system user assistant"`
	Content  string
	gorm.Model
}

type Experiment struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Name    string    `gorm:"uniqueIndex" validate:"required,max=120"`
	Prompts []Prompt  `gorm:"many2many:experiment_prompts;"`
	gorm.Model
}

func (p *Prompt) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (m *PromptMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (e *Experiment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Message returns the message at position index.
func (p *Prompt) Message(index int) (*PromptMessage, bool) {
	for i := range p.Messages {
		if p.Messages[i].Position == index {
			return &p.Messages[i], true
		}
	}
	return nil, false
}
