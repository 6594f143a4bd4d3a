package experiment

import (
	"testing"

	"github.com/isaacphi/promptpad/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPromptNames(t *testing.T) {
	assert.Equal(t, "-", promptNames(&domain.Experiment{Name: "default"}))
	assert.Equal(t, "letter, summary", promptNames(&domain.Experiment{
		Prompts: []domain.Prompt{{Name: "letter"}, {Name: "summary"}},
	}))
}
