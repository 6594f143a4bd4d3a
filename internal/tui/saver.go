package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/isaacphi/promptpad/internal/tui/components"
)

type savedMsg struct {
	PromptID uuid.UUID
	Field    int
}

type fieldKey struct {
	promptID uuid.UUID
	field    int
}

// saver persists editor changes off the update loop. Commands may run in any
// order, so each write carries a sequence number and a write older than the
// last one applied to the same field is skipped.
type saver struct {
	library Library

	mu      sync.Mutex
	seq     uint64
	applied map[fieldKey]uint64
}

func newSaver(library Library) *saver {
	return &saver{
		library: library,
		applied: make(map[fieldKey]uint64),
	}
}

func (s *saver) save(ctx context.Context, change components.ContentChangedMsg) tea.Cmd {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	k := fieldKey{promptID: change.PromptID, field: change.Field}
	return func() tea.Msg {
		s.mu.Lock()
		defer s.mu.Unlock()

		if seq < s.applied[k] {
			return nil
		}
		s.applied[k] = seq

		if err := s.library.UpdateMessage(ctx, change.PromptID, change.Field, change.Value); err != nil {
			return components.ShowToastMsg{Text: fmt.Sprintf("Failed to save: %v", err), Kind: components.ToastError}
		}
		return savedMsg{PromptID: change.PromptID, Field: change.Field}
	}
}
