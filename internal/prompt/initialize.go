package prompt

import (
	"fmt"

	"github.com/isaacphi/promptpad/internal/config"
	sqliteRepo "github.com/isaacphi/promptpad/internal/repository/sqlite"
)

// InitializeService opens the prompt library configured by cfg and wires the
// repositories into a Service. Callers must Close the returned service.
func InitializeService(cfg *config.ConfigSchema) (*Service, error) {
	db, err := sqliteRepo.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	svc := NewService(
		sqliteRepo.NewPromptRepository(db),
		sqliteRepo.NewExperimentRepository(db),
	)
	svc.closer = sqlDB
	return svc, nil
}
