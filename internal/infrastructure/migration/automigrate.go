package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/civictrack/civictrack/internal/infrastructure/persistence/models"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

func AutoMigrateModels() []any {
	return models.AllModels()
}

// GormAutoMigrateStrategy derives the schema from the persistence models.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, modelList ...any) error {
	if len(modelList) == 0 {
		modelList = AutoMigrateModels()
	}
	s.logger.Infow("running gorm auto migrate", "models", len(modelList))
	if err := db.AutoMigrate(modelList...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
