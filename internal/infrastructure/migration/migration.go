package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/civictrack/civictrack/internal/shared/config"
	"github.com/civictrack/civictrack/internal/shared/constants"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the strategy for the database driver: goose scripts for
// sqlite, AutoMigrate for MySQL in development and golang-migrate otherwise.
func NewManager(cfg *config.DatabaseConfig, environment string) *Manager {
	return NewManagerWithStrategy(SelectStrategy(cfg, environment))
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

func SelectStrategy(cfg *config.DatabaseConfig, environment string) Strategy {
	switch {
	case cfg.Driver == "sqlite":
		return NewGooseStrategy(Scripts, sqliteScriptsDir)
	case environment == constants.EnvDevelopment:
		return NewGormAutoMigrateStrategy()
	default:
		return NewGolangMigrateStrategy(Scripts, mysqlScriptsDir)
	}
}

// ScriptStrategy returns the versioned strategy for the driver, used by the
// migrate command regardless of environment.
func ScriptStrategy(cfg *config.DatabaseConfig) VersionedStrategy {
	if cfg.Driver == "sqlite" {
		return NewGooseStrategy(Scripts, sqliteScriptsDir)
	}
	return NewGolangMigrateStrategy(Scripts, mysqlScriptsDir)
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB, models ...any) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
