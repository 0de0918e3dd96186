package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/civictrack/civictrack/internal/shared/logger"
)

// Generator creates new golang-migrate script pairs in the source tree.
type Generator struct {
	scriptsPath string
	now         func() time.Time
	logger      logger.Interface
}

func NewGenerator(scriptsPath string, now func() time.Time) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		now:         now,
		logger:      logger.NewLogger().With("component", "migration.generator"),
	}
}

// CreateMigration writes an empty up/down pair and returns their paths.
func (g *Generator) CreateMigration(name string) (string, string, error) {
	if name == "" {
		return "", "", fmt.Errorf("migration name is required")
	}

	timestamp := g.now().Format("20060102150405")
	upFilePath := filepath.Join(g.scriptsPath, fmt.Sprintf("%s_%s.up.sql", timestamp, name))
	downFilePath := filepath.Join(g.scriptsPath, fmt.Sprintf("%s_%s.down.sql", timestamp, name))

	if err := os.MkdirAll(g.scriptsPath, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create scripts directory: %w", err)
	}

	created := g.now().Format("2006-01-02 15:04:05")
	if err := os.WriteFile(upFilePath, []byte(fmt.Sprintf("-- Migration: %s\n-- Created: %s\n\n", name, created)), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to create up migration file: %w", err)
	}
	if err := os.WriteFile(downFilePath, []byte(fmt.Sprintf("-- Rollback Migration: %s\n-- Created: %s\n\n", name, created)), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to create down migration file: %w", err)
	}

	g.logger.Infow("migration files created", "up_file", upFilePath, "down_file", downFilePath)
	return upFilePath, downFilePath, nil
}
