package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/mappers"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/models"
	"github.com/civictrack/civictrack/internal/shared/db"
)

type EvidenceRepository struct {
	db *gorm.DB
}

func NewEvidenceRepository(gdb *gorm.DB) *EvidenceRepository {
	return &EvidenceRepository{db: gdb}
}

func (r *EvidenceRepository) Create(ctx context.Context, e *report.Evidence) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.EvidenceToModel(e)).Error; err != nil {
		return fmt.Errorf("failed to create evidence: %w", err)
	}
	return nil
}

func (r *EvidenceRepository) ListByReport(ctx context.Context, reportID string, evidenceType *vo.EvidenceType) ([]*report.Evidence, error) {
	query := db.GetTxFromContext(ctx, r.db).Where("report_id = ?", reportID)
	if evidenceType != nil {
		query = query.Where("type = ?", evidenceType.String())
	}

	var modelList []models.EvidenceModel
	if err := query.Order("created_at ASC").Order("id ASC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list evidence: %w", err)
	}

	items := make([]*report.Evidence, len(modelList))
	for i := range modelList {
		items[i] = mappers.EvidenceToDomain(&modelList[i])
	}
	return items, nil
}
