package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/civictrack/civictrack/internal/domain/report"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/mappers"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/models"
	"github.com/civictrack/civictrack/internal/shared/db"
)

// ReportEventRepository is the append-only audit log of reports.
type ReportEventRepository struct {
	db *gorm.DB
}

func NewReportEventRepository(gdb *gorm.DB) *ReportEventRepository {
	return &ReportEventRepository{db: gdb}
}

func (r *ReportEventRepository) Create(ctx context.Context, e *report.Event) error {
	model, err := mappers.EventToModel(e)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create report event: %w", err)
	}
	return nil
}

// ListByReport returns events oldest first.
func (r *ReportEventRepository) ListByReport(ctx context.Context, reportID string, page, pageSize int) ([]*report.Event, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.ReportEventModel{}).
		Where("report_id = ?", reportID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count report events: %w", err)
	}

	var modelList []models.ReportEventModel
	if err := query.
		Order("created_at ASC").
		Order("id ASC").
		Scopes(db.Paginate(page, pageSize)).
		Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list report events: %w", err)
	}

	events := make([]*report.Event, 0, len(modelList))
	for i := range modelList {
		e, err := mappers.EventToDomain(&modelList[i])
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, nil
}
