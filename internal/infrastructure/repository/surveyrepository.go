package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/civictrack/civictrack/internal/domain/report"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/mappers"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/models"
	"github.com/civictrack/civictrack/internal/shared/db"
)

type SurveyRepository struct {
	db *gorm.DB
}

func NewSurveyRepository(gdb *gorm.DB) *SurveyRepository {
	return &SurveyRepository{db: gdb}
}

// Create fails with a duplicate-key error when the report already has a survey.
func (r *SurveyRepository) Create(ctx context.Context, s *report.Survey) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.SurveyToModel(s)).Error; err != nil {
		return fmt.Errorf("failed to create survey: %w", err)
	}
	return nil
}

// Update stores the answer. Only an unsubmitted row is written, so a racing
// second submission gets ErrSurveyAlreadySubmitted.
func (r *SurveyRepository) Update(ctx context.Context, s *report.Survey) error {
	model := mappers.SurveyToModel(s)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SurveyModel{}).
		Where("id = ? AND submitted_at IS NULL", model.ID).
		Updates(map[string]any{
			"rating":       model.Rating,
			"comment":      model.Comment,
			"submitted_at": model.SubmittedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update survey: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return report.ErrSurveyAlreadySubmitted
	}
	return nil
}

func (r *SurveyRepository) GetByReportID(ctx context.Context, reportID string) (*report.Survey, error) {
	return r.findOne(ctx, "report_id = ?", reportID)
}

func (r *SurveyRepository) GetByToken(ctx context.Context, token string) (*report.Survey, error) {
	return r.findOne(ctx, "token = ?", token)
}

func (r *SurveyRepository) findOne(ctx context.Context, cond string, arg any) (*report.Survey, error) {
	var model models.SurveyModel
	err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}
	return mappers.SurveyToDomain(&model), nil
}
