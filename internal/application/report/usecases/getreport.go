package usecases

import (
	"context"
	"time"

	"github.com/civictrack/civictrack/internal/application/report/dto"
	"github.com/civictrack/civictrack/internal/domain/report"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

type GetReportQuery struct {
	ReportID string
	Actor    *authorization.Principal
}

type GetReportUseCase struct {
	reports report.Repository
	now     func() time.Time
	logger  logger.Interface
}

func NewGetReportUseCase(reports report.Repository, now func() time.Time, logger logger.Interface) *GetReportUseCase {
	return &GetReportUseCase{
		reports: reports,
		now:     now,
		logger:  logger,
	}
}

func (uc *GetReportUseCase) Execute(ctx context.Context, query GetReportQuery) (*dto.ReportDTO, error) {
	r, err := loadAccessibleReport(ctx, uc.reports, query.Actor, query.ReportID, uc.logger)
	if err != nil {
		return nil, err
	}
	return dto.ToReportDTO(r, uc.now()), nil
}
