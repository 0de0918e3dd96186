package usecases

import (
	"context"

	"github.com/civictrack/civictrack/internal/application/report/dto"
	"github.com/civictrack/civictrack/internal/domain/report"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

type GetReportStatsQuery struct {
	Actor *authorization.Principal
}

type GetReportStatsUseCase struct {
	reports     report.Repository
	permissions authorization.PermissionChecker
	logger      logger.Interface
}

func NewGetReportStatsUseCase(reports report.Repository, permissions authorization.PermissionChecker, logger logger.Interface) *GetReportStatsUseCase {
	return &GetReportStatsUseCase{
		reports:     reports,
		permissions: permissions,
		logger:      logger,
	}
}

func (uc *GetReportStatsUseCase) Execute(ctx context.Context, query GetReportStatsQuery) (*dto.StatsDTO, error) {
	if err := requirePermission(uc.permissions, query.Actor, authorization.ActionStats, uc.logger); err != nil {
		return nil, err
	}
	stats, err := uc.reports.Stats(ctx)
	if err != nil {
		uc.logger.Errorw("failed to compute report stats", "error", err)
		return nil, errors.NewInternalError("failed to compute report stats")
	}
	return dto.ToStatsDTO(stats), nil
}
