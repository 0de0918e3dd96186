package usecases

import (
	"context"

	"github.com/civictrack/civictrack/internal/application/report/dto"
	"github.com/civictrack/civictrack/internal/domain/report"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

type ListEventsQuery struct {
	ReportID string
	Actor    *authorization.Principal
	Page     int
	PageSize int
}

type ListEventsResult struct {
	Events   []*dto.EventDTO
	Total    int64
	Page     int
	PageSize int
}

type ListEventsUseCase struct {
	reports report.Repository
	events  report.EventRepository
	logger  logger.Interface
}

func NewListEventsUseCase(reports report.Repository, events report.EventRepository, logger logger.Interface) *ListEventsUseCase {
	return &ListEventsUseCase{
		reports: reports,
		events:  events,
		logger:  logger,
	}
}

func (uc *ListEventsUseCase) Execute(ctx context.Context, query ListEventsQuery) (*ListEventsResult, error) {
	r, err := loadAccessibleReport(ctx, uc.reports, query.Actor, query.ReportID, uc.logger)
	if err != nil {
		return nil, err
	}

	p := utils.ValidatePagination(query.Page, query.PageSize)
	events, total, err := uc.events.ListByReport(ctx, r.ID(), p.Page, p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list report events", "report_id", r.ID(), "error", err)
		return nil, errors.NewInternalError("failed to list report events")
	}

	return &ListEventsResult{
		Events:   dto.ToEventDTOs(events),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}
