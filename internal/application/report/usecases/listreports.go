package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/civictrack/civictrack/internal/application/report/dto"
	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

// ListReportsQuery lists reports. With Mine set the caller's own reports are
// returned and the staff permission is not required.
type ListReportsQuery struct {
	Actor      *authorization.Principal
	Mine       bool
	Status     string
	Category   string
	District   string
	AssigneeID string
	Priority   string
	Page       int
	PageSize   int
}

type ListReportsResult struct {
	Reports  []*dto.ReportListItemDTO
	Total    int64
	Page     int
	PageSize int
}

type ListReportsUseCase struct {
	reports     report.Repository
	permissions authorization.PermissionChecker
	now         func() time.Time
	logger      logger.Interface
}

func NewListReportsUseCase(
	reports report.Repository,
	permissions authorization.PermissionChecker,
	now func() time.Time,
	logger logger.Interface,
) *ListReportsUseCase {
	return &ListReportsUseCase{
		reports:     reports,
		permissions: permissions,
		now:         now,
		logger:      logger,
	}
}

func (uc *ListReportsUseCase) Execute(ctx context.Context, query ListReportsQuery) (*ListReportsResult, error) {
	if query.Mine {
		if query.Actor == nil {
			return nil, errors.NewUnauthorizedError("authentication required")
		}
	} else if err := requirePermission(uc.permissions, query.Actor, authorization.ActionList, uc.logger); err != nil {
		return nil, err
	}

	filter, err := uc.buildFilter(query)
	if err != nil {
		return nil, err
	}

	reports, total, err := uc.reports.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list reports", "error", err)
		return nil, errors.NewInternalError("failed to list reports")
	}

	return &ListReportsResult{
		Reports:  dto.ToReportListItemDTOs(reports, uc.now()),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (uc *ListReportsUseCase) buildFilter(query ListReportsQuery) (report.ListFilter, error) {
	p := utils.ValidatePagination(query.Page, query.PageSize)
	filter := report.ListFilter{Page: p.Page, PageSize: p.PageSize}

	if query.Mine {
		filter.ReporterID = &query.Actor.AccountID
	}
	if s := strings.TrimSpace(query.Status); s != "" {
		status, err := vo.NewReportStatus(strings.ToUpper(s))
		if err != nil {
			return filter, errors.NewValidationError("invalid status filter", s)
		}
		filter.Status = &status
	}
	if c := strings.TrimSpace(query.Category); c != "" {
		category, err := vo.NewCategory(strings.ToUpper(c))
		if err != nil {
			return filter, errors.NewValidationError("invalid category filter", c)
		}
		filter.Category = &category
	}
	if pr := strings.TrimSpace(query.Priority); pr != "" {
		priority, err := vo.NewPriority(strings.ToUpper(pr))
		if err != nil {
			return filter, errors.NewValidationError("invalid priority filter", pr)
		}
		filter.Priority = &priority
	}
	if d := strings.TrimSpace(query.District); d != "" {
		filter.District = &d
	}
	if a := strings.TrimSpace(query.AssigneeID); a != "" && !query.Mine {
		filter.AssigneeID = &a
	}
	return filter, nil
}
