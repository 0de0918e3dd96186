package usecases

import (
	"context"
	"strings"

	"github.com/civictrack/civictrack/internal/application/report/dto"
	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

const maxMapMarkers = 1000

// ListMapMarkersQuery selects public markers. Without Status every report
// that is not CLOSED is shown.
type ListMapMarkersQuery struct {
	Status   string
	Category string
	MinLat   *float64
	MaxLat   *float64
	MinLng   *float64
	MaxLng   *float64
}

type ListMapMarkersUseCase struct {
	reports report.Repository
	logger  logger.Interface
}

func NewListMapMarkersUseCase(reports report.Repository, logger logger.Interface) *ListMapMarkersUseCase {
	return &ListMapMarkersUseCase{
		reports: reports,
		logger:  logger,
	}
}

func (uc *ListMapMarkersUseCase) Execute(ctx context.Context, query ListMapMarkersQuery) ([]dto.MarkerDTO, error) {
	filter := report.MarkerFilter{
		MinLat: query.MinLat,
		MaxLat: query.MaxLat,
		MinLng: query.MinLng,
		MaxLng: query.MaxLng,
		Limit:  maxMapMarkers,
	}

	if s := strings.TrimSpace(query.Status); s != "" {
		status, err := vo.NewReportStatus(strings.ToUpper(s))
		if err != nil {
			return nil, errors.NewValidationError("invalid status filter", s)
		}
		filter.Statuses = []vo.ReportStatus{status}
	} else {
		for _, st := range vo.AllStatuses() {
			if !st.IsClosed() {
				filter.Statuses = append(filter.Statuses, st)
			}
		}
	}
	if c := strings.TrimSpace(query.Category); c != "" {
		category, err := vo.NewCategory(strings.ToUpper(c))
		if err != nil {
			return nil, errors.NewValidationError("invalid category filter", c)
		}
		filter.Category = &category
	}
	if query.MinLat != nil && query.MaxLat != nil && *query.MinLat > *query.MaxLat {
		return nil, errors.NewValidationError("min_lat must not exceed max_lat")
	}
	if query.MinLng != nil && query.MaxLng != nil && *query.MinLng > *query.MaxLng {
		return nil, errors.NewValidationError("min_lng must not exceed max_lng")
	}

	reports, err := uc.reports.ListMarkers(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list map markers", "error", err)
		return nil, errors.NewInternalError("failed to list map markers")
	}
	return dto.ToMarkerDTOs(reports), nil
}
