package report

import (
	"context"

	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
)

// Repository persists reports. GetByID returns nil, nil when the report does
// not exist. Update fails with ErrVersionConflict when the stored version is
// not Version()-1.
type Repository interface {
	Create(ctx context.Context, r *Report) error
	Update(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id string) (*Report, error)
	List(ctx context.Context, filter ListFilter) ([]*Report, int64, error)
	ListMarkers(ctx context.Context, filter MarkerFilter) ([]*Report, error)
	Stats(ctx context.Context) (*Stats, error)
}

// ListFilter narrows a report listing. Nil fields are ignored.
type ListFilter struct {
	Status     *vo.ReportStatus
	Category   *vo.Category
	District   *string
	AssigneeID *string
	ReporterID *string
	// Priority matches the effective priority.
	Priority *vo.Priority
	Page     int
	PageSize int
}

// MarkerFilter selects reports for the public map.
type MarkerFilter struct {
	Statuses []vo.ReportStatus
	Category *vo.Category
	MinLat   *float64
	MaxLat   *float64
	MinLng   *float64
	MaxLng   *float64
	Limit    int
}

// Stats aggregates the report backlog for the staff dashboard.
type Stats struct {
	Total       int64
	ByStatus    map[vo.ReportStatus]int64
	ByPriority  map[vo.Priority]int64
	Untriaged   int64
	SLABreached int64
}

type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	ListByReport(ctx context.Context, reportID string, page, pageSize int) ([]*Event, int64, error)
}

type EvidenceRepository interface {
	Create(ctx context.Context, e *Evidence) error
	// ListByReport returns evidence oldest first; a nil evidenceType returns all.
	ListByReport(ctx context.Context, reportID string, evidenceType *vo.EvidenceType) ([]*Evidence, error)
}

// SurveyRepository lookups return nil, nil when nothing matches.
type SurveyRepository interface {
	Create(ctx context.Context, s *Survey) error
	Update(ctx context.Context, s *Survey) error
	GetByReportID(ctx context.Context, reportID string) (*Survey, error)
	GetByToken(ctx context.Context, token string) (*Survey, error)
}
