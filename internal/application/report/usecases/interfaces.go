package usecases

import (
	"context"

	"github.com/civictrack/civictrack/internal/application/report/dto"
	"github.com/civictrack/civictrack/internal/application/report/services"
	usercases "github.com/civictrack/civictrack/internal/application/user/usecases"
	"github.com/civictrack/civictrack/internal/domain/user"
)

// TransactionRunner runs fn in a database transaction carried by ctx.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReporterResolver maps the caller of a create onto an account.
type ReporterResolver interface {
	Execute(ctx context.Context, cmd usercases.ResolveReporterCommand) (*user.Account, error)
}

// StatusNotifier tells the reporter about a committed status change.
type StatusNotifier interface {
	Notify(ctx context.Context, change services.StatusChange)
}

// SurveyIssuer issues the satisfaction survey after a closure.
type SurveyIssuer interface {
	Dispatch(ctx context.Context, change services.StatusChange)
}

type CreateReportExecutor interface {
	Execute(ctx context.Context, cmd CreateReportCommand) (*dto.ReportDTO, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) (*dto.ReportDTO, error)
}

type SetTriageExecutor interface {
	Execute(ctx context.Context, cmd SetTriageCommand) (*dto.ReportDTO, error)
}

type AssignReportExecutor interface {
	Execute(ctx context.Context, cmd AssignReportCommand) (*dto.ReportDTO, error)
}

type ScheduleReportExecutor interface {
	Execute(ctx context.Context, cmd ScheduleReportCommand) (*dto.ReportDTO, error)
}

type UpdateDistrictExecutor interface {
	Execute(ctx context.Context, cmd UpdateDistrictCommand) (*dto.ReportDTO, error)
}

type AddEvidenceExecutor interface {
	Execute(ctx context.Context, cmd AddEvidenceCommand) (*dto.EvidenceDTO, error)
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd AddCommentCommand) (*dto.EventDTO, error)
}

type GetReportExecutor interface {
	Execute(ctx context.Context, query GetReportQuery) (*dto.ReportDTO, error)
}

type ListReportsExecutor interface {
	Execute(ctx context.Context, query ListReportsQuery) (*ListReportsResult, error)
}

type ListMapMarkersExecutor interface {
	Execute(ctx context.Context, query ListMapMarkersQuery) ([]dto.MarkerDTO, error)
}

type ListEventsExecutor interface {
	Execute(ctx context.Context, query ListEventsQuery) (*ListEventsResult, error)
}

type ListEvidenceExecutor interface {
	Execute(ctx context.Context, query ListEvidenceQuery) ([]*dto.EvidenceDTO, error)
}

type GetReportStatsExecutor interface {
	Execute(ctx context.Context, query GetReportStatsQuery) (*dto.StatsDTO, error)
}

type GetSurveyExecutor interface {
	Execute(ctx context.Context, token string) (*dto.SurveyDTO, error)
}

type SubmitSurveyExecutor interface {
	Execute(ctx context.Context, cmd SubmitSurveyCommand) (*dto.SurveyDTO, error)
}
