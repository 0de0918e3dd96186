package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/civictrack/civictrack/internal/application/report/dto"
	"github.com/civictrack/civictrack/internal/application/report/services"
	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/services/markdown"
)

type ChangeStatusCommand struct {
	ReportID string
	Status   string
	Note     string
	Actor    *authorization.Principal
}

// ChangeStatusUseCase is the only way a report's status moves. Validation
// runs before the report is touched; side effects run after the update is
// stored and never fail the call.
type ChangeStatusUseCase struct {
	reports     report.Repository
	permissions authorization.PermissionChecker
	recorder    *services.EventRecorder
	notifier    StatusNotifier
	surveys     SurveyIssuer
	runner      services.SideEffectRunner
	renderer    markdown.Renderer
	metrics     services.Metrics
	now         func() time.Time
	logger      logger.Interface
}

func NewChangeStatusUseCase(
	reports report.Repository,
	permissions authorization.PermissionChecker,
	recorder *services.EventRecorder,
	notifier StatusNotifier,
	surveys SurveyIssuer,
	runner services.SideEffectRunner,
	renderer markdown.Renderer,
	metrics services.Metrics,
	now func() time.Time,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		reports:     reports,
		permissions: permissions,
		recorder:    recorder,
		notifier:    notifier,
		surveys:     surveys,
		runner:      runner,
		renderer:    renderer,
		metrics:     metrics,
		now:         now,
		logger:      logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*dto.ReportDTO, error) {
	uc.logger.Infow("executing change status use case", "report_id", cmd.ReportID, "status", cmd.Status)

	if err := requirePermission(uc.permissions, cmd.Actor, authorization.ActionStatus, uc.logger); err != nil {
		return nil, err
	}

	target, err := vo.NewReportStatus(strings.ToUpper(strings.TrimSpace(cmd.Status)))
	if err != nil {
		return nil, errors.NewValidationError("invalid status", cmd.Status)
	}

	note, err := cleanNote(uc.renderer, cmd.Note)
	if err != nil {
		return nil, err
	}
	if target.RequiresNote() && note == "" {
		return nil, errors.NewValidationError(report.ErrNoteRequired.Error(), target.String())
	}

	r, err := loadReport(ctx, uc.reports, cmd.ReportID, uc.logger)
	if err != nil {
		return nil, err
	}

	from := r.Status()
	now := uc.now()
	if err := r.TransitionTo(target, cmd.Actor.AccountID, note, now); err != nil {
		uc.logger.Warnw("status transition rejected",
			"report_id", r.ID(),
			"from", from,
			"to", target,
			"error", err,
		)
		return nil, mapDomainError(err)
	}

	if err := saveReport(ctx, uc.reports, r, uc.logger); err != nil {
		return nil, err
	}
	uc.metrics.StatusTransition(from, target)

	uc.recorder.RecordBestEffort(ctx, r.ID(), vo.EventStatusChanged, cmd.Actor.AccountID, note,
		map[string]any{"from": from.String(), "to": target.String()}, now)

	change := services.StatusChange{
		ReportID:    r.ID(),
		ReporterID:  r.ReporterID(),
		Category:    r.Category(),
		From:        from,
		To:          target,
		Note:        note,
		ScheduledAt: r.ScheduledAt(),
		At:          now,
	}
	uc.runner.Go("notify-status-change", func(ctx context.Context) {
		uc.notifier.Notify(ctx, change)
	})
	if target == vo.StatusClosed {
		uc.runner.Go("dispatch-survey", func(ctx context.Context) {
			uc.surveys.Dispatch(ctx, change)
		})
	}

	uc.logger.Infow("report status changed", "report_id", r.ID(), "from", from, "to", target)
	return dto.ToReportDTO(r, now), nil
}
