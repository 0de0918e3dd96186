package usecases

import (
	"context"
	"fmt"
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

// ScheduleReportCommand plans work on a report. SLATargetAt, when given,
// wins over SLAHours.
type ScheduleReportCommand struct {
	ReportID    string
	ScheduledAt string
	SLAHours    *int
	SLATargetAt *string
	Note        string
	Actor       *authorization.Principal
}

type ScheduleReportUseCase struct {
	reports     report.Repository
	permissions authorization.PermissionChecker
	recorder    *services.EventRecorder
	renderer    markdown.Renderer
	now         func() time.Time
	logger      logger.Interface
}

func NewScheduleReportUseCase(
	reports report.Repository,
	permissions authorization.PermissionChecker,
	recorder *services.EventRecorder,
	renderer markdown.Renderer,
	now func() time.Time,
	logger logger.Interface,
) *ScheduleReportUseCase {
	return &ScheduleReportUseCase{
		reports:     reports,
		permissions: permissions,
		recorder:    recorder,
		renderer:    renderer,
		now:         now,
		logger:      logger,
	}
}

func (uc *ScheduleReportUseCase) Execute(ctx context.Context, cmd ScheduleReportCommand) (*dto.ReportDTO, error) {
	uc.logger.Infow("executing schedule report use case", "report_id", cmd.ReportID, "scheduled_at", cmd.ScheduledAt)

	if err := requirePermission(uc.permissions, cmd.Actor, authorization.ActionSchedule, uc.logger); err != nil {
		return nil, err
	}
	scheduledAt, slaTarget, err := uc.validateCommand(cmd)
	if err != nil {
		return nil, err
	}
	note, err := cleanNote(uc.renderer, cmd.Note)
	if err != nil {
		return nil, err
	}

	r, err := loadReport(ctx, uc.reports, cmd.ReportID, uc.logger)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	r.Schedule(scheduledAt, slaTarget, now)
	if err := saveReport(ctx, uc.reports, r, uc.logger); err != nil {
		return nil, err
	}

	uc.recorder.RecordBestEffort(ctx, r.ID(), vo.EventScheduled, cmd.Actor.AccountID, note, map[string]any{
		"scheduledAt":   scheduledAt.Format(time.RFC3339),
		"slaTargetAt":   formatOptional(r.SLATargetAt()),
		"slaBreachedAt": formatOptional(r.SLABreachedAt()),
	}, now)

	uc.logger.Infow("report scheduled", "report_id", r.ID(), "sla_breached", r.SLABreachedAt() != nil)
	return dto.ToReportDTO(r, now), nil
}

// maxSLAHours caps derived SLA windows at one year.
const maxSLAHours = 24 * 365

func (uc *ScheduleReportUseCase) validateCommand(cmd ScheduleReportCommand) (time.Time, *time.Time, error) {
	if strings.TrimSpace(cmd.ScheduledAt) == "" {
		return time.Time{}, nil, errors.NewValidationError("scheduledAt is required")
	}
	scheduledAt, err := time.Parse(time.RFC3339, strings.TrimSpace(cmd.ScheduledAt))
	if err != nil {
		return time.Time{}, nil, errors.NewValidationError("scheduledAt must be an RFC3339 timestamp", cmd.ScheduledAt)
	}
	scheduledAt = scheduledAt.UTC()

	if cmd.SLATargetAt != nil && strings.TrimSpace(*cmd.SLATargetAt) != "" {
		target, err := time.Parse(time.RFC3339, strings.TrimSpace(*cmd.SLATargetAt))
		if err != nil {
			return time.Time{}, nil, errors.NewValidationError("slaTargetAt must be an RFC3339 timestamp", *cmd.SLATargetAt)
		}
		target = target.UTC()
		return scheduledAt, &target, nil
	}

	if cmd.SLAHours != nil {
		if *cmd.SLAHours < 0 {
			return time.Time{}, nil, errors.NewValidationError("slaHours cannot be negative")
		}
		if *cmd.SLAHours > maxSLAHours {
			return time.Time{}, nil, errors.NewValidationError(fmt.Sprintf("slaHours cannot exceed %d", maxSLAHours))
		}
		if *cmd.SLAHours > 0 {
			target := scheduledAt.Add(time.Duration(*cmd.SLAHours) * time.Hour)
			return scheduledAt, &target, nil
		}
	}
	return scheduledAt, nil, nil
}

func formatOptional(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
