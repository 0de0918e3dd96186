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
)

// SetTriageCommand rates a report. A nil PriorityOverride clears any override.
type SetTriageCommand struct {
	ReportID         string
	Impact           int
	Urgency          int
	PriorityOverride *string
	Actor            *authorization.Principal
}

type SetTriageUseCase struct {
	reports     report.Repository
	permissions authorization.PermissionChecker
	recorder    *services.EventRecorder
	now         func() time.Time
	logger      logger.Interface
}

func NewSetTriageUseCase(
	reports report.Repository,
	permissions authorization.PermissionChecker,
	recorder *services.EventRecorder,
	now func() time.Time,
	logger logger.Interface,
) *SetTriageUseCase {
	return &SetTriageUseCase{
		reports:     reports,
		permissions: permissions,
		recorder:    recorder,
		now:         now,
		logger:      logger,
	}
}

func (uc *SetTriageUseCase) Execute(ctx context.Context, cmd SetTriageCommand) (*dto.ReportDTO, error) {
	uc.logger.Infow("executing set triage use case", "report_id", cmd.ReportID, "impact", cmd.Impact, "urgency", cmd.Urgency)

	if err := requirePermission(uc.permissions, cmd.Actor, authorization.ActionTriage, uc.logger); err != nil {
		return nil, err
	}

	override, err := uc.validateCommand(cmd)
	if err != nil {
		return nil, err
	}

	r, err := loadReport(ctx, uc.reports, cmd.ReportID, uc.logger)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if err := r.SetTriage(cmd.Impact, cmd.Urgency, override, cmd.Actor.AccountID, now); err != nil {
		return nil, mapDomainError(err)
	}
	if err := saveReport(ctx, uc.reports, r, uc.logger); err != nil {
		return nil, err
	}

	var overrideValue any
	if override != nil {
		overrideValue = override.String()
	}
	uc.recorder.RecordBestEffort(ctx, r.ID(), vo.EventTriageUpdated, cmd.Actor.AccountID, "", map[string]any{
		"impact":           cmd.Impact,
		"urgency":          cmd.Urgency,
		"priority":         r.Priority().String(),
		"priorityOverride": overrideValue,
	}, now)

	uc.logger.Infow("report triaged",
		"report_id", r.ID(),
		"priority", r.Priority().String(),
		"effective_priority", r.EffectivePriority().String(),
	)
	return dto.ToReportDTO(r, now), nil
}

func (uc *SetTriageUseCase) validateCommand(cmd SetTriageCommand) (*vo.Priority, error) {
	if cmd.Impact < vo.MinScale || cmd.Impact > vo.MaxScale {
		return nil, errors.NewValidationError("impact must be between 1 and 5")
	}
	if cmd.Urgency < vo.MinScale || cmd.Urgency > vo.MaxScale {
		return nil, errors.NewValidationError("urgency must be between 1 and 5")
	}
	if cmd.PriorityOverride == nil {
		return nil, nil
	}
	p, err := vo.NewPriority(strings.ToUpper(strings.TrimSpace(*cmd.PriorityOverride)))
	if err != nil {
		return nil, errors.NewValidationError("invalid priority override", *cmd.PriorityOverride)
	}
	return &p, nil
}
