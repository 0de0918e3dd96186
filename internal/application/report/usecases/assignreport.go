package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/civictrack/civictrack/internal/application/report/dto"
	"github.com/civictrack/civictrack/internal/application/report/services"
	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/domain/user"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/services/markdown"
)

// AssignReportCommand assigns a report to a staff member, or unassigns it
// when AssigneeID is nil.
type AssignReportCommand struct {
	ReportID   string
	AssigneeID *string
	Note       string
	Actor      *authorization.Principal
}

type AssignReportUseCase struct {
	reports     report.Repository
	accounts    user.Repository
	permissions authorization.PermissionChecker
	recorder    *services.EventRecorder
	renderer    markdown.Renderer
	now         func() time.Time
	logger      logger.Interface
}

func NewAssignReportUseCase(
	reports report.Repository,
	accounts user.Repository,
	permissions authorization.PermissionChecker,
	recorder *services.EventRecorder,
	renderer markdown.Renderer,
	now func() time.Time,
	logger logger.Interface,
) *AssignReportUseCase {
	return &AssignReportUseCase{
		reports:     reports,
		accounts:    accounts,
		permissions: permissions,
		recorder:    recorder,
		renderer:    renderer,
		now:         now,
		logger:      logger,
	}
}

func (uc *AssignReportUseCase) Execute(ctx context.Context, cmd AssignReportCommand) (*dto.ReportDTO, error) {
	uc.logger.Infow("executing assign report use case", "report_id", cmd.ReportID)

	if err := requirePermission(uc.permissions, cmd.Actor, authorization.ActionAssign, uc.logger); err != nil {
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

	var assigneeID *string
	if cmd.AssigneeID != nil {
		id := strings.TrimSpace(*cmd.AssigneeID)
		if err := uc.checkAssignee(ctx, id); err != nil {
			return nil, err
		}
		assigneeID = &id
	}

	now := uc.now()
	r.Assign(assigneeID, cmd.Actor.AccountID, now)
	if err := saveReport(ctx, uc.reports, r, uc.logger); err != nil {
		return nil, err
	}

	uc.recorder.RecordBestEffort(ctx, r.ID(), vo.EventAssigned, cmd.Actor.AccountID, note,
		map[string]any{"assigneeId": optionalString(assigneeID)}, now)

	uc.logger.Infow("report assignment updated", "report_id", r.ID(), "assignee_id", optionalString(assigneeID))
	return dto.ToReportDTO(r, now), nil
}

// checkAssignee accepts only active staff accounts.
func (uc *AssignReportUseCase) checkAssignee(ctx context.Context, assigneeID string) error {
	if assigneeID == "" {
		return errors.NewValidationError("assignee ID is required")
	}
	assignee, err := uc.accounts.GetByID(ctx, assigneeID)
	if err != nil {
		uc.logger.Errorw("failed to load assignee", "assignee_id", assigneeID, "error", err)
		return errors.NewInternalError("failed to load assignee")
	}
	if assignee == nil {
		return errors.NewValidationError("assignee does not exist", assigneeID)
	}
	if !assignee.CanBeAssigned() {
		return errors.NewValidationError("assignee must be an active staff member", assigneeID)
	}
	return nil
}
