package usecases

import (
	"context"
	"time"

	"github.com/civictrack/civictrack/internal/application/report/dto"
	"github.com/civictrack/civictrack/internal/application/report/services"
	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/domain/setting"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/services/markdown"
)

// UpdateDistrictCommand moves a report between districts; nil clears it.
type UpdateDistrictCommand struct {
	ReportID string
	District *string
	Note     string
	Actor    *authorization.Principal
}

type UpdateDistrictUseCase struct {
	reports     report.Repository
	permissions authorization.PermissionChecker
	settings    setting.ReportSettings
	recorder    *services.EventRecorder
	renderer    markdown.Renderer
	now         func() time.Time
	logger      logger.Interface
}

func NewUpdateDistrictUseCase(
	reports report.Repository,
	permissions authorization.PermissionChecker,
	settings setting.ReportSettings,
	recorder *services.EventRecorder,
	renderer markdown.Renderer,
	now func() time.Time,
	logger logger.Interface,
) *UpdateDistrictUseCase {
	return &UpdateDistrictUseCase{
		reports:     reports,
		permissions: permissions,
		settings:    settings,
		recorder:    recorder,
		renderer:    renderer,
		now:         now,
		logger:      logger,
	}
}

func (uc *UpdateDistrictUseCase) Execute(ctx context.Context, cmd UpdateDistrictCommand) (*dto.ReportDTO, error) {
	uc.logger.Infow("executing update district use case", "report_id", cmd.ReportID, "district", optionalString(cmd.District))

	if err := requirePermission(uc.permissions, cmd.Actor, authorization.ActionDistrict, uc.logger); err != nil {
		return nil, err
	}
	district, err := validateDistrict(ctx, uc.settings, cmd.District)
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
	previous := r.UpdateDistrict(district, now)
	if err := saveReport(ctx, uc.reports, r, uc.logger); err != nil {
		return nil, err
	}

	uc.recorder.RecordBestEffort(ctx, r.ID(), vo.EventDistrictUpdated, cmd.Actor.AccountID, note,
		map[string]any{"from": optionalString(previous), "to": optionalString(district)}, now)

	uc.logger.Infow("report district updated", "report_id", r.ID())
	return dto.ToReportDTO(r, now), nil
}
