package usecases

import (
	"context"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/civictrack/civictrack/internal/application/report/dto"
	"github.com/civictrack/civictrack/internal/application/report/services"
	usercases "github.com/civictrack/civictrack/internal/application/user/usecases"
	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/domain/setting"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/services/markdown"
)

const maxPhotoURLs = 10

// CreateReportCommand carries a citizen's submission. Anonymous callers
// leave Actor nil and supply Email.
type CreateReportCommand struct {
	Actor       *authorization.Principal
	Email       string
	DisplayName string
	Category    string
	Description string
	Latitude    float64
	Longitude   float64
	Address     string
	District    *string
	PhotoURLs   []string
}

type CreateReportUseCase struct {
	reports  report.Repository
	resolver ReporterResolver
	settings setting.ReportSettings
	recorder *services.EventRecorder
	tx       TransactionRunner
	renderer markdown.Renderer
	now      func() time.Time
	logger   logger.Interface
}

func NewCreateReportUseCase(
	reports report.Repository,
	resolver ReporterResolver,
	settings setting.ReportSettings,
	recorder *services.EventRecorder,
	tx TransactionRunner,
	renderer markdown.Renderer,
	now func() time.Time,
	logger logger.Interface,
) *CreateReportUseCase {
	return &CreateReportUseCase{
		reports:  reports,
		resolver: resolver,
		settings: settings,
		recorder: recorder,
		tx:       tx,
		renderer: renderer,
		now:      now,
		logger:   logger,
	}
}

func (uc *CreateReportUseCase) Execute(ctx context.Context, cmd CreateReportCommand) (*dto.ReportDTO, error) {
	uc.logger.Infow("executing create report use case", "category", cmd.Category, "anonymous", cmd.Actor == nil)

	params, err := uc.validateCommand(ctx, cmd)
	if err != nil {
		uc.logger.Warnw("invalid create report command", "error", err)
		return nil, err
	}

	now := uc.now()
	var (
		created *report.Report
		event   *report.Event
	)
	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		reporter, err := uc.resolver.Execute(ctx, usercases.ResolveReporterCommand{
			Principal:   cmd.Actor,
			Email:       cmd.Email,
			DisplayName: cmd.DisplayName,
		})
		if err != nil {
			return err
		}

		params.ReporterID = reporter.ID()
		created, err = report.NewReport(params, now)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.reports.Create(ctx, created); err != nil {
			uc.logger.Errorw("failed to create report", "error", err)
			return errors.NewInternalError("failed to create report")
		}

		event, err = uc.recorder.Record(ctx, created.ID(), vo.EventCreated, reporter.ID(), "",
			map[string]any{"category": created.Category().String(), "district": optionalString(created.District())}, now)
		if err != nil {
			uc.logger.Errorw("failed to record created event", "report_id", created.ID(), "error", err)
			return errors.NewInternalError("failed to create report")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Publish(ctx, event)
	uc.logger.Infow("report created", "report_id", created.ID(), "reporter_id", created.ReporterID())
	return dto.ToReportDTO(created, now), nil
}

func (uc *CreateReportUseCase) validateCommand(ctx context.Context, cmd CreateReportCommand) (report.NewReportParams, error) {
	category, err := vo.NewCategory(strings.ToUpper(strings.TrimSpace(cmd.Category)))
	if err != nil {
		return report.NewReportParams{}, errors.NewValidationError("invalid category", cmd.Category)
	}
	location, err := vo.NewLocation(cmd.Latitude, cmd.Longitude)
	if err != nil {
		return report.NewReportParams{}, errors.NewValidationError(err.Error())
	}

	description := uc.renderer.StripTags(cmd.Description)
	if len([]rune(description)) < report.MinDescriptionLength {
		return report.NewReportParams{}, errors.NewValidationError("description is too short", "min 10 characters")
	}

	district, err := validateDistrict(ctx, uc.settings, cmd.District)
	if err != nil {
		return report.NewReportParams{}, err
	}

	if len(cmd.PhotoURLs) > maxPhotoURLs {
		return report.NewReportParams{}, errors.NewValidationError("too many photos", "max 10")
	}
	for _, raw := range cmd.PhotoURLs {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return report.NewReportParams{}, errors.NewValidationError("invalid photo URL", raw)
		}
	}

	return report.NewReportParams{
		Category:    category,
		Description: description,
		Location:    location,
		Address:     uc.renderer.StripTags(cmd.Address),
		District:    district,
		PhotoURLs:   cmd.PhotoURLs,
	}, nil
}

// validateDistrict accepts nil or a district from the configured catalog.
func validateDistrict(ctx context.Context, settings setting.ReportSettings, district *string) (*string, error) {
	if district == nil {
		return nil, nil
	}
	d := strings.TrimSpace(*district)
	if d == "" {
		return nil, nil
	}
	if !slices.Contains(settings.Districts(ctx), d) {
		return nil, errors.NewValidationError("unknown district", d)
	}
	return &d, nil
}
