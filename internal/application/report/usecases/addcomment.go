package usecases

import (
	"context"
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

type AddCommentCommand struct {
	ReportID string
	Note     string
	Actor    *authorization.Principal
}

// AddCommentUseCase appends a free-text comment to the report's event log.
// Unlike other events the comment is the primary write, so failures surface.
type AddCommentUseCase struct {
	reports  report.Repository
	recorder *services.EventRecorder
	renderer markdown.Renderer
	now      func() time.Time
	logger   logger.Interface
}

func NewAddCommentUseCase(
	reports report.Repository,
	recorder *services.EventRecorder,
	renderer markdown.Renderer,
	now func() time.Time,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		reports:  reports,
		recorder: recorder,
		renderer: renderer,
		now:      now,
		logger:   logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*dto.EventDTO, error) {
	uc.logger.Infow("executing add comment use case", "report_id", cmd.ReportID)

	note, err := cleanNote(uc.renderer, cmd.Note)
	if err != nil {
		return nil, err
	}
	if note == "" {
		return nil, errors.NewValidationError("comment cannot be empty")
	}

	r, err := loadAccessibleReport(ctx, uc.reports, cmd.Actor, cmd.ReportID, uc.logger)
	if err != nil {
		return nil, err
	}

	e, err := uc.recorder.Record(ctx, r.ID(), vo.EventComment, cmd.Actor.AccountID, note, nil, uc.now())
	if err != nil {
		uc.logger.Errorw("failed to save comment", "report_id", r.ID(), "error", err)
		return nil, errors.NewInternalError("failed to save comment")
	}
	uc.recorder.Publish(ctx, e)

	uc.logger.Infow("comment added", "report_id", r.ID(), "event_id", e.ID())
	return dto.ToEventDTO(e), nil
}
