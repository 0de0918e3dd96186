package usecases

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/civictrack/civictrack/internal/application/report/dto"
	"github.com/civictrack/civictrack/internal/domain/report"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/services/markdown"
)

// GetSurveyUseCase resolves a public survey link.
type GetSurveyUseCase struct {
	surveys report.SurveyRepository
	reports report.Repository
	logger  logger.Interface
}

func NewGetSurveyUseCase(surveys report.SurveyRepository, reports report.Repository, logger logger.Interface) *GetSurveyUseCase {
	return &GetSurveyUseCase{
		surveys: surveys,
		reports: reports,
		logger:  logger,
	}
}

func (uc *GetSurveyUseCase) Execute(ctx context.Context, token string) (*dto.SurveyDTO, error) {
	s, err := loadSurvey(ctx, uc.surveys, token, uc.logger)
	if err != nil {
		return nil, err
	}
	r, err := uc.reports.GetByID(ctx, s.ReportID())
	if err != nil {
		uc.logger.Warnw("failed to load report for survey", "report_id", s.ReportID(), "error", err)
	}
	return dto.ToSurveyDTO(s, r), nil
}

type SubmitSurveyCommand struct {
	Token   string
	Rating  int
	Comment string
}

// SubmitSurveyUseCase records the single answer a survey accepts.
type SubmitSurveyUseCase struct {
	surveys  report.SurveyRepository
	reports  report.Repository
	renderer markdown.Renderer
	now      func() time.Time
	logger   logger.Interface
}

func NewSubmitSurveyUseCase(
	surveys report.SurveyRepository,
	reports report.Repository,
	renderer markdown.Renderer,
	now func() time.Time,
	logger logger.Interface,
) *SubmitSurveyUseCase {
	return &SubmitSurveyUseCase{
		surveys:  surveys,
		reports:  reports,
		renderer: renderer,
		now:      now,
		logger:   logger,
	}
}

func (uc *SubmitSurveyUseCase) Execute(ctx context.Context, cmd SubmitSurveyCommand) (*dto.SurveyDTO, error) {
	s, err := loadSurvey(ctx, uc.surveys, cmd.Token, uc.logger)
	if err != nil {
		return nil, err
	}

	if err := s.Submit(cmd.Rating, uc.renderer.StripTags(cmd.Comment), uc.now()); err != nil {
		uc.logger.Warnw("survey submission rejected", "report_id", s.ReportID(), "error", err)
		return nil, mapDomainError(err)
	}
	if err := uc.surveys.Update(ctx, s); err != nil {
		if stderrors.Is(err, report.ErrSurveyAlreadySubmitted) {
			return nil, mapDomainError(err)
		}
		uc.logger.Errorw("failed to save survey answer", "report_id", s.ReportID(), "error", err)
		return nil, errors.NewInternalError("failed to save survey answer")
	}

	uc.logger.Infow("survey submitted", "report_id", s.ReportID(), "rating", cmd.Rating)

	r, err := uc.reports.GetByID(ctx, s.ReportID())
	if err != nil {
		uc.logger.Warnw("failed to load report for survey", "report_id", s.ReportID(), "error", err)
	}
	return dto.ToSurveyDTO(s, r), nil
}

func loadSurvey(ctx context.Context, surveys report.SurveyRepository, token string, log logger.Interface) (*report.Survey, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.NewNotFoundError(report.ErrSurveyNotFound.Error())
	}
	s, err := surveys.GetByToken(ctx, token)
	if err != nil {
		log.Errorw("failed to load survey", "error", err)
		return nil, errors.NewInternalError("failed to load survey")
	}
	if s == nil {
		return nil, errors.NewNotFoundError(report.ErrSurveyNotFound.Error())
	}
	return s, nil
}
