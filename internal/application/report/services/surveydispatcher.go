package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/civictrack/civictrack/internal/domain/report"
	"github.com/civictrack/civictrack/internal/domain/setting"
	"github.com/civictrack/civictrack/internal/domain/user"
	sharederrors "github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/services/markdown"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

const surveyTokenPrefix = "svy_"

// SurveyDispatcher issues the satisfaction survey of a closed report. A report
// has at most one survey over its lifetime: a later closure re-sends the
// pending invitation and never replaces a submitted survey.
type SurveyDispatcher struct {
	surveys  report.SurveyRepository
	accounts user.Repository
	tokens   TokenGenerator
	settings setting.ReportSettings
	mailer   MailSender
	composer composer
	now      func() time.Time
	logger   logger.Interface
}

func NewSurveyDispatcher(
	surveys report.SurveyRepository,
	accounts user.Repository,
	tokens TokenGenerator,
	settings setting.ReportSettings,
	mailer MailSender,
	renderer markdown.Renderer,
	now func() time.Time,
	log logger.Interface,
) *SurveyDispatcher {
	return &SurveyDispatcher{
		surveys:  surveys,
		accounts: accounts,
		tokens:   tokens,
		settings: settings,
		mailer:   mailer,
		composer: composer{renderer: renderer},
		now:      now,
		logger:   log,
	}
}

// Dispatch is called after a transition into CLOSED. Failures are logged.
func (d *SurveyDispatcher) Dispatch(ctx context.Context, change StatusChange) {
	if err := d.dispatch(ctx, change); err != nil {
		d.logger.Errorw("survey dispatch failed", "report_id", change.ReportID, "error", err)
	}
}

func (d *SurveyDispatcher) dispatch(ctx context.Context, change StatusChange) error {
	account, err := d.accounts.GetByID(ctx, change.ReporterID)
	if err != nil {
		return fmt.Errorf("load reporter: %w", err)
	}
	if account == nil || account.Email().IsZero() {
		d.logger.Infow("reporter has no email, survey not issued", "report_id", change.ReportID)
		return nil
	}

	survey, err := d.surveys.GetByReportID(ctx, change.ReportID)
	if err != nil {
		return fmt.Errorf("load survey: %w", err)
	}
	if survey != nil && survey.IsSubmitted() {
		d.logger.Infow("survey already answered, not re-issued", "report_id", change.ReportID)
		return nil
	}
	if survey == nil {
		survey, err = d.createSurvey(ctx, change.ReportID, account.Email().String())
		if err != nil {
			return err
		}
	}

	return d.sendInvitation(ctx, survey, account, change)
}

func (d *SurveyDispatcher) createSurvey(ctx context.Context, reportID, email string) (*report.Survey, error) {
	token, err := d.tokens.Generate(surveyTokenPrefix)
	if err != nil {
		return nil, fmt.Errorf("generate survey token: %w", err)
	}
	survey, err := report.NewSurvey(reportID, token, email, d.now())
	if err != nil {
		return nil, err
	}

	if err := d.surveys.Create(ctx, survey); err != nil {
		if !sharederrors.IsDuplicateError(err) {
			return nil, fmt.Errorf("create survey: %w", err)
		}
		// a concurrent closure won the race; use its survey
		existing, getErr := d.surveys.GetByReportID(ctx, reportID)
		if getErr != nil || existing == nil {
			return nil, fmt.Errorf("create survey: %w", err)
		}
		return existing, nil
	}

	d.logger.Infow("survey created", "report_id", reportID, "survey_id", survey.ID())
	return survey, nil
}

func (d *SurveyDispatcher) sendInvitation(ctx context.Context, survey *report.Survey, account *user.Account, change StatusChange) error {
	view := surveyInvitationView{
		Name:      account.DisplayName(),
		ReportID:  change.ReportID,
		Category:  HumanizeCategory(change.Category),
		SurveyURL: SurveyURL(d.settings.SurveyBaseURL(ctx), survey.Token()),
	}
	mail, err := d.composer.compose(account.Email().String(), "How did we do?", "survey_invitation.md.tmpl", view)
	if err != nil {
		return err
	}
	if err := d.mailer.Send(ctx, mail); err != nil {
		return fmt.Errorf("send invitation to %s: %w", utils.MaskEmail(mail.To), err)
	}
	d.logger.Infow("survey invitation sent", "report_id", change.ReportID)
	return nil
}

// SurveyURL joins the public survey base URL and a token.
func SurveyURL(base, token string) string {
	return strings.TrimRight(base, "/") + "/" + token
}
