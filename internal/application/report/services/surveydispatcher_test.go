package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/domain/user"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/services/markdown"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newDispatcher(accounts user.Repository, surveys report.SurveyRepository, mailer MailSender) *SurveyDispatcher {
	return NewSurveyDispatcher(
		surveys,
		accounts,
		&sequenceTokens{},
		staticSettings{baseURL: "https://city.example/survey/"},
		mailer,
		markdown.NewRenderer(),
		func() time.Time { return fixedNow },
		logger.NewNop(),
	)
}

func closedChange(reporterID string) StatusChange {
	return StatusChange{
		ReportID:   "rpt_1",
		ReporterID: reporterID,
		Category:   vo.CategoryPothole,
		From:       vo.StatusResolved,
		To:         vo.StatusClosed,
		At:         fixedNow,
	}
}

func TestSurveyDispatcher_CreatesSurveyOnFirstClose(t *testing.T) {
	reporter := newReporter(t)
	accounts := &mockAccountRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*user.Account, error) { return reporter, nil },
	}
	surveys := newMockSurveyRepository()
	mailer := &recordingMailer{}

	newDispatcher(accounts, surveys, mailer).Dispatch(context.Background(), closedChange(reporter.ID()))

	s, _ := surveys.GetByReportID(context.Background(), "rpt_1")
	require.NotNil(t, s)
	assert.False(t, s.IsSubmitted())
	assert.Equal(t, "svy_a", s.Token())
	assert.Equal(t, "ana@example.com", s.Email())

	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].Text, "https://city.example/survey/svy_a")
}

func TestSurveyDispatcher_ReusesPendingSurvey(t *testing.T) {
	reporter := newReporter(t)
	accounts := &mockAccountRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*user.Account, error) { return reporter, nil },
	}
	surveys := newMockSurveyRepository()
	mailer := &recordingMailer{}
	d := newDispatcher(accounts, surveys, mailer)

	d.Dispatch(context.Background(), closedChange(reporter.ID()))
	d.Dispatch(context.Background(), closedChange(reporter.ID()))

	assert.Len(t, surveys.surveys, 1)
	require.Len(t, mailer.sent, 2)
	assert.Contains(t, mailer.sent[1].Text, "svy_a")
}

func TestSurveyDispatcher_SkipsSubmittedSurvey(t *testing.T) {
	reporter := newReporter(t)
	accounts := &mockAccountRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*user.Account, error) { return reporter, nil },
	}
	surveys := newMockSurveyRepository()
	answered, _ := report.NewSurvey("rpt_1", "svy_old", "ana@example.com", fixedNow)
	require.NoError(t, answered.Submit(5, "", fixedNow))
	surveys.surveys["rpt_1"] = answered
	mailer := &recordingMailer{}

	newDispatcher(accounts, surveys, mailer).Dispatch(context.Background(), closedChange(reporter.ID()))

	assert.Empty(t, mailer.sent)
	s, _ := surveys.GetByReportID(context.Background(), "rpt_1")
	assert.Same(t, answered, s)
}

func TestSurveyDispatcher_NoEmailNoSurvey(t *testing.T) {
	surveys := newMockSurveyRepository()
	mailer := &recordingMailer{}

	newDispatcher(&mockAccountRepository{}, surveys, mailer).Dispatch(context.Background(), closedChange("usr_missing"))

	assert.Empty(t, surveys.surveys)
	assert.Empty(t, mailer.sent)
}

func TestSurveyURL(t *testing.T) {
	assert.Equal(t, "https://x/s/tok", SurveyURL("https://x/s/", "tok"))
	assert.Equal(t, "https://x/s/tok", SurveyURL("https://x/s", "tok"))
}
