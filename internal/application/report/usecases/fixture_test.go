package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/civictrack/civictrack/internal/application/report/services"
	usercases "github.com/civictrack/civictrack/internal/application/user/usecases"
	"github.com/civictrack/civictrack/internal/domain/report"
	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
	"github.com/civictrack/civictrack/internal/domain/user"
	uservo "github.com/civictrack/civictrack/internal/domain/user/valueobjects"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/services/markdown"
)

var (
	testNow       = time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)
	happyPath     = []vo.ReportStatus{vo.StatusVerified, vo.StatusScheduled, vo.StatusInProgress, vo.StatusResolved, vo.StatusClosed, vo.StatusReopened}
	testDistricts = []string{"Centro", "Norte"}
)

type fixture struct {
	reports  *memReportRepository
	events   *memEventRepository
	evidence *memEvidenceRepository
	surveys  *memSurveyRepository
	accounts *memAccountRepository
	notifier *recordingNotifier
	issuer   *recordingSurveyIssuer
	blobs    *memBlobStore
	recorder *services.EventRecorder
	renderer markdown.Renderer
	log      logger.Interface

	operator *user.Account
	citizen  *user.Account
}

func newTestAccount(t *testing.T, email string, role authorization.UserRole) *user.Account {
	t.Helper()
	e, err := uservo.NewEmail(email)
	require.NoError(t, err)
	a, err := user.NewAccount(e, "Test "+role.String(), role, testNow.Add(-24*time.Hour))
	require.NoError(t, err)
	return a
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		reports:  newMemReportRepository(),
		events:   &memEventRepository{},
		evidence: &memEvidenceRepository{},
		surveys:  newMemSurveyRepository(),
		notifier: &recordingNotifier{},
		issuer:   &recordingSurveyIssuer{},
		blobs:    &memBlobStore{},
		renderer: markdown.NewRenderer(),
		log:      logger.NewNop(),
		operator: newTestAccount(t, "operator@city.example", authorization.RoleOperator),
		citizen:  newTestAccount(t, "citizen@example.com", authorization.RoleCitizen),
	}
	f.accounts = newMemAccountRepository(f.operator, f.citizen)
	f.recorder = services.NewEventRecorder(f.events, nil, f.log)
	return f
}

func principalOf(a *user.Account) *authorization.Principal {
	return &authorization.Principal{AccountID: a.ID(), Role: a.Role()}
}

// seedReport stores a citizen report already moved to status along the
// happy path.
func (f *fixture) seedReport(t *testing.T, status vo.ReportStatus) *report.Report {
	t.Helper()
	loc, err := vo.NewLocation(4.6097, -74.0817)
	require.NoError(t, err)
	r, err := report.NewReport(report.NewReportParams{
		Category:    vo.CategoryPothole,
		Description: "Deep pothole in front of the school",
		Location:    loc,
		ReporterID:  f.citizen.ID(),
	}, testNow.Add(-48*time.Hour))
	require.NoError(t, err)

	at := testNow.Add(-47 * time.Hour)
	for _, next := range happyPath {
		if r.Status() == status {
			break
		}
		require.NoError(t, r.TransitionTo(next, f.operator.ID(), "seed", at))
		at = at.Add(time.Hour)
	}
	require.Equal(t, status, r.Status())
	require.NoError(t, f.reports.Create(context.Background(), r))
	return r
}

func (f *fixture) changeStatus(issuer SurveyIssuer) *ChangeStatusUseCase {
	if issuer == nil {
		issuer = f.issuer
	}
	return NewChangeStatusUseCase(
		f.reports,
		policyChecker{},
		f.recorder,
		f.notifier,
		issuer,
		services.NewSyncRunner(f.log),
		f.renderer,
		services.NopMetrics(),
		fixedClock(testNow),
		f.log,
	)
}

func (f *fixture) createReport(districts []string) *CreateReportUseCase {
	return NewCreateReportUseCase(
		f.reports,
		usercases.NewResolveReporterUseCase(f.accounts, fixedClock(testNow), f.log),
		staticSettings{districts: districts},
		f.recorder,
		passthroughTx{},
		f.renderer,
		fixedClock(testNow),
		f.log,
	)
}

func (f *fixture) setTriage() *SetTriageUseCase {
	return NewSetTriageUseCase(f.reports, policyChecker{}, f.recorder, fixedClock(testNow), f.log)
}

func (f *fixture) assign() *AssignReportUseCase {
	return NewAssignReportUseCase(f.reports, f.accounts, policyChecker{}, f.recorder, f.renderer, fixedClock(testNow), f.log)
}

func (f *fixture) schedule() *ScheduleReportUseCase {
	return NewScheduleReportUseCase(f.reports, policyChecker{}, f.recorder, f.renderer, fixedClock(testNow), f.log)
}

func (f *fixture) updateDistrict() *UpdateDistrictUseCase {
	return NewUpdateDistrictUseCase(f.reports, policyChecker{}, staticSettings{districts: testDistricts}, f.recorder, f.renderer, fixedClock(testNow), f.log)
}

func (f *fixture) addEvidence() *AddEvidenceUseCase {
	return NewAddEvidenceUseCase(f.reports, f.evidence, f.blobs, f.recorder, f.renderer, 1<<20, fixedClock(testNow), f.log)
}

func (f *fixture) submitSurvey() *SubmitSurveyUseCase {
	return NewSubmitSurveyUseCase(f.surveys, f.reports, f.renderer, fixedClock(testNow), f.log)
}
