package http

import (
	reportServices "github.com/civictrack/civictrack/internal/application/report/services"
	reportUsecases "github.com/civictrack/civictrack/internal/application/report/usecases"
	settingUsecases "github.com/civictrack/civictrack/internal/application/setting/usecases"
	userUsecases "github.com/civictrack/civictrack/internal/application/user/usecases"
	"github.com/civictrack/civictrack/internal/shared/biztime"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Settings
	settingProvider      *settingUsecases.SettingProvider
	updateReportSettings *settingUsecases.UpdateReportSettingsUseCase

	// Report commands
	createReport   *reportUsecases.CreateReportUseCase
	changeStatus   *reportUsecases.ChangeStatusUseCase
	setTriage      *reportUsecases.SetTriageUseCase
	assignReport   *reportUsecases.AssignReportUseCase
	scheduleReport *reportUsecases.ScheduleReportUseCase
	updateDistrict *reportUsecases.UpdateDistrictUseCase
	addEvidence    *reportUsecases.AddEvidenceUseCase
	addComment     *reportUsecases.AddCommentUseCase

	// Report queries
	getReport      *reportUsecases.GetReportUseCase
	listReports    *reportUsecases.ListReportsUseCase
	listMapMarkers *reportUsecases.ListMapMarkersUseCase
	listEvents     *reportUsecases.ListEventsUseCase
	listEvidence   *reportUsecases.ListEvidenceUseCase
	getReportStats *reportUsecases.GetReportStatsUseCase

	// Survey
	getSurvey    *reportUsecases.GetSurveyUseCase
	submitSurvey *reportUsecases.SubmitSurveyUseCase
}

// ============================================================
// Section 2: Report workflow services and use cases
// ============================================================

func (c *Container) initUseCases() {
	cfg := c.cfg
	log := c.log
	repos := c.repos
	svcs := c.svcs
	now := biztime.NowUTC

	settings := settingUsecases.NewSettingProvider(repos.settingRepo, cfg.Report, log)
	resolver := userUsecases.NewResolveReporterUseCase(repos.accountRepo, now, log)

	recorder := reportServices.NewEventRecorder(repos.eventRepo, svcs.publisher, log)
	runner := reportServices.NewAsyncRunner(cfg.Report.SideEffectTimeout(), c.metrics, log)
	notifier := reportServices.NewNotificationGateway(repos.accountRepo, settings, svcs.mailer, svcs.renderer, c.metrics, log)
	surveys := reportServices.NewSurveyDispatcher(repos.surveyRepo, repos.accountRepo, svcs.tokens, settings, svcs.mailer, svcs.renderer, now, log)

	c.ucs = &allUseCases{
		settingProvider:      settings,
		updateReportSettings: settingUsecases.NewUpdateReportSettingsUseCase(repos.settingRepo, now, log),

		createReport:   reportUsecases.NewCreateReportUseCase(repos.reportRepo, resolver, settings, recorder, svcs.tx, svcs.renderer, now, log),
		changeStatus:   reportUsecases.NewChangeStatusUseCase(repos.reportRepo, c.enforcer, recorder, notifier, surveys, runner, svcs.renderer, c.metrics, now, log),
		setTriage:      reportUsecases.NewSetTriageUseCase(repos.reportRepo, c.enforcer, recorder, now, log),
		assignReport:   reportUsecases.NewAssignReportUseCase(repos.reportRepo, repos.accountRepo, c.enforcer, recorder, svcs.renderer, now, log),
		scheduleReport: reportUsecases.NewScheduleReportUseCase(repos.reportRepo, c.enforcer, recorder, svcs.renderer, now, log),
		updateDistrict: reportUsecases.NewUpdateDistrictUseCase(repos.reportRepo, c.enforcer, settings, recorder, svcs.renderer, now, log),
		addEvidence:    reportUsecases.NewAddEvidenceUseCase(repos.reportRepo, repos.evidenceRepo, svcs.blobs, recorder, svcs.renderer, cfg.Report.MaxEvidenceBytes(), now, log),
		addComment:     reportUsecases.NewAddCommentUseCase(repos.reportRepo, recorder, svcs.renderer, now, log),

		getReport:      reportUsecases.NewGetReportUseCase(repos.reportRepo, now, log),
		listReports:    reportUsecases.NewListReportsUseCase(repos.reportRepo, c.enforcer, now, log),
		listMapMarkers: reportUsecases.NewListMapMarkersUseCase(repos.reportRepo, log),
		listEvents:     reportUsecases.NewListEventsUseCase(repos.reportRepo, repos.eventRepo, log),
		listEvidence:   reportUsecases.NewListEvidenceUseCase(repos.reportRepo, repos.evidenceRepo, log),
		getReportStats: reportUsecases.NewGetReportStatsUseCase(repos.reportRepo, c.enforcer, log),

		getSurvey:    reportUsecases.NewGetSurveyUseCase(repos.surveyRepo, repos.reportRepo, log),
		submitSurvey: reportUsecases.NewSubmitSurveyUseCase(repos.surveyRepo, repos.reportRepo, svcs.renderer, now, log),
	}
}
