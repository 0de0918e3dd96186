package http

import (
	"context"

	"github.com/civictrack/civictrack/internal/interfaces/http/handlers"
	adminHandlers "github.com/civictrack/civictrack/internal/interfaces/http/handlers/admin"
	"github.com/civictrack/civictrack/internal/interfaces/http/handlers/common"
	reportHandlers "github.com/civictrack/civictrack/internal/interfaces/http/handlers/report"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler  *handlers.HealthHandler
	reportHandler  *reportHandlers.ReportHandler
	surveyHandler  *reportHandlers.SurveyHandler
	streamHandler  *reportHandlers.StreamHandler
	settingHandler *adminHandlers.SettingHandler
}

// ============================================================
// Section 3: Handlers
// ============================================================

func (c *Container) initHandlers() {
	log := c.log
	ucs := c.ucs

	checks := map[string]handlers.Pinger{}
	if sqlDB, err := c.db.DB(); err == nil {
		checks["database"] = sqlDB
	} else {
		log.Warnw("database handle unavailable for health checks", "error", err)
	}
	if c.redis != nil {
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		})
	}

	// subscriber stays a nil interface without redis; the stream answers 503
	var subscriber reportHandlers.ReportEventSubscriber
	if c.eventBus != nil {
		subscriber = c.eventBus
	}

	c.hdlrs = &allHandlers{
		healthHandler: handlers.NewHealthHandler(checks, log),
		reportHandler: reportHandlers.NewReportHandler(reportHandlers.Handlers{
			Create:       ucs.createReport,
			ChangeStatus: ucs.changeStatus,
			SetTriage:    ucs.setTriage,
			Assign:       ucs.assignReport,
			Schedule:     ucs.scheduleReport,
			District:     ucs.updateDistrict,
			AddEvidence:  ucs.addEvidence,
			AddComment:   ucs.addComment,
			Get:          ucs.getReport,
			List:         ucs.listReports,
			Map:          ucs.listMapMarkers,
			Events:       ucs.listEvents,
			Evidence:     ucs.listEvidence,
			Stats:        ucs.getReportStats,
		}, log),
		surveyHandler: reportHandlers.NewSurveyHandler(ucs.getSurvey, ucs.submitSurvey, log),
		streamHandler: reportHandlers.NewStreamHandler(
			subscriber,
			common.NewSSEStream(common.SSEKeepaliveInterval, log),
			log,
		),
		settingHandler: adminHandlers.NewSettingHandler(ucs.settingProvider, ucs.updateReportSettings, log),
	}
}
