package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/civictrack/civictrack/internal/infrastructure/ratelimit"
	reportHandlers "github.com/civictrack/civictrack/internal/interfaces/http/handlers/report"
	"github.com/civictrack/civictrack/internal/interfaces/http/middleware"
	"github.com/civictrack/civictrack/internal/shared/authorization"
)

// ReportRouteConfig holds the configuration for report routes
type ReportRouteConfig struct {
	ReportHandler        *reportHandlers.ReportHandler
	SurveyHandler        *reportHandlers.SurveyHandler
	StreamHandler        *reportHandlers.StreamHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	RateLimiter          *middleware.RateLimiter
	CreateLimit          ratelimit.RateLimitConfig
	SurveyLimit          ratelimit.RateLimitConfig
}

// SetupReportRoutes configures the incident report routes. Staff-only
// operations authenticate here and authorize inside the use cases.
func SetupReportRoutes(engine *gin.Engine, config *ReportRouteConfig) {
	reports := engine.Group("/reports")
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Anonymous callers may submit as guests; only they are rate limited
		reports.POST("",
			config.AuthMiddleware.OptionalAuth(),
			config.RateLimiter.LimitAnonymous("report_create", config.CreateLimit),
			config.ReportHandler.CreateReport)
		reports.GET("",
			config.AuthMiddleware.RequireAuth(),
			config.ReportHandler.ListReports)

		reports.GET("/mine",
			config.AuthMiddleware.RequireAuth(),
			config.ReportHandler.ListMyReports)
		reports.GET("/map",
			config.ReportHandler.ListMapMarkers)
		reports.GET("/stats",
			config.AuthMiddleware.RequireAuth(),
			config.ReportHandler.GetStats)
		reports.GET("/events/stream",
			config.AuthMiddleware.RequireAuth(),
			config.PermissionMiddleware.RequirePermission(authorization.ResourceReport, authorization.ActionStream),
			config.StreamHandler.StreamEvents)

		// Survey links are public; the token is the credential
		survey := reports.Group("/survey")
		survey.Use(config.RateLimiter.Limit("survey", config.SurveyLimit))
		{
			survey.GET("/:token", config.SurveyHandler.GetSurvey)
			survey.POST("/:token", config.SurveyHandler.SubmitSurvey)
		}

		// Generic parameterized routes (must come LAST)
		byID := reports.Group("/:id")
		byID.Use(config.AuthMiddleware.RequireAuth())
		{
			byID.GET("", config.ReportHandler.GetReport)
			byID.PATCH("/status", config.ReportHandler.ChangeStatus)
			byID.PATCH("/triage", config.ReportHandler.SetTriage)
			byID.PATCH("/assignment", config.ReportHandler.Assign)
			byID.PATCH("/schedule", config.ReportHandler.Schedule)
			byID.PATCH("/district", config.ReportHandler.UpdateDistrict)
			byID.POST("/evidence", config.ReportHandler.AddEvidence)
			byID.GET("/evidence", config.ReportHandler.ListEvidence)
			byID.POST("/comments", config.ReportHandler.AddComment)
			byID.GET("/events", config.ReportHandler.ListEvents)
		}
	}
}
