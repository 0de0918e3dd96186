package routes

import (
	"github.com/gin-gonic/gin"

	adminHandlers "github.com/civictrack/civictrack/internal/interfaces/http/handlers/admin"
	"github.com/civictrack/civictrack/internal/interfaces/http/middleware"
	"github.com/civictrack/civictrack/internal/shared/authorization"
)

// SettingRouteConfig holds the configuration for setting routes
type SettingRouteConfig struct {
	Handler              *adminHandlers.SettingHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupSettingRoutes configures the report settings admin routes
func SetupSettingRoutes(engine *gin.Engine, config *SettingRouteConfig) {
	settings := engine.Group("/admin/settings")
	settings.Use(config.AuthMiddleware.RequireAuth())
	settings.Use(config.PermissionMiddleware.RequirePermission(authorization.ResourceSettings, authorization.ActionUpdate))
	{
		settings.GET("/report", config.Handler.GetReportSettings)
		settings.PUT("/report", config.Handler.UpdateReportSettings)
	}
}
