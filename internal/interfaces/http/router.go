package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/civictrack/civictrack/internal/infrastructure/ratelimit"
	"github.com/civictrack/civictrack/internal/interfaces/http/middleware"
	"github.com/civictrack/civictrack/internal/interfaces/http/routes"

	_ "github.com/civictrack/civictrack/docs"
)

// SetupRoutes installs the global middleware chain and configures all HTTP routes
func (c *Container) SetupRoutes() {
	cfg := c.cfg

	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.Metrics(c.metrics))

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c.engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)
	c.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})))
	if cfg.Server.IsDebug() {
		c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	routes.SetupReportRoutes(c.engine, &routes.ReportRouteConfig{
		ReportHandler:        c.hdlrs.reportHandler,
		SurveyHandler:        c.hdlrs.surveyHandler,
		StreamHandler:        c.hdlrs.streamHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
		RateLimiter:          c.rateLimiter,
		CreateLimit:          ratelimit.RateLimitConfig{RequestsPerHour: cfg.RateLimit.CreatePerHour},
		SurveyLimit:          ratelimit.RateLimitConfig{RequestsPerMinute: cfg.RateLimit.SurveyPerMinute},
	})

	routes.SetupSettingRoutes(c.engine, &routes.SettingRouteConfig{
		Handler:              c.hdlrs.settingHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}
