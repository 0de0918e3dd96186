package http

import (
	"context"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/civictrack/civictrack/internal/infrastructure/auth"
	"github.com/civictrack/civictrack/internal/infrastructure/config"
	"github.com/civictrack/civictrack/internal/infrastructure/metrics"
	"github.com/civictrack/civictrack/internal/infrastructure/permission"
	"github.com/civictrack/civictrack/internal/infrastructure/pubsub"
	reportHandlers "github.com/civictrack/civictrack/internal/interfaces/http/handlers/report"
	"github.com/civictrack/civictrack/internal/interfaces/http/middleware"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// Container holds the infrastructure components, repositories, use cases and
// handlers of the HTTP service, wired together once at startup.
type Container struct {
	// Core infrastructure
	engine   *gin.Engine
	db       *gorm.DB
	cfg      *config.Config
	log      logger.Interface
	redis    *redis.Client
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	// Repositories
	repos *repositories

	// Infrastructure services
	svcs *infraServices

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter

	jwtSvc   *auth.JWTService
	enforcer *permission.Enforcer

	// Report event bus for cross-instance SSE relay; nil without redis
	eventBus *pubsub.RedisReportEventBus

	shutdownOnce sync.Once
}

// NewContainer creates a Container with all dependencies wired together.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine:   gin.New(),
		db:       db,
		cfg:      cfg,
		log:      log,
		registry: prometheus.NewRegistry(),
	}

	// Section 1: Infrastructure - Redis, repositories, auth, storage
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Report workflow services and use cases
	c.initUseCases()

	// Section 3: Handlers and request validators
	if err := reportHandlers.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register report validators: %w", err)
	}
	c.initHandlers()

	return c, nil
}

// Engine returns the gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown releases the redis connection. The database is closed by the caller.
func (c *Container) Shutdown(ctx context.Context) error {
	var err error
	c.shutdownOnce.Do(func() {
		if c.redis == nil {
			return
		}
		if closeErr := c.redis.Close(); closeErr != nil {
			err = fmt.Errorf("close redis: %w", closeErr)
			return
		}
		c.log.Infow("redis connection closed")
	})
	return err
}
