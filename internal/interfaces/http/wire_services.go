package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	reportServices "github.com/civictrack/civictrack/internal/application/report/services"
	domainPermission "github.com/civictrack/civictrack/internal/domain/permission"
	"github.com/civictrack/civictrack/internal/infrastructure/auth"
	"github.com/civictrack/civictrack/internal/infrastructure/config"
	"github.com/civictrack/civictrack/internal/infrastructure/email"
	"github.com/civictrack/civictrack/internal/infrastructure/metrics"
	"github.com/civictrack/civictrack/internal/infrastructure/permission"
	"github.com/civictrack/civictrack/internal/infrastructure/pubsub"
	"github.com/civictrack/civictrack/internal/infrastructure/ratelimit"
	"github.com/civictrack/civictrack/internal/infrastructure/storage"
	"github.com/civictrack/civictrack/internal/infrastructure/token"
	"github.com/civictrack/civictrack/internal/interfaces/http/middleware"
	"github.com/civictrack/civictrack/internal/shared/biztime"
	shareddb "github.com/civictrack/civictrack/internal/shared/db"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/services/markdown"
)

const bucketCheckTimeout = 10 * time.Second

// infraServices holds the adapters the report workflow depends on.
type infraServices struct {
	blobs     reportServices.BlobStore
	mailer    reportServices.MailSender
	publisher reportServices.EventPublisher
	tokens    reportServices.TokenGenerator
	renderer  markdown.Renderer
	tx        *shareddb.TransactionManager
	limiter   ratelimit.RateLimiter
}

// ============================================================
// Section 1: Infrastructure - Redis, repositories, auth, storage
// ============================================================

// initInfrastructure connects redis when enabled and builds the repositories,
// auth services and adapters the use cases need.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Enabled {
		client, err := initRedis(cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
		c.eventBus = pubsub.NewRedisReportEventBus(client, log)
	}

	c.metrics = metrics.NewMetrics(c.registry)
	c.repos = newRepositories(c.db, log)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, biztime.NowUTC)

	enforcer, err := permission.NewEnforcer(c.db, log)
	if err != nil {
		return fmt.Errorf("init permission enforcer: %w", err)
	}
	if err := enforcer.SeedPolicies(domainPermission.DefaultPolicies()); err != nil {
		return fmt.Errorf("seed permission policies: %w", err)
	}
	c.enforcer = enforcer

	blobs, err := initBlobStore(cfg, log)
	if err != nil {
		return err
	}

	svcs := &infraServices{
		blobs:    blobs,
		mailer:   initMailer(cfg, log),
		tokens:   token.NewTokenGenerator(),
		renderer: markdown.NewRenderer(),
		tx:       shareddb.NewTransactionManager(c.db),
	}
	// publisher stays a nil interface without redis so the recorder skips it
	if c.eventBus != nil {
		svcs.publisher = c.eventBus
		svcs.limiter = ratelimit.NewRedisRateLimiter(c.redis, biztime.NowUTC)
	} else {
		svcs.limiter = ratelimit.NewMemoryRateLimiter(biztime.NowUTC)
	}
	c.svcs = svcs

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)
	c.rateLimiter = middleware.NewRateLimiter(svcs.limiter, log)

	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

func initBlobStore(cfg *config.Config, log logger.Interface) (*storage.MinioBlobStore, error) {
	store, err := storage.NewMinioBlobStore(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("init evidence storage: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), bucketCheckTimeout)
	defer cancel()
	if err := store.EnsureBucket(ctx); err != nil {
		// uploads fail until the store is reachable; the rest of the API works
		log.Warnw("evidence bucket not available", "bucket", cfg.Storage.Bucket, "error", err)
	}
	return store, nil
}

func initMailer(cfg *config.Config, log logger.Interface) reportServices.MailSender {
	if !cfg.Email.Enabled {
		log.Infow("email delivery disabled, reporter mail will be logged only")
		return email.NewLogMailSender(log)
	}
	return email.NewSMTPMailSender(email.SMTPConfigFrom(cfg.Email))
}
