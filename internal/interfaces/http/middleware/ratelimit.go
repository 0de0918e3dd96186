package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/civictrack/civictrack/internal/infrastructure/ratelimit"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

// RateLimiter throttles public endpoints per client IP.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		logger:  logger,
	}
}

// Limit enforces config per client IP within scope.
func (rl *RateLimiter) Limit(scope string, config ratelimit.RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		rl.check(c, scope, config)
	}
}

// LimitAnonymous applies config only to requests without a principal. It
// must run after OptionalAuth.
func (rl *RateLimiter) LimitAnonymous(scope string, config ratelimit.RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if utils.GetPrincipal(c) != nil {
			c.Next()
			return
		}
		rl.check(c, scope, config)
	}
}

func (rl *RateLimiter) check(c *gin.Context, scope string, config ratelimit.RateLimitConfig) {
	key := scope + ":" + c.ClientIP()

	allowed, err := rl.limiter.Allow(c.Request.Context(), key, config)
	if err != nil {
		// fail open when the limiter is unavailable
		rl.logger.Warnw("rate limiter unavailable, allowing request", "scope", scope, "error", err)
		c.Next()
		return
	}

	if !allowed {
		utils.ErrorResponseWithError(c, errors.NewRateLimitedError("rate limit exceeded, please try again later"))
		c.Abort()
		return
	}

	c.Next()
}
