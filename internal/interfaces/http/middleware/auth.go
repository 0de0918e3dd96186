package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/constants"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

// TokenVerifier turns a bearer token into the request's actor.
type TokenVerifier interface {
	Principal(token string) (*authorization.Principal, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("missing authorization token"))
			c.Abort()
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("invalid authorization header format"))
			c.Abort()
			return
		}

		principal, err := m.verifier.Principal(token)
		if err != nil {
			if errors.ShouldLogAuthError(err) {
				m.logger.Warnw("failed to verify token",
					"error", err,
					"security_event", errors.IsSecurityEvent(err),
					"client_ip", c.ClientIP())
			}
			if authErr := errors.GetAuthError(err); authErr != nil {
				utils.ErrorResponseWithError(c, authErr)
			} else {
				utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("invalid or expired token"))
			}
			c.Abort()
			return
		}

		utils.SetPrincipal(c, principal)
		c.Next()
	}
}

// OptionalAuth attaches the principal when a valid token is present and lets
// anonymous requests through untouched. An invalid token is treated as
// anonymous.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(constants.HeaderAuthorization))
		if !ok {
			c.Next()
			return
		}

		principal, err := m.verifier.Principal(token)
		if err == nil {
			utils.SetPrincipal(c, principal)
		} else {
			m.logger.Debugw("ignoring invalid optional token", "error", err)
		}

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
