package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

// PermissionMiddleware gates routes that have no use case of their own to
// perform the policy check. Must run after RequireAuth.
type PermissionMiddleware struct {
	checker authorization.PermissionChecker
	logger  logger.Interface
}

func NewPermissionMiddleware(checker authorization.PermissionChecker, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		checker: checker,
		logger:  logger,
	}
}

func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := utils.GetPrincipal(c)
		if principal == nil {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
			c.Abort()
			return
		}

		allowed, err := m.checker.Enforce(principal.Role.String(), resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "account_id", principal.AccountID, "resource", resource, "action", action)
			utils.ErrorResponseWithError(c, errors.NewInternalError("permission check failed"))
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "account_id", principal.AccountID, "role", principal.Role, "resource", resource, "action", action)
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("insufficient permissions"))
			c.Abort()
			return
		}

		c.Next()
	}
}
