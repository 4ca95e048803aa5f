package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autocrm/internal/infrastructure/permission"
	"autocrm/internal/shared/constants"
	"autocrm/internal/shared/logger"
	"autocrm/internal/shared/utils"
)

// PermissionMiddleware answers role-level questions against the casbin policy
// set. Row-level questions (is this the customer's own ticket) stay in the use
// cases, which see the loaded aggregate.
type PermissionMiddleware struct {
	enforcer *permission.Enforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer *permission.Enforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.ContextKeyUserRole)
		if role == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		allowed, err := m.enforcer.Enforce(role, resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed",
				"error", err,
				"role", role,
				"resource", resource,
				"action", action)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied",
				"role", role,
				"resource", resource,
				"action", action)
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
