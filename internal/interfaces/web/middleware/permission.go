package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/shared/logger"
)

// PermissionChecker is the casbin enforcer surface the middleware needs.
type PermissionChecker interface {
	Enforce(role, resource, action string) (bool, error)
}

type PermissionMiddleware struct {
	checker PermissionChecker
	logger  logger.Interface
}

func NewPermissionMiddleware(checker PermissionChecker, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{checker: checker, logger: logger}
}

// Require enforces that the session role may perform action on resource.
func (m *PermissionMiddleware) Require(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, _, role := SessionUser(c)

		allowed, err := m.checker.Enforce(role.String(), resource, action)
		if err != nil {
			m.logger.Errorw("permission check error",
				"role", role, "resource", resource, "action", action, "error", err)
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{
				"Message": "An internal error occurred. Please try again.",
			})
			c.Abort()
			return
		}

		if !allowed {
			c.HTML(http.StatusForbidden, "error.html", gin.H{
				"Message": "You do not have permission to perform this action.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
