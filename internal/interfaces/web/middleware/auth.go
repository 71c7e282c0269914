package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/logger"
)

// Context keys set by the session middleware.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxUserRole = "user_role"
)

type SessionMiddleware struct {
	jwtService *auth.JWTService
	cookieName string
	logger     logger.Interface
}

func NewSessionMiddleware(jwtService *auth.JWTService, cookieName string, logger logger.Interface) *SessionMiddleware {
	return &SessionMiddleware{
		jwtService: jwtService,
		cookieName: cookieName,
		logger:     logger,
	}
}

// RequireSession verifies the session cookie and loads the user identity
// into the request context. Browsers without a valid session are sent to the
// login page.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("invalid session token", "error", err)
			c.SetCookie(m.cookieName, "", -1, "/", "", false, true)
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxUserRole, claims.Role)
		c.Next()
	}
}

// SessionUser reads the identity the session middleware stored.
func SessionUser(c *gin.Context) (userID uint, username string, role authorization.UserRole) {
	if v, ok := c.Get(CtxUserID); ok {
		userID, _ = v.(uint)
	}
	if v, ok := c.Get(CtxUsername); ok {
		username, _ = v.(string)
	}
	if v, ok := c.Get(CtxUserRole); ok {
		role, _ = v.(authorization.UserRole)
	}
	return userID, username, role
}
