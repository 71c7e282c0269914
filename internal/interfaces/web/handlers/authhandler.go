package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userusecases "helpdesk/internal/application/user/usecases"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/shared/logger"
)

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type AuthHandler struct {
	authenticateUser userusecases.AuthenticateUserExecutor
	jwtService       *auth.JWTService
	cookieName       string
	cookieSecure     bool
	logger           logger.Interface
}

func NewAuthHandler(
	authenticateUser userusecases.AuthenticateUserExecutor,
	jwtService *auth.JWTService,
	cookieName string,
	cookieSecure bool,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		authenticateUser: authenticateUser,
		jwtService:       jwtService,
		cookieName:       cookieName,
		cookieSecure:     cookieSecure,
		logger:           logger,
	}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"Error": "Username and password are required.",
		})
		return
	}

	result, err := h.authenticateUser.Execute(c.Request.Context(), userusecases.AuthenticateUserCommand{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Error": "Invalid username or password.",
		})
		return
	}

	u := result.User
	token, err := h.jwtService.Generate(u.ID(), u.Username(), u.Role())
	if err != nil {
		h.logger.Errorw("failed to issue session token", "user_id", u.ID(), "error", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Error": "Could not start a session. Please try again.",
		})
		return
	}

	maxAge := int(h.jwtService.SessionTTL().Seconds())
	c.SetCookie(h.cookieName, token, maxAge, "/", "", h.cookieSecure, true)
	c.Redirect(http.StatusSeeOther, "/tickets")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
