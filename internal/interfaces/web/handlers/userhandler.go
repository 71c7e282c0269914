package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	userusecases "helpdesk/internal/application/user/usecases"
	"helpdesk/internal/interfaces/web/middleware"
	"helpdesk/internal/shared/biztime"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

// UserHandler backs the admin user management page.
type UserHandler struct {
	registerUser   userusecases.RegisterUserExecutor
	listUsers      userusecases.ListUsersExecutor
	changeUserRole userusecases.ChangeUserRoleExecutor
	logger         logger.Interface
}

func NewUserHandler(
	registerUser userusecases.RegisterUserExecutor,
	listUsers userusecases.ListUsersExecutor,
	changeUserRole userusecases.ChangeUserRoleExecutor,
	logger logger.Interface,
) *UserHandler {
	return &UserHandler{
		registerUser:   registerUser,
		listUsers:      listUsers,
		changeUserRole: changeUserRole,
		logger:         logger,
	}
}

type userRow struct {
	ID        uint
	Username  string
	Email     string
	Company   string
	Role      string
	CreatedAt string
}

func (h *UserHandler) List(c *gin.Context) {
	h.renderList(c, http.StatusOK, "")
}

func (h *UserHandler) Create(c *gin.Context) {
	_, err := h.registerUser.Execute(c.Request.Context(), userusecases.RegisterUserCommand{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
		Email:    c.PostForm("email"),
		Company:  c.PostForm("company"),
		Role:     c.PostForm("role"),
	})
	if err != nil {
		if appErr := apperrors.GetAppError(err); appErr != nil {
			h.renderList(c, appErr.Code, appErr.Message)
			return
		}
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/users")
}

func (h *UserHandler) ChangeRole(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || userID == 0 {
		renderError(c, apperrors.NewBadRequestError("invalid user id"))
		return
	}

	_, err = h.changeUserRole.Execute(c.Request.Context(), userusecases.ChangeUserRoleCommand{
		UserID: uint(userID),
		Role:   c.PostForm("role"),
	})
	if err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/users")
}

func (h *UserHandler) renderList(c *gin.Context, status int, errMsg string) {
	_, username, role := middleware.SessionUser(c)

	result, err := h.listUsers.Execute(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}

	rows := make([]userRow, 0, len(result.Users))
	for _, u := range result.Users {
		email := ""
		if u.Email() != nil {
			email = u.Email().String()
		}
		rows = append(rows, userRow{
			ID:        u.ID(),
			Username:  u.Username(),
			Email:     email,
			Company:   u.Company(),
			Role:      u.Role().String(),
			CreatedAt: biztime.FormatHuman(u.CreatedAt()),
		})
	}

	c.HTML(status, "users.html", gin.H{
		"Username": username,
		"IsAgent":  role.IsAgent(),
		"IsAdmin":  role.IsAdmin(),
		"Users":    rows,
		"Error":    errMsg,
	})
}
