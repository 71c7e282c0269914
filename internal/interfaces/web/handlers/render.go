package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "helpdesk/internal/shared/errors"
)

// renderError shows the error page with the AppError's message, falling back
// to a generic line so internal details never reach the browser.
func renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "An internal error occurred. Please try again."

	if appErr := apperrors.GetAppError(err); appErr != nil {
		status = appErr.Code
		message = appErr.Message
	}

	c.HTML(status, "error.html", gin.H{"Message": message})
}
