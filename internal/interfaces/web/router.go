// Package web wires the server-rendered form UI: gin engine, HTML templates,
// session middleware and the ticket/user handlers.
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/interfaces/web/handlers"
	"helpdesk/internal/interfaces/web/middleware"
	"helpdesk/internal/shared/logger"
)

type RouterConfig struct {
	Mode          string
	TemplatesGlob string
}

// NewRouter assembles the gin engine. All ticket and admin routes sit behind
// the session middleware; mutations additionally pass the permission check.
func NewRouter(
	cfg RouterConfig,
	session *middleware.SessionMiddleware,
	permissions *middleware.PermissionMiddleware,
	authHandler *handlers.AuthHandler,
	ticketHandler *handlers.TicketHandler,
	userHandler *handlers.UserHandler,
	log logger.Interface,
) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))

	glob := cfg.TemplatesGlob
	if glob == "" {
		glob = "internal/interfaces/web/templates/*.html"
	}
	router.LoadHTMLGlob(glob)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/tickets")
	})
	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	authed := router.Group("/", session.RequireSession())

	tickets := authed.Group("/tickets")
	tickets.GET("", permissions.Require("ticket", "read"), ticketHandler.List)
	tickets.GET("/new", permissions.Require("ticket", "create"), ticketHandler.NewForm)
	tickets.POST("", permissions.Require("ticket", "create"), ticketHandler.Create)
	tickets.GET("/:id", permissions.Require("ticket", "read"), ticketHandler.Detail)
	tickets.POST("/:id/start", permissions.Require("ticket", "start"), ticketHandler.Start)
	tickets.POST("/:id/conclude", permissions.Require("ticket", "conclude"), ticketHandler.Conclude)
	tickets.POST("/:id/return", permissions.Require("ticket", "return"), ticketHandler.Return)
	tickets.POST("/:id/finalize", permissions.Require("ticket", "finalize"), ticketHandler.Finalize)
	tickets.POST("/:id/comment", permissions.Require("ticket", "comment"), ticketHandler.Comment)

	admin := authed.Group("/admin")
	admin.GET("/users", permissions.Require("user", "read"), userHandler.List)
	admin.POST("/users", permissions.Require("user", "manage"), userHandler.Create)
	admin.POST("/users/:id/role", permissions.Require("user", "manage"), userHandler.ChangeRole)

	return router
}
