package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "autocrm/internal/interfaces/http/handlers/ticket"
	"autocrm/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	AttachmentHandler    *tickethandlers.AttachmentHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupTicketRoutes(engine *gin.Engine, cfg *TicketRouteConfig) {
	perm := cfg.PermissionMiddleware

	tickets := engine.Group("/api/tickets")
	tickets.Use(cfg.AuthMiddleware.RequireAuth())
	{
		// Specific paths must be registered before /:id.
		tickets.GET("/stats",
			perm.RequirePermission("stats", "read"),
			cfg.TicketHandler.GetStats)

		tickets.POST("",
			perm.RequirePermission("ticket", "create"),
			cfg.TicketHandler.CreateTicket)
		tickets.GET("",
			perm.RequirePermission("ticket", "read"),
			cfg.TicketHandler.ListTickets)

		tickets.PATCH("/:id/status",
			perm.RequirePermission("ticket", "change_status"),
			cfg.TicketHandler.ChangeStatus)
		tickets.PATCH("/:id/priority",
			perm.RequirePermission("ticket", "change_priority"),
			cfg.TicketHandler.ChangePriority)
		tickets.PATCH("/:id/category",
			perm.RequirePermission("ticket", "change_category"),
			cfg.TicketHandler.ChangeCategory)
		tickets.POST("/:id/assign",
			perm.RequirePermission("ticket", "assign"),
			cfg.TicketHandler.AssignTicket)

		tickets.POST("/:id/messages",
			perm.RequirePermission("message", "create"),
			cfg.TicketHandler.AddMessage)
		tickets.GET("/:id/messages",
			perm.RequirePermission("message", "read"),
			cfg.TicketHandler.ListMessages)

		tickets.POST("/:id/attachments",
			perm.RequirePermission("attachment", "create"),
			cfg.AttachmentHandler.Upload)
		tickets.GET("/:id/attachments",
			perm.RequirePermission("attachment", "read"),
			cfg.AttachmentHandler.List)

		tickets.GET("/:id",
			perm.RequirePermission("ticket", "read"),
			cfg.TicketHandler.GetTicket)
		tickets.PATCH("/:id",
			perm.RequirePermission("ticket", "update"),
			cfg.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id",
			perm.RequirePermission("ticket", "delete"),
			cfg.TicketHandler.DeleteTicket)
	}

	attachments := engine.Group("/api/attachments")
	{
		// Download is authorized by the signed query string, not a bearer
		// token, so plain <a href> links keep working.
		attachments.GET("/:sid/download", cfg.AttachmentHandler.Download)

		attachments.GET("/:sid/url",
			cfg.AuthMiddleware.RequireAuth(),
			perm.RequirePermission("attachment", "read"),
			cfg.AttachmentHandler.GetURL)
	}
}
