package routes

import (
	"github.com/gin-gonic/gin"

	"autocrm/internal/interfaces/http/handlers"
	"autocrm/internal/interfaces/http/middleware"
)

// InviteRouteConfig holds dependencies for invite routes.
type InviteRouteConfig struct {
	InviteHandler        *handlers.InviteHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	RateLimiter          *middleware.RateLimitMiddleware // may be nil when rate limiting is disabled
}

// SetupInviteRoutes configures invite routes.
func SetupInviteRoutes(engine *gin.Engine, cfg *InviteRouteConfig) {
	invites := engine.Group("/api/invites")
	{
		// Check and accept run before the invitee has an account, so they
		// carry no auth. Both are rate limited to slow token guessing.
		invites.GET("/check/:token", withLimit(cfg.RateLimiter, "invite"), cfg.InviteHandler.CheckInvite)
		invites.POST("/accept", withLimit(cfg.RateLimiter, "invite"), cfg.InviteHandler.AcceptInvite)

		issue := invites.Group("")
		issue.Use(cfg.AuthMiddleware.RequireAuth())
		issue.Use(cfg.PermissionMiddleware.RequirePermission("invite", "create"))
		{
			issue.POST("/agent", cfg.InviteHandler.CreateAgentInvite)
			issue.POST("/customer", cfg.InviteHandler.CreateCustomerInvite)
		}
	}
}
