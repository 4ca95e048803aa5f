package routes

import (
	"github.com/gin-gonic/gin"

	"autocrm/internal/interfaces/http/handlers"
	"autocrm/internal/interfaces/http/middleware"
)

// StreamRouteConfig holds dependencies for the SSE stream routes.
type StreamRouteConfig struct {
	StreamHandler  *handlers.StreamHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupStreamRoutes configures the server-sent event stream routes.
func SetupStreamRoutes(engine *gin.Engine, cfg *StreamRouteConfig) {
	stream := engine.Group("/api/stream")
	stream.Use(cfg.AuthMiddleware.RequireAuth())
	{
		stream.GET("/tickets", cfg.StreamHandler.StreamTickets)
	}
}
