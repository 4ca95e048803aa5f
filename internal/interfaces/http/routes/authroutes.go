package routes

import (
	"github.com/gin-gonic/gin"

	"autocrm/internal/interfaces/http/handlers"
	"autocrm/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimitMiddleware // may be nil when rate limiting is disabled
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/api/auth")
	{
		auth.POST("/register", withLimit(cfg.RateLimiter, "auth"), cfg.AuthHandler.Register)
		auth.POST("/login", withLimit(cfg.RateLimiter, "auth"), cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.AuthHandler.RefreshToken)
		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.GetProfile)
	}
}

// withLimit applies the scoped rate limit when a limiter is configured.
func withLimit(limiter *middleware.RateLimitMiddleware, scope string) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return limiter.Limit(scope)
}
