package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"autocrm/internal/infrastructure/ratelimit"
	"autocrm/internal/shared/utils"
)

// RateLimitMiddleware enforces a per-IP request budget on the routes it wraps.
// It fails open: if the limiter backend is unreachable the request proceeds.
type RateLimitMiddleware struct {
	limiter ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

func (m *RateLimitMiddleware) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", scope, c.ClientIP())

		allowed, err := m.limiter.Allow(c.Request.Context(), key)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
