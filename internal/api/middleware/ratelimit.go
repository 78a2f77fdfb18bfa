package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/riftline/gamedig/internal/api/models"
	"github.com/riftline/gamedig/internal/ratelimit"
)

// RateLimit rejects requests once the caller's source IP (or the global
// ceiling) has exhausted its token bucket. A nil limiter always allows.
func RateLimit(l *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
