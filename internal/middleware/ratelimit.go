package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/intuitive-care/operadoras-api/internal/handlers"
	"github.com/intuitive-care/operadoras-api/internal/services"
)

// RateLimit rejects clients over their budget with 429 and a Retry-After
// header in whole seconds. Clients are keyed by IP.
func RateLimit(limiter *services.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := limiter.Allow(c.Request.Context(), c.ClientIP())
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.JSON(http.StatusTooManyRequests, handlers.ErrorResponse{Error: handlers.MsgRateLimitExceeded})
			c.Abort()
			return
		}
		c.Next()
	}
}
