package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kondate-app/backend/internal/service"
)

// RateLimitMiddleware enforces a per-identity policy on a route. It is used
// as the short anti-abuse guard in front of the generation endpoint; the
// user-facing daily quota is checked inside the proposal pipeline.
func RateLimitMiddleware(limiter service.Limiter, route string, policy service.RateLimitPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := limiter.CheckAndRecord(c.Request.Context(), Identity(c), route, policy)
		if err != nil {
			// A broken limiter should not take the route down with it.
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(policy.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.Reset.Unix(), 10))

		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("rate limit of %d requests per %v exceeded", policy.Limit, policy.Window),
				"retry_after": int(time.Until(result.Reset).Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
