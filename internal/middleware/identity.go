package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity returns the stable rate-limit key for the current request: the
// authenticated user's ID when present, otherwise a key derived from the
// first address in the X-Forwarded-For chain, otherwise "unknown".
func Identity(c *gin.Context) string {
	if id := UserID(c); id != uuid.Nil {
		return "user:" + id.String()
	}
	if ip := ForwardedIP(c); ip != "" {
		return "ip:" + ip
	}
	return "unknown"
}

// ForwardedIP extracts the first client IP from the X-Forwarded-For header.
func ForwardedIP(c *gin.Context) string {
	forwarded := c.GetHeader("X-Forwarded-For")
	if forwarded == "" {
		return ""
	}
	first := strings.SplitN(forwarded, ",", 2)[0]
	return strings.TrimSpace(first)
}
