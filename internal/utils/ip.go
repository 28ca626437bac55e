package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealIP extracts the client IP, preferring headers set by a reverse proxy
func GetRealIP(c *gin.Context) string {
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}

	// X-Forwarded-For is "client, proxy1, proxy2"; the leftmost entry is the client
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		if client, _, _ := strings.Cut(forwardedFor, ","); strings.TrimSpace(client) != "" {
			return strings.TrimSpace(client)
		}
	}

	return c.ClientIP()
}
