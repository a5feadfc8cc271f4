package handlers

import "github.com/gin-gonic/gin"

// requestIDFromContext returns the ID set by middleware.RequestID, or "-".
func requestIDFromContext(c *gin.Context) string {
	if v, ok := c.Get("requestID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "-"
}
