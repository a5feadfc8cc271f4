package middleware

import (
	"net/http"
	"strings"

	"cardgame-api/internal/config"

	"github.com/gin-gonic/gin"
)

var localOriginPrefixes = []string{
	"http://localhost:",
	"http://127.0.0.1:",
	"http://[::1]:",
	"https://localhost:",
	"https://127.0.0.1:",
	"https://[::1]:",
}

// DevCORS lets a locally served frontend call the API during development.
// It does nothing outside APP_ENV=development.
func DevCORS(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := strings.TrimSpace(c.GetHeader("Origin"))
		if origin == "" || !cfg.IsDevelopment() {
			c.Next()
			return
		}

		if isLocalOrigin(origin) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Vary", "Origin")
			h.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Expose-Headers", RequestIDHeader)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func isLocalOrigin(origin string) bool {
	for _, p := range localOriginPrefixes {
		if strings.HasPrefix(origin, p) {
			return true
		}
	}
	return false
}
