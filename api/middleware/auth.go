// Package middleware holds the gin middleware guarding the scrape API:
// API-key authentication and per-identity rate limiting.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/cascadehq/cascade/models"
	"github.com/gin-gonic/gin"
)

// Auth returns API-key authentication middleware. A scrape request can
// tie up a headless browser for a minute, so anything beyond health
// checks sits behind a key once auth is enabled.
//
// Supported header styles:
//
//	X-API-Key: <key>
//	Authorization: Bearer <key>
//
// If apiKeys is empty, the middleware is a no-op (open access).
func Auth(apiKeys []string) gin.HandlerFunc {
	keySet := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k = strings.TrimSpace(k); k != "" {
			keySet[k] = struct{}{}
		}
	}
	if len(keySet) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := requestAPIKey(c)
		if key == "" {
			unauthorized(c, "missing API key: provide X-API-Key header or Authorization: Bearer <key>")
			return
		}
		if _, valid := keySet[key]; !valid {
			slog.Warn("rejected request with invalid API key", "ip", c.ClientIP(), "path", c.FullPath())
			unauthorized(c, "invalid API key")
			return
		}

		// Downstream rate limiting keys off this.
		c.Set("api_key", key)
		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ScrapeResponse{
		Success: false,
		Error: &models.ErrorDetail{
			Code:    models.ErrCodeUnauthorized,
			Message: msg,
		},
	})
}

// requestAPIKey tries X-API-Key first, then Authorization: Bearer.
func requestAPIKey(c *gin.Context) string {
	if key := c.GetHeader("X-API-Key"); key != "" {
		return key
	}
	if key, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok {
		return key
	}
	return ""
}
