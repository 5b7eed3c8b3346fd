package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/cascadehq/cascade/config"
	"github.com/cascadehq/cascade/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Limiter eviction: an identity idle past limiterTTL is dropped on the
// next sweep so the map never grows with one-off clients.
const (
	limiterTTL = 1 * time.Hour
	sweepEvery = 5 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit returns per-identity token-bucket rate limiting middleware
// powered by golang.org/x/time/rate. Identity is the API key set by
// Auth, or the client IP when auth is off.
//
// The default bucket is small on purpose: every request past the
// static tier holds a freshly launched browser, so a burst of scrapes
// is a burst of Chrome processes.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*limiterEntry)

	getLimiter := func(identity string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		entry, ok := limiters[identity]
		if !ok {
			entry = &limiterEntry{
				limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
			}
			limiters[identity] = entry
		}
		entry.lastSeen = time.Now()
		return entry.limiter
	}

	go func() {
		ticker := time.NewTicker(sweepEvery)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-limiterTTL)
			mu.Lock()
			for id, entry := range limiters {
				if entry.lastSeen.Before(cutoff) {
					delete(limiters, id)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		identity, exists := c.Get("api_key")
		if !exists {
			identity = c.ClientIP()
		}

		if !getLimiter(identity.(string)).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ScrapeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeRateLimited,
					Message: "rate limit exceeded, please slow down",
				},
			})
			return
		}

		c.Next()
	}
}
