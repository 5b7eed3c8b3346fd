// Package api wires the HTTP surface: routing, auth, and rate limiting
// around the scrape orchestrator.
package api

import (
	"time"

	"github.com/cascadehq/cascade/api/handler"
	"github.com/cascadehq/cascade/api/middleware"
	"github.com/cascadehq/cascade/cleaner"
	"github.com/cascadehq/cascade/config"
	"github.com/cascadehq/cascade/strategy"
	"github.com/gin-gonic/gin"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// The health endpoint sits outside auth so uptime checks never need a key.
func NewRouter(o *strategy.Orchestrator, cl *cleaner.Cleaner, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.POST("/scrape", handler.Scrape(o, cl))

	return r
}
