package handler

import (
	"net/http"
	"time"

	"github.com/cascadehq/cascade/models"
	"github.com/gin-gonic/gin"
)

// Health returns a handler for GET /api/v1/health.
//
// Browsers are launched per scrape rather than pooled, so there is no
// utilisation to degrade on; the endpoint only proves the process is up.
func Health(startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:  "healthy",
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: "0.1.0",
		})
	}
}
