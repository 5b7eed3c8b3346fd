package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cascadehq/cascade/cleaner"
	"github.com/cascadehq/cascade/models"
	"github.com/cascadehq/cascade/strategy"
	"github.com/gin-gonic/gin"
)

// Scrape returns a handler for POST /api/v1/scrape.
//
// Flow:
//  1. Parse & validate request, apply defaults.
//  2. Orchestrator.Run → text, images, final URL   (records fetch_ms)
//  3. Markdown rendition when requested            (records format_ms)
//  4. Fill tokens + timing, return 200.
//
// crawl_depth and search_depth are bound from the request but never
// consulted; every request scrapes exactly one page.
func Scrape(o *strategy.Orchestrator, cl *cleaner.Cleaner) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ScrapeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		fetchStart := time.Now()
		run, err := o.Run(c.Request.Context(), req.URL, req.Strategy)
		fetchMs := time.Since(fetchStart).Milliseconds()

		if err != nil {
			respondScrapeError(c, err, models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
				FetchMs: fetchMs,
			})
			return
		}

		resp := models.ScrapeResponse{
			Success:     true,
			TextContent: run.Result.TextContent,
			Images:      run.Result.Images,
			FinalURL:    run.Result.FinalURL,
			Strategy:    run.StrategyLabel,
			Tokens:      models.TokenInfo{Estimate: cleaner.EstimateTokens(run.Result.TextContent)},
		}

		var formatMs int64
		if req.OutputFormat == "markdown" {
			formatStart := time.Now()
			md, mdErr := cl.Markdown(run.Result.ContentHTML, run.Result.FinalURL, req.CSSSelector)
			formatMs = time.Since(formatStart).Milliseconds()
			if mdErr != nil {
				// Markdown is a formatting extra; the scrape itself
				// succeeded, so degrade to text rather than failing.
				slog.Warn("markdown conversion failed, returning text only",
					"url", req.URL, "error", mdErr)
			} else {
				resp.Content = md
			}
		}

		resp.Timing = models.TimingInfo{
			TotalMs:  time.Since(totalStart).Milliseconds(),
			FetchMs:  fetchMs,
			FormatMs: formatMs,
		}

		c.JSON(http.StatusOK, resp)
	}
}

// respondScrapeError maps orchestration errors to HTTP status codes and
// writes a structured JSON error response.
func respondScrapeError(c *gin.Context, err error, timing models.TimingInfo) {
	var (
		verr *models.ValidationError
		exh  *models.ExhaustedError
		sfe  *models.StrategyFailedError
	)

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.ScrapeResponse{
			Success: false,
			Error: &models.ErrorDetail{
				Code:    models.ErrCodeInvalidInput,
				Message: verr.Reason,
			},
			Timing: timing,
		})

	case errors.As(err, &exh):
		c.JSON(http.StatusBadGateway, models.ScrapeResponse{
			Success:  false,
			Attempts: exh.Attempts,
			Error: &models.ErrorDetail{
				Code:    models.ErrCodeExhausted,
				Message: exh.Error(),
			},
			Timing: timing,
		})

	case errors.As(err, &sfe):
		c.JSON(http.StatusBadGateway, models.ScrapeResponse{
			Success: false,
			Error: &models.ErrorDetail{
				Code:    models.ErrCodeStrategyFailed,
				Message: sfe.Error(),
			},
			Timing: timing,
		})

	default:
		c.JSON(http.StatusInternalServerError, models.ScrapeResponse{
			Success: false,
			Error: &models.ErrorDetail{
				Code:    models.ErrCodeInternal,
				Message: err.Error(),
			},
			Timing: timing,
		})
	}
}
