package strategy

import (
	"context"
	"errors"

	"github.com/cascadehq/cascade/models"
)

// categorizeError folds a fetch or browser error into a coded
// ScrapeError. The code prefixes the attempt's failure reason so
// callers reading an attempt log can tell a timeout from a navigation
// failure without parsing transport-specific text.
func categorizeError(err error, msg string) *models.ScrapeError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewScrapeError(models.ErrCodeTimeout, "request canceled", err)
	default:
		return models.NewScrapeError(models.ErrCodeNavigation, msg, err)
	}
}

// browserError reports a browser that could not be launched or
// attached to. Kept distinct from categorizeError: a crashed browser
// is an environment problem, not a page problem.
func browserError(err error, msg string) *models.ScrapeError {
	return models.NewScrapeError(models.ErrCodeBrowserCrash, msg, err)
}
