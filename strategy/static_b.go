package strategy

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/cascadehq/cascade/cleaner"
	"github.com/cascadehq/cascade/config"
	"github.com/cascadehq/cascade/models"
	"github.com/gocolly/colly/v2"
)

const staticBMinTextLen = 100

var _ Strategy = (*StaticB)(nil)

// StaticB fetches pages with a colly collector. It is tuned
// independently from static-A: a different client stack, cookie and
// redirect handling from colly, and noscript placeholder inspection
// when deciding whether a page needs script execution.
//
// It carries no explicit request timeout; the transport default
// applies.
type StaticB struct {
	userAgent string
}

// NewStaticB creates the static-B strategy.
func NewStaticB(cfg config.StrategyConfig) *StaticB {
	return &StaticB{userAgent: cfg.UserAgent}
}

func (s *StaticB) Name() string { return models.StrategyStaticB }

func (s *StaticB) RendersScripts() bool { return false }

// Scrape fetches targetURL with a fresh collector, checks whether the
// page is a script-gated placeholder (inspecting noscript blocks), and
// runs the shared extraction pipeline. Malformed image URLs are
// dropped silently.
func (s *StaticB) Scrape(ctx context.Context, targetURL string) Outcome {
	// A new collector per request: nothing is shared across calls.
	c := colly.NewCollector(
		colly.UserAgent(s.userAgent),
	)

	var rawHTML, finalURL string
	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		if ct := r.Headers.Get("Content-Type"); !isHTMLContentType(ct) {
			fetchErr = fmt.Errorf("static-B: non-HTML content type %q", ct)
			return
		}
		rawHTML = string(r.Body)
		finalURL = r.Request.URL.String()
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode > 0 {
			fetchErr = fmt.Errorf("static-B: HTTP %d: %w", r.StatusCode, err)
			return
		}
		fetchErr = fmt.Errorf("static-B: fetch failed: %w", err)
	})

	visitErr := c.Visit(targetURL)
	// OnError sees the response and records a richer error than the
	// bare status text Visit returns, so it takes precedence.
	if fetchErr != nil {
		return Failed(fetchErr.Error())
	}
	if visitErr != nil {
		return Failed(fmt.Sprintf("static-B: visit failed: %v", visitErr))
	}
	if rawHTML == "" {
		return Failed("static-B: empty response body")
	}

	prelim := cleaner.Normalize(rawHTML)
	if needs, reason := needsRendering(rawHTML, utf8.RuneCountInString(prelim), true); needs {
		return NeedsRendering(reason)
	}

	return extract(rawHTML, finalURL, staticBMinTextLen, false)
}
