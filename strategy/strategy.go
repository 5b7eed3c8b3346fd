// Package strategy implements tiered page content extraction: two
// static HTML fetchers and two script-executing browser renderers
// behind one contract, plus the orchestrator that sequences them.
package strategy

import (
	"context"

	"github.com/cascadehq/cascade/config"
	"github.com/cascadehq/cascade/models"
)

// OutcomeKind tags the result of a single strategy invocation.
type OutcomeKind int

const (
	// OutcomeSuccess means the strategy produced usable content.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeNeedsRendering means the page appears to gate its content
	// behind script execution. Only static strategies produce it; the
	// orchestrator consumes it to escalate, it never reaches callers
	// as an error of its own.
	OutcomeNeedsRendering

	// OutcomeFailed means the attempt failed: network error, timeout,
	// wrong content type, or below-threshold text.
	OutcomeFailed
)

// ScrapedResult is the product of one successful strategy invocation.
// The caller owns it after return; strategies keep no reference.
type ScrapedResult struct {
	// TextContent is the normalized readable text of the page.
	TextContent string

	// Images lists the page's images in document order.
	Images []models.Image

	// FinalURL is the page URL after redirects, the base used for
	// resolving relative image references.
	FinalURL string

	// ContentHTML is the outer HTML of the extracted content region,
	// kept for the markdown formatting layer. Not part of the wire
	// result.
	ContentHTML string
}

// Outcome is the tagged result of Strategy.Scrape. Exactly one of
// Result (success) or Reason (non-success) is meaningful.
type Outcome struct {
	Kind   OutcomeKind
	Result *ScrapedResult
	Reason string
}

// Success wraps a result in a success outcome.
func Success(res *ScrapedResult) Outcome {
	return Outcome{Kind: OutcomeSuccess, Result: res}
}

// NeedsRendering signals that the page requires script execution.
func NeedsRendering(reason string) Outcome {
	return Outcome{Kind: OutcomeNeedsRendering, Reason: reason}
}

// Failed reports a failed attempt.
func Failed(reason string) Outcome {
	return Outcome{Kind: OutcomeFailed, Reason: reason}
}

// Strategy is one interchangeable way of extracting readable content
// from a URL.
type Strategy interface {
	// Name returns the strategy's wire identifier, e.g. "static-A".
	Name() string

	// RendersScripts reports whether the strategy executes page
	// scripts before extracting.
	RendersScripts() bool

	// Scrape fetches the page and extracts its content. Each call is
	// one attempt; strategies never retry internally.
	Scrape(ctx context.Context, url string) Outcome
}

// NewRegistry returns the fixed strategy ordering: cheap static fetches
// first, full browser rendering last. The ordering is not configurable
// per request.
func NewRegistry(scfg config.StrategyConfig, bcfg config.BrowserConfig) []Strategy {
	return []Strategy{
		NewStaticA(scfg),
		NewStaticB(scfg),
		NewRenderA(scfg, bcfg),
		NewRenderB(scfg, bcfg),
	}
}
