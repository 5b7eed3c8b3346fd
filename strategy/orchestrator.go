package strategy

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/cascadehq/cascade/models"
)

// Orchestrator sequences strategies for one request: the automatic
// fallback chain when no strategy is pinned, or a single pinned
// strategy with escalation to the renderers when a static strategy
// reports that the page needs script execution.
//
// Strategies run strictly one at a time. Racing the two static
// strategies concurrently was considered and not adopted: sequential
// execution keeps the attempt log deterministic.
type Orchestrator struct {
	registry []Strategy
	byName   map[string]Strategy
}

// NewOrchestrator creates an Orchestrator over an ordered registry.
func NewOrchestrator(registry []Strategy) *Orchestrator {
	byName := make(map[string]Strategy, len(registry))
	for _, s := range registry {
		byName[s.Name()] = s
	}
	return &Orchestrator{registry: registry, byName: byName}
}

// RunResult is a successful orchestration outcome.
type RunResult struct {
	Result *ScrapedResult

	// StrategyLabel names the winning strategy, or describes the whole
	// escalation chain when the win followed a fallback, e.g.
	// "render-B (fallback from render-A after static-A)".
	StrategyLabel string
}

// Run scrapes url. With explicit == "" the automatic chain runs; a
// non-empty explicit pins that strategy. Validation failures (missing
// URL, unrecognized scheme, unknown strategy name) return before any
// strategy is invoked.
//
// Error types: *models.ValidationError, *models.ExhaustedError (auto
// chain fully failed), *models.StrategyFailedError (pinned strategy
// failed, with escalation reasons when escalation was attempted).
func (o *Orchestrator) Run(ctx context.Context, rawURL, explicit string) (*RunResult, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	if explicit != "" {
		strat, ok := o.byName[explicit]
		if !ok {
			return nil, &models.ValidationError{
				Reason: fmt.Sprintf("unknown strategy %q", explicit),
			}
		}
		return o.runPinned(ctx, rawURL, strat)
	}

	return o.runAuto(ctx, rawURL)
}

// runAuto walks the registry in order. A needs-rendering signal from a
// static strategy skips every remaining static strategy and jumps
// straight to the renderers.
func (o *Orchestrator) runAuto(ctx context.Context, rawURL string) (*RunResult, error) {
	var attempts []models.Attempt
	var chain []string // escalation provenance, oldest first
	escalated := false

	for _, strat := range o.registry {
		if escalated && !strat.RendersScripts() {
			// The page needs scripts; further static attempts are pointless.
			continue
		}

		slog.Debug("strategy starting", "strategy", strat.Name(), "url", rawURL)
		out := strat.Scrape(ctx, rawURL)

		switch out.Kind {
		case OutcomeSuccess:
			label := fallbackLabel(strat.Name(), chain)
			slog.Info("scrape succeeded", "strategy", label, "url", rawURL,
				"text_len", len(out.Result.TextContent), "images", len(out.Result.Images))
			return &RunResult{Result: out.Result, StrategyLabel: label}, nil

		case OutcomeNeedsRendering:
			slog.Info("page needs script execution, escalating",
				"strategy", strat.Name(), "url", rawURL, "reason", out.Reason)
			escalated = true
			chain = append(chain, strat.Name())
			attempts = append(attempts, attempt(strat.Name(), out.Reason))

		case OutcomeFailed:
			slog.Warn("strategy failed",
				"strategy", strat.Name(), "url", rawURL, "error", out.Reason)
			if escalated {
				chain = append(chain, strat.Name())
			}
			attempts = append(attempts, attempt(strat.Name(), out.Reason))
		}
	}

	return nil, &models.ExhaustedError{Attempts: attempts}
}

// runPinned invokes exactly the pinned strategy. A needs-rendering
// signal from a pinned static strategy escalates through the renderers
// in registry order; any other failure is terminal.
func (o *Orchestrator) runPinned(ctx context.Context, rawURL string, strat Strategy) (*RunResult, error) {
	slog.Debug("pinned strategy starting", "strategy", strat.Name(), "url", rawURL)
	out := strat.Scrape(ctx, rawURL)

	if out.Kind == OutcomeSuccess {
		return &RunResult{Result: out.Result, StrategyLabel: strat.Name()}, nil
	}

	if out.Kind == OutcomeNeedsRendering && !strat.RendersScripts() {
		slog.Info("pinned strategy needs script execution, escalating",
			"strategy", strat.Name(), "url", rawURL, "reason", out.Reason)

		chain := []string{strat.Name()}
		var escalationReasons []string

		for _, r := range o.registry {
			if !r.RendersScripts() {
				continue
			}
			rout := r.Scrape(ctx, rawURL)
			if rout.Kind == OutcomeSuccess {
				label := fallbackLabel(r.Name(), chain)
				slog.Info("escalation succeeded", "strategy", label, "url", rawURL)
				return &RunResult{Result: rout.Result, StrategyLabel: label}, nil
			}
			slog.Warn("escalation strategy failed",
				"strategy", r.Name(), "url", rawURL, "error", rout.Reason)
			chain = append(chain, r.Name())
			escalationReasons = append(escalationReasons, rout.Reason)
		}

		return nil, &models.StrategyFailedError{
			Strategy:          strat.Name(),
			Reason:            out.Reason,
			EscalationReasons: escalationReasons,
		}
	}

	return nil, &models.StrategyFailedError{Strategy: strat.Name(), Reason: out.Reason}
}

// validateURL rejects requests before any strategy runs.
func validateURL(rawURL string) error {
	if rawURL == "" {
		return &models.ValidationError{Reason: "URL is required"}
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return &models.ValidationError{Reason: fmt.Sprintf("invalid URL: %v", err)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &models.ValidationError{
			Reason: fmt.Sprintf("URL scheme %q is not supported (use http or https)", u.Scheme),
		}
	}
	return nil
}

// fallbackLabel synthesizes the provenance label for a result that
// followed an escalation. prior is ordered oldest first.
func fallbackLabel(winner string, prior []string) string {
	switch len(prior) {
	case 0:
		return winner
	case 1:
		return fmt.Sprintf("%s (fallback from %s)", winner, prior[0])
	default:
		// Most recent predecessor first, earlier attempts after "after".
		last := prior[len(prior)-1]
		rest := strings.Join(prior[:len(prior)-1], ", ")
		return fmt.Sprintf("%s (fallback from %s after %s)", winner, last, rest)
	}
}

func attempt(name, reason string) models.Attempt {
	return models.Attempt{Strategy: name, Error: reason, Timestamp: time.Now()}
}
