package strategy

import (
	"context"
	"time"

	"github.com/cascadehq/cascade/config"
	"github.com/cascadehq/cascade/models"
	"github.com/chromedp/chromedp"
)

const renderBMinTextLen = 100

var _ Strategy = (*RenderB)(nil)

// RenderB is the last-resort renderer. It drives Chrome through
// chromedp, a separate DevTools stack from render-A, so a rod-specific
// failure mode does not take both renderers down. Like render-A it
// launches a fresh browser per call and tears it down on return.
type RenderB struct {
	browserCfg config.BrowserConfig
	userAgent  string
	timeout    time.Duration
}

// NewRenderB creates the render-B strategy.
func NewRenderB(scfg config.StrategyConfig, bcfg config.BrowserConfig) *RenderB {
	return &RenderB{browserCfg: bcfg, userAgent: scfg.UserAgent, timeout: scfg.RenderTimeout}
}

func (s *RenderB) Name() string { return models.StrategyRenderB }

func (s *RenderB) RendersScripts() bool { return true }

func (s *RenderB) Scrape(ctx context.Context, targetURL string) Outcome {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.browserCfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(s.userAgent),
	)
	if s.browserCfg.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	if s.browserCfg.BrowserBin != "" {
		opts = append(opts, chromedp.ExecPath(s.browserCfg.BrowserBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, s.timeout)
	defer cancelRun()

	var rawHTML, finalURL string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(targetURL),
		// WaitVisible("body") can poll forever on some pages; WaitReady
		// fires once the node exists, which is all we need.
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &rawHTML),
		chromedp.Location(&finalURL),
	)
	if err != nil {
		return Failed(categorizeError(err, "render-B: page render failed").Error())
	}
	if finalURL == "" {
		finalURL = targetURL
	}

	return extract(rawHTML, finalURL, renderBMinTextLen, true)
}
