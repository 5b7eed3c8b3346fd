package strategy

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/cascadehq/cascade/config"
	"github.com/cascadehq/cascade/models"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"
)

const renderAMinTextLen = 100

var _ Strategy = (*RenderA)(nil)

// RenderA drives a headless Chrome via rod, executing page scripts
// before extraction. Every invocation launches an isolated browser and
// releases it on every exit path; nothing is pooled across requests.
type RenderA struct {
	browserCfg config.BrowserConfig
	timeout    time.Duration
}

// NewRenderA creates the render-A strategy.
func NewRenderA(scfg config.StrategyConfig, bcfg config.BrowserConfig) *RenderA {
	return &RenderA{browserCfg: bcfg, timeout: scfg.RenderTimeout}
}

func (s *RenderA) Name() string { return models.StrategyRenderA }

func (s *RenderA) RendersScripts() bool { return true }

// Scrape navigates targetURL in a fresh browser, waits for the DOM to
// settle, and runs the shared extraction pipeline on the rendered
// HTML. Images whose URL cannot be resolved keep their original src.
func (s *RenderA) Scrape(ctx context.Context, targetURL string) Outcome {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// The timeout covers the whole session, launch and connect
	// included, not just the in-page work.
	l := launcher.New().
		Context(ctx).
		Headless(s.browserCfg.Headless).
		NoSandbox(s.browserCfg.NoSandbox)
	if s.browserCfg.BrowserBin != "" {
		l = l.Bin(s.browserCfg.BrowserBin)
	}
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return Failed(browserError(err, "render-A: failed to launch browser").Error())
	}
	defer l.Cleanup()

	browser := rod.New().Context(ctx).ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return Failed(browserError(err, "render-A: failed to connect to browser").Error())
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return Failed(browserError(err, "render-A: failed to create page").Error())
	}
	defer func() { _ = page.Close() }()

	// Must be installed before navigation to take effect.
	if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
		slog.Warn("render-A: stealth injection failed, proceeding without it", "error", err)
	}

	// A Google referer nudges sites that gate on traffic source.
	if u, parseErr := url.Parse(targetURL); parseErr == nil {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: proto.NetworkHeaders{
				"Referer": gson.New("https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())),
			},
		}.Call(page)
	}

	p := page.Context(ctx)

	if err := p.Navigate(targetURL); err != nil {
		return Failed(categorizeError(err, "render-A: navigation to target URL failed").Error())
	}
	if err := p.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		slog.Debug("render-A: DOM did not settle, extracting current state", "error", err)
	}

	rawHTML, err := p.HTML()
	if err != nil {
		return Failed(categorizeError(err, "render-A: failed to extract page HTML").Error())
	}

	finalURL := targetURL
	if res, evalErr := p.Eval(`() => window.location.href`); evalErr == nil {
		if href := res.Value.Str(); href != "" {
			finalURL = href
		}
	}

	return extract(rawHTML, finalURL, renderAMinTextLen, true)
}
