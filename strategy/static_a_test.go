package strategy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cascadehq/cascade/config"
	"github.com/cascadehq/cascade/models"
)

func testStrategyConfig() config.StrategyConfig {
	return config.StrategyConfig{
		StaticTimeout: 5 * time.Second,
		RenderTimeout: 5 * time.Second,
		UserAgent:     "test-agent",
	}
}

const articlePage = `<html><body><main>
	<h1>An article</h1>
	<p>Paragraph one with a reasonable amount of text so the extraction threshold is cleared.</p>
	<img src="/img/hero.jpg" alt="Hero">
</main></body></html>`

func TestStaticAScrapeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	s := NewStaticA(testStrategyConfig())
	out := s.Scrape(context.Background(), srv.URL)
	if out.Kind != OutcomeSuccess {
		t.Fatalf("scrape failed: %s", out.Reason)
	}
	if !strings.Contains(out.Result.TextContent, "Paragraph one") {
		t.Errorf("text = %q", out.Result.TextContent)
	}
	if len(out.Result.Images) != 1 || out.Result.Images[0].Src != srv.URL+"/img/hero.jpg" {
		t.Errorf("images = %+v", out.Result.Images)
	}
}

func TestStaticAScrapeFollowsRedirects(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/final", http.StatusFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	s := NewStaticA(testStrategyConfig())
	out := s.Scrape(context.Background(), srv.URL+"/")
	if out.Kind != OutcomeSuccess {
		t.Fatalf("scrape failed: %s", out.Reason)
	}
	if out.Result.FinalURL != srv.URL+"/final" {
		t.Errorf("FinalURL = %q, want post-redirect URL", out.Result.FinalURL)
	}
}

func TestStaticAScrapeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewStaticA(testStrategyConfig())
	out := s.Scrape(context.Background(), srv.URL)
	if out.Kind != OutcomeFailed {
		t.Fatalf("want failure, got kind %d", out.Kind)
	}
	if !strings.Contains(out.Reason, "HTTP 403") {
		t.Errorf("reason = %q", out.Reason)
	}
}

func TestStaticAScrapeRejectsNonHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"not":"html"}`))
	}))
	defer srv.Close()

	s := NewStaticA(testStrategyConfig())
	out := s.Scrape(context.Background(), srv.URL)
	if out.Kind != OutcomeFailed {
		t.Fatalf("want failure, got kind %d", out.Kind)
	}
	if !strings.Contains(out.Reason, "non-HTML content type") {
		t.Errorf("reason = %q", out.Reason)
	}
}

func TestStaticAScrapeDetectsScriptGate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><p>Please enable JavaScript to continue.</p></body></html>`))
	}))
	defer srv.Close()

	s := NewStaticA(testStrategyConfig())
	out := s.Scrape(context.Background(), srv.URL)
	if out.Kind != OutcomeNeedsRendering {
		t.Fatalf("want needs-rendering, got kind %d (%s)", out.Kind, out.Reason)
	}
	if out.Reason == "" {
		t.Error("needs-rendering outcome has empty reason")
	}
}

func TestStaticAScrapeBelowThreshold(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><p>short</p></body></html>`))
	}))
	defer srv.Close()

	s := NewStaticA(testStrategyConfig())
	out := s.Scrape(context.Background(), srv.URL)
	if out.Kind != OutcomeFailed {
		t.Fatalf("want failure, got kind %d", out.Kind)
	}
	if !strings.Contains(out.Reason, "too short") {
		t.Errorf("reason = %q", out.Reason)
	}
}

func TestStaticAScrapeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	cfg := testStrategyConfig()
	cfg.StaticTimeout = 100 * time.Millisecond
	s := NewStaticA(cfg)

	out := s.Scrape(context.Background(), srv.URL)
	if out.Kind != OutcomeFailed {
		t.Fatalf("want failure, got kind %d", out.Kind)
	}
	if !strings.Contains(out.Reason, models.ErrCodeTimeout) {
		t.Errorf("reason = %q, want %s classification", out.Reason, models.ErrCodeTimeout)
	}
}
