package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cascadehq/cascade/cleaner"
	"github.com/cascadehq/cascade/models"
	"github.com/cascadehq/cascade/strategy"
	"github.com/gin-gonic/gin"
)

type stubStrategy struct {
	name    string
	renders bool
	outcome strategy.Outcome
}

func (s *stubStrategy) Name() string         { return s.name }
func (s *stubStrategy) RendersScripts() bool { return s.renders }
func (s *stubStrategy) Scrape(_ context.Context, _ string) strategy.Outcome {
	return s.outcome
}

func newTestRouter(outcomes ...strategy.Outcome) *gin.Engine {
	gin.SetMode(gin.TestMode)

	names := []struct {
		name    string
		renders bool
	}{
		{models.StrategyStaticA, false},
		{models.StrategyStaticB, false},
		{models.StrategyRenderA, true},
		{models.StrategyRenderB, true},
	}
	registry := make([]strategy.Strategy, len(names))
	for i, n := range names {
		out := strategy.Failed("not scripted")
		if i < len(outcomes) {
			out = outcomes[i]
		}
		registry[i] = &stubStrategy{name: n.name, renders: n.renders, outcome: out}
	}

	r := gin.New()
	r.POST("/scrape", Scrape(strategy.NewOrchestrator(registry), cleaner.NewCleaner()))
	return r
}

func doScrape(t *testing.T, r *gin.Engine, body string) (*httptest.ResponseRecorder, models.ScrapeResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp models.ScrapeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v (body %s)", err, w.Body.String())
	}
	return w, resp
}

func successOutcome(text, contentHTML string) strategy.Outcome {
	return strategy.Success(&strategy.ScrapedResult{
		TextContent: text,
		Images:      []models.Image{{Src: "http://example.com/a.png", Alt: "a"}},
		FinalURL:    "http://example.com/",
		ContentHTML: contentHTML,
	})
}

func TestScrapeHandlerSuccess(t *testing.T) {
	r := newTestRouter(successOutcome("Hello world content", "<p>Hello world content</p>"))

	w, resp := doScrape(t, r, `{"url":"http://example.com/"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !resp.Success {
		t.Fatal("Success = false")
	}
	if resp.TextContent != "Hello world content" {
		t.Errorf("TextContent = %q", resp.TextContent)
	}
	if resp.Strategy != models.StrategyStaticA {
		t.Errorf("Strategy = %q", resp.Strategy)
	}
	if resp.Content != "" {
		t.Errorf("Content should be empty for text output, got %q", resp.Content)
	}
	if resp.Tokens.Estimate == 0 {
		t.Error("Tokens.Estimate = 0")
	}
	if len(resp.Images) != 1 {
		t.Errorf("Images = %+v", resp.Images)
	}
}

func TestScrapeHandlerMarkdownOutput(t *testing.T) {
	r := newTestRouter(successOutcome(
		"A heading Body text",
		"<h1>A heading</h1><p>Body text</p>"))

	w, resp := doScrape(t, r, `{"url":"http://example.com/","output_format":"markdown"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(resp.Content, "A heading") {
		t.Errorf("Content = %q, want markdown with heading", resp.Content)
	}
	if resp.TextContent != "A heading Body text" {
		t.Errorf("TextContent = %q, plain text must still be present", resp.TextContent)
	}
}

func TestScrapeHandlerMissingURL(t *testing.T) {
	r := newTestRouter()

	w, resp := doScrape(t, r, `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeInvalidInput {
		t.Errorf("Error = %+v", resp.Error)
	}
}

func TestScrapeHandlerInvalidOutputFormat(t *testing.T) {
	r := newTestRouter()

	w, _ := doScrape(t, r, `{"url":"http://example.com/","output_format":"pdf"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestScrapeHandlerUnknownStrategy(t *testing.T) {
	r := newTestRouter()

	w, resp := doScrape(t, r, `{"url":"http://example.com/","strategy":"static-C"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if resp.Error == nil || !strings.Contains(resp.Error.Message, "static-C") {
		t.Errorf("Error = %+v", resp.Error)
	}
}

func TestScrapeHandlerExhausted(t *testing.T) {
	r := newTestRouter(
		strategy.Failed("dns failure"),
		strategy.Failed("dns failure"),
		strategy.Failed("browser crashed"),
		strategy.Failed("browser crashed"))

	w, resp := doScrape(t, r, `{"url":"http://example.com/"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", w.Code)
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeExhausted {
		t.Fatalf("Error = %+v", resp.Error)
	}
	if len(resp.Attempts) != 4 {
		t.Errorf("Attempts = %d, want 4", len(resp.Attempts))
	}
}

func TestScrapeHandlerCrawlDepthIsInert(t *testing.T) {
	r := newTestRouter(successOutcome("Single page only", "<p>Single page only</p>"))

	w, resp := doScrape(t, r, `{"url":"http://example.com/","crawl_depth":5,"search_depth":3}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !resp.Success {
		t.Fatal("depth fields must not affect the scrape")
	}
}
