package models

// Strategy identifiers accepted on the wire. The ordering static-A →
// static-B → render-A → render-B is also the fixed escalation order.
const (
	StrategyStaticA = "static-A"
	StrategyStaticB = "static-B"
	StrategyRenderA = "render-A"
	StrategyRenderB = "render-B"
)

// ScrapeRequest is the payload for POST /api/v1/scrape.
type ScrapeRequest struct {
	// URL is the target page to scrape. Required.
	URL string `json:"url" binding:"required"`

	// Strategy pins a single extraction strategy instead of the
	// automatic fallback chain. When a pinned static strategy reports
	// that the page needs script execution, the render strategies are
	// still tried in order.
	// Allowed: "static-A", "static-B", "render-A", "render-B".
	Strategy string `json:"strategy,omitempty"`

	// CrawlDepth and SearchDepth are accepted for wire compatibility
	// with crawling clients but are never consulted: cascade scrapes
	// exactly one page per request.
	CrawlDepth  int `json:"crawl_depth,omitempty"`
	SearchDepth int `json:"search_depth,omitempty"`

	// OutputFormat controls the Content field of the response.
	// Allowed: "text" (default, plain text only) or "markdown".
	OutputFormat string `json:"output_format,omitempty" binding:"omitempty,oneof=text markdown"`

	// CSSSelector optionally filters the extracted content HTML before
	// markdown conversion. Only consulted when OutputFormat is
	// "markdown".
	CSSSelector string `json:"css_selector,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *ScrapeRequest) Defaults() {
	if r.OutputFormat == "" {
		r.OutputFormat = "text"
	}
}
