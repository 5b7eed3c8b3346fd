package models

import "time"

// ScrapeResponse is the response for POST /api/v1/scrape.
type ScrapeResponse struct {
	// Success indicates whether any strategy produced usable content.
	Success bool `json:"success"`

	// TextContent is the normalized readable text of the page.
	TextContent string `json:"text_content,omitempty"`

	// Images lists the page's images in document order, with src
	// resolved to absolute URLs where the winning strategy's policy
	// allows it.
	Images []Image `json:"images,omitempty"`

	// FinalURL is the page URL after following all redirects. It is
	// the base against which relative image URLs were resolved.
	FinalURL string `json:"final_url,omitempty"`

	// Strategy names the strategy that produced the result. When the
	// result came from an escalation it describes the whole chain,
	// e.g. "render-B (fallback from render-A after static-A)".
	Strategy string `json:"strategy,omitempty"`

	// Content is the markdown rendition of the extracted content.
	// Only populated when output_format is "markdown".
	Content string `json:"content,omitempty"`

	// Tokens provides token estimates for the extracted text.
	Tokens TokenInfo `json:"tokens"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// Attempts lists every failed strategy attempt. Populated only
	// when Success is false and the automatic chain was exhausted.
	Attempts []Attempt `json:"attempts,omitempty"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// Image represents an image element extracted from the page.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// Attempt records one failed strategy invocation on the automatic path.
type Attempt struct {
	Strategy  string    `json:"strategy"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// TokenInfo provides a rough token count for the extracted text, for
// callers budgeting LLM context.
type TokenInfo struct {
	Estimate int `json:"estimate"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// FetchMs is the time spent fetching and extracting, summed over
	// every strategy attempted.
	FetchMs int64 `json:"fetch_ms"`

	// FormatMs is the time spent on markdown conversion.
	FormatMs int64 `json:"format_ms,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"` // always "healthy"; callers only check reachability
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
