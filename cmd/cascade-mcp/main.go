// cascade-mcp exposes the cascade HTTP API as an MCP stdio server so
// agent runtimes can call the tiered scraper as a tool.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// scrapeRequest mirrors the cascade API request model.
type scrapeRequest struct {
	URL          string `json:"url"`
	Strategy     string `json:"strategy,omitempty"`
	OutputFormat string `json:"output_format,omitempty"`
	CSSSelector  string `json:"css_selector,omitempty"`
}

// scrapeResponse mirrors the cascade API response model.
type scrapeResponse struct {
	Success     bool   `json:"success"`
	TextContent string `json:"text_content"`
	Content     string `json:"content"`
	FinalURL    string `json:"final_url"`
	Strategy    string `json:"strategy"`
	Images      []struct {
		Src string `json:"src"`
		Alt string `json:"alt"`
	} `json:"images"`
	Tokens *struct {
		Estimate int `json:"estimate"`
	} `json:"tokens"`
	Attempts []struct {
		Strategy string `json:"strategy"`
		Error    string `json:"error"`
	} `json:"attempts"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("CASCADE_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("CASCADE_API_KEY")

	s := server.NewMCPServer(
		"cascade",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	scrapeURLTool := mcp.NewTool("scrape_url",
		mcp.WithDescription("Extract the readable text and images from a web page. Starts with a cheap static fetch and automatically escalates to headless-browser rendering for script-gated pages."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the web page to scrape"),
		),
		mcp.WithString("strategy",
			mcp.Description("Pin a single extraction strategy instead of the automatic chain"),
			mcp.Enum("static-A", "static-B", "render-A", "render-B"),
		),
		mcp.WithString("output_format",
			mcp.Description("Output format: 'text' (default) or 'markdown'"),
			mcp.Enum("text", "markdown"),
		),
		mcp.WithString("css_selector",
			mcp.Description("CSS selector filtering the content before markdown conversion"),
		),
	)

	s.AddTool(scrapeURLTool, handleScrapeURL(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleScrapeURL(apiURL, apiKey string) server.ToolHandlerFunc {
	// Worst case the chain runs a static fetch plus two renders.
	client := &http.Client{Timeout: 180 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		reqBody := scrapeRequest{
			URL:          url,
			Strategy:     request.GetString("strategy", ""),
			OutputFormat: request.GetString("output_format", ""),
			CSSSelector:  request.GetString("css_selector", ""),
		}

		body, err := json.Marshal(reqBody)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal request: %v", err)), nil
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/v1/scrape", bytes.NewReader(body))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if apiKey != "" {
			httpReq.Header.Set("X-API-Key", apiKey)
		}

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		var scrapeResp scrapeResponse
		if err := json.Unmarshal(respBody, &scrapeResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !scrapeResp.Success {
			var sb strings.Builder
			if scrapeResp.Error != nil {
				sb.WriteString(fmt.Sprintf("[%s] %s", scrapeResp.Error.Code, scrapeResp.Error.Message))
			} else {
				sb.WriteString("scrape failed")
			}
			for _, a := range scrapeResp.Attempts {
				sb.WriteString(fmt.Sprintf("\n  %s: %s", a.Strategy, a.Error))
			}
			return mcp.NewToolResultError(sb.String()), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Source: %s\nStrategy: %s\n\n", scrapeResp.FinalURL, scrapeResp.Strategy))

		if scrapeResp.Content != "" {
			sb.WriteString(scrapeResp.Content)
		} else {
			sb.WriteString(scrapeResp.TextContent)
		}

		if len(scrapeResp.Images) > 0 {
			sb.WriteString("\n\nImages:\n")
			for _, img := range scrapeResp.Images {
				if img.Alt != "" {
					sb.WriteString(fmt.Sprintf("- %s (%s)\n", img.Src, img.Alt))
				} else {
					sb.WriteString(fmt.Sprintf("- %s\n", img.Src))
				}
			}
		}

		if scrapeResp.Tokens != nil {
			sb.WriteString(fmt.Sprintf("\n---\nTokens: ~%d", scrapeResp.Tokens.Estimate))
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}
