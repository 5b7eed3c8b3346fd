// Package cleaner turns raw page markup into clean output: normalized
// prose text, absolute image URLs, and optional markdown.
package cleaner

import (
	"strings"

	"golang.org/x/net/html"
)

// Normalize strips markup from raw HTML and collapses the remaining
// text into single-space-separated prose.
//
// Rules, in order: script blocks and their content are removed, style
// blocks and their content are removed, every remaining tag becomes a
// single separating space (so adjacent elements' text never merges),
// whitespace runs collapse to one space, and the result is trimmed.
// Empty input yields an empty string.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	tokenizer := html.NewTokenizer(strings.NewReader(raw))
	var parts []string
	skipDepth := 0

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return strings.Join(parts, " ")
		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			if isContentFree(string(tn)) {
				skipDepth++
			}
		case html.EndTagToken:
			tn, _ := tokenizer.TagName()
			if isContentFree(string(tn)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				// Fields both splits and discards the whitespace runs,
				// so the final Join collapses them to single spaces.
				parts = append(parts, strings.Fields(string(tokenizer.Text()))...)
			}
		}
	}
}

// isContentFree reports whether a tag's text content is never prose.
func isContentFree(tag string) bool {
	return tag == "script" || tag == "style"
}
