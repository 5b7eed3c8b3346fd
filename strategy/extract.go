package strategy

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/cascadehq/cascade/cleaner"
	"github.com/cascadehq/cascade/models"
)

// extract runs the post-fetch pipeline shared by all four strategies:
// strip non-content elements, prefer an explicit content region,
// normalize the region text, extract and resolve images, and enforce
// the strategy's minimum text length.
//
// keepUnresolved selects the malformed-image-URL policy: the static
// strategies drop such images silently, the render strategies keep
// them with the original src.
func extract(rawHTML, finalURL string, minTextLen int, keepUnresolved bool) Outcome {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return Failed(fmt.Sprintf("parse HTML: %v", err))
	}

	stripNonContent(doc)

	region := contentRegion(doc)
	contentHTML, err := goquery.OuterHtml(region)
	if err != nil {
		return Failed(fmt.Sprintf("render content region: %v", err))
	}

	text := cleaner.Normalize(contentHTML)
	// Thresholds are in characters, so multi-byte text is not
	// over-counted.
	if n := utf8.RuneCountInString(text); n < minTextLen {
		return Failed(fmt.Sprintf("extracted text too short: %d chars (minimum %d)", n, minTextLen))
	}

	return Success(&ScrapedResult{
		TextContent: text,
		Images:      extractImages(doc, finalURL, keepUnresolved),
		FinalURL:    finalURL,
		ContentHTML: contentHTML,
	})
}

// stripNonContent removes markup that never carries readable content:
// scripts, styles, embedded frames, and page chrome such as nav bars,
// footers and ad containers. Runs as its own pass, before any
// extraction touches the document.
func stripNonContent(doc *goquery.Document) {
	doc.Find("script, style, noscript, iframe, svg, nav, header, footer, aside, form").Remove()
	doc.Find(`[role="navigation"], [role="banner"], [class*="advert"], [id*="advert"], [class*="adsbygoogle"]`).Remove()
}

// contentRegion prefers an explicit main/article region and falls back
// to the full body.
func contentRegion(doc *goquery.Document) *goquery.Selection {
	for _, sel := range []string{"main", "article", `[role="main"]`} {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return doc.Find("body")
}

// extractImages collects img elements in document order with their src
// resolved against the page's final URL. Duplicate resolved URLs are
// kept once.
func extractImages(doc *goquery.Document, baseURL string, keepUnresolved bool) []models.Image {
	images := []models.Image{}
	seen := make(map[string]struct{})

	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if src == "" {
			return
		}

		resolved, err := cleaner.ResolveImageURL(src, baseURL)
		if err != nil {
			if !keepUnresolved {
				return
			}
			resolved = src
		}

		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}

		alt, _ := s.Attr("alt")
		images = append(images, models.Image{
			Src: resolved,
			Alt: strings.TrimSpace(alt),
		})
	})

	return images
}

// isHTMLContentType returns true if the content-type header looks like HTML.
func isHTMLContentType(ct string) bool {
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}
