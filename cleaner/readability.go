package cleaner

import (
	"log/slog"
	nurl "net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// minArticleLength is the minimum TextContent length (in characters)
// for readability output to be considered valid. Below this we assume
// the algorithm failed to locate the article body and fall back to the
// strategy's own content region.
const minArticleLength = 50

// extractArticle runs the Mozilla Readability algorithm on the content
// HTML and returns the article body HTML. Markdown output must never
// fail just because readability choked, so every failure path falls
// back to the input unchanged:
//
//   - URL parsing fails            → input HTML
//   - readability.FromReader errs  → input HTML
//   - extracted text is too short  → input HTML
func extractArticle(contentHTML string, sourceURL string) string {
	parsedURL, err := nurl.Parse(sourceURL)
	if err != nil {
		slog.Warn("readability: invalid source URL, using region HTML",
			"url", sourceURL, "error", err,
		)
		return contentHTML
	}

	article, err := readability.FromReader(strings.NewReader(contentHTML), parsedURL)
	if err != nil {
		slog.Warn("readability: extraction failed, using region HTML",
			"url", sourceURL, "error", err,
		)
		return contentHTML
	}

	if len(strings.TrimSpace(article.TextContent)) < minArticleLength {
		slog.Debug("readability: article too short, using region HTML",
			"url", sourceURL, "length", len(article.TextContent),
		)
		return contentHTML
	}

	return article.Content
}
