package cleaner

import (
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// Cleaner converts a strategy's extracted content region into markdown.
// The converter is created once and reused across requests; it is
// goroutine-safe.
type Cleaner struct {
	mdConverter *converter.Converter
}

// NewCleaner initialises the Cleaner with a pre-configured converter:
//
//   - base plugin: strips script, style, iframe, noscript, head, meta,
//     link, input, textarea and HTML comments.
//   - commonmark plugin: standard Markdown rendering.
//   - table plugin with minimal cell padding: preserves table structure
//     without padding every column to equal width.
func NewCleaner() *Cleaner {
	return &Cleaner{
		mdConverter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(
					table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
				),
			),
		),
	}
}

// Markdown renders the extracted content-region HTML as markdown.
//
// Flow: optional CSS-selector filtering → readability article
// extraction (with fallback to the region as-is) → html-to-markdown
// conversion with relative URLs resolved against sourceURL. This is a
// pure formatting step; it never influences strategy selection.
func (c *Cleaner) Markdown(contentHTML, sourceURL, cssSelector string) (string, error) {
	if cssSelector != "" {
		filtered, err := ApplyCSSSelector(contentHTML, cssSelector)
		if err != nil {
			return "", err
		}
		contentHTML = filtered
	}

	articleHTML := extractArticle(contentHTML, sourceURL)

	return c.mdConverter.ConvertString(articleHTML, converter.WithDomain(sourceURL))
}
