package cleaner

import (
	"bytes"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// ApplyCSSSelector parses contentHTML, matches elements against the
// given CSS selector, and returns the concatenated outer HTML of all
// matched elements. Used to narrow the markdown output to a caller
// chosen region.
//
// If no elements match, the original HTML is returned unchanged so
// that downstream conversion still has something to work with.
func ApplyCSSSelector(contentHTML string, selector string) (string, error) {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(contentHTML))
	if err != nil {
		return "", err
	}

	matches := cascadia.QueryAll(doc, sel)
	if len(matches) == 0 {
		return contentHTML, nil
	}

	var buf bytes.Buffer
	for _, node := range matches {
		if err := html.Render(&buf, node); err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}
