package strategy

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// renderGateTextLen is the preliminary text length at or above which a
// page is treated as legitimately content-bearing even when it mentions
// a JavaScript-required phrase. Suppresses false positives from
// content-rich pages that merely talk about JavaScript.
const renderGateTextLen = 500

// jsSignatures are ordered natural-language markers of script-gated
// placeholder pages. Matched case-insensitively against the raw markup.
var jsSignatures = []string{
	"javascript is required",
	"javascript is disabled",
	"enable javascript to continue",
	"please enable javascript",
	"you need to enable javascript",
	"requires javascript",
	"turn on javascript",
	"this site requires javascript",
}

// needsRendering decides whether fetched markup is a script-gated
// placeholder rather than real content. It fires only when a signature
// phrase is present AND the preliminary normalized text is below the
// gate; either condition alone keeps the page on the static path.
//
// When inspectPlaceholders is set, the text of <noscript> blocks is
// checked against the signatures too, and a match there puts the
// placeholder's own text in the reason verbatim. Otherwise the reason
// names the matched phrase and the measured text length.
func needsRendering(rawHTML string, textLen int, inspectPlaceholders bool) (bool, string) {
	if textLen >= renderGateTextLen {
		return false, ""
	}

	lower := strings.ToLower(rawHTML)
	for _, sig := range jsSignatures {
		if !strings.Contains(lower, sig) {
			continue
		}
		if inspectPlaceholders {
			if placeholder := noscriptPlaceholder(rawHTML); placeholder != "" {
				return true, fmt.Sprintf("page is a script-gated placeholder: %q", placeholder)
			}
		}
		return true, fmt.Sprintf("page matches %q with only %d chars of text", sig, textLen)
	}

	return false, ""
}

// noscriptPlaceholder returns the text of the first <noscript> block
// whose own content matches a JS-required signature, or "" if none
// does.
func noscriptPlaceholder(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	var found string
	doc.Find("noscript").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		lower := strings.ToLower(text)
		for _, sig := range jsSignatures {
			if strings.Contains(lower, sig) {
				found = text
				return false
			}
		}
		return true
	})
	return found
}
