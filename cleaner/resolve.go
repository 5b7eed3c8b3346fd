package cleaner

import (
	"fmt"
	"net/url"
)

// ResolveImageURL resolves an image src against the page's final URL
// using standard relative-reference resolution: ".." segments pop path
// components and a leading "/" resets to the site root. An already
// absolute src is returned unchanged apart from normalization.
//
// A src that cannot be parsed, or that resolves to something other
// than an absolute http(s) URL (data: URIs, javascript:, bare
// fragments), is reported as a resolution error. The calling strategy
// decides whether to drop the image or keep the original src.
func ResolveImageURL(rawSrc, baseURL string) (string, error) {
	if rawSrc == "" {
		return "", fmt.Errorf("resolve: empty image src")
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("resolve: invalid base URL %q: %w", baseURL, err)
	}

	resolved, err := base.Parse(rawSrc)
	if err != nil {
		return "", fmt.Errorf("resolve: invalid image src %q: %w", rawSrc, err)
	}

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", fmt.Errorf("resolve: non-http image URL %q", rawSrc)
	}
	if resolved.Host == "" {
		return "", fmt.Errorf("resolve: image URL %q has no host", rawSrc)
	}

	return resolved.String(), nil
}
