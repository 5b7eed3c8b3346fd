package strategy

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/cascadehq/cascade/cleaner"
	"github.com/cascadehq/cascade/config"
	"github.com/cascadehq/cascade/models"
	tls "github.com/refraction-networking/utls"
)

// staticAMinTextLen is static-A's acceptance threshold. It is the
// cheapest strategy, so the bar is lower than everyone else's.
const staticAMinTextLen = 50

// maxBodyBytes caps response body reads to prevent unbounded memory use.
const maxBodyBytes = 10 << 20

var _ Strategy = (*StaticA)(nil)

// StaticA fetches pages over plain HTTP with a Chrome TLS fingerprint
// (utls) and parses the returned HTML without executing scripts. It is
// the first strategy on the automatic chain.
type StaticA struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

// chromeH1Spec is a Chrome-like TLS ClientHello with ALPN forced to
// http/1.1 only. Computed once at init time and reused per connection.
var chromeH1Spec tls.ClientHelloSpec

func init() {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		// Should never happen with a valid utls version; HelloChrome_Auto
		// is applied as-is in dialTLSChrome when the hello spec is empty.
		return
	}
	// Replace h2 with http/1.1 in the ALPN extension so the server never
	// negotiates HTTP/2, which Go's http.Transport cannot speak over a
	// utls connection.
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	chromeH1Spec = spec
}

// NewStaticA creates the static-A strategy.
func NewStaticA(cfg config.StrategyConfig) *StaticA {
	transport := &http.Transport{
		DialTLSContext:    dialTLSChrome,
		ForceAttemptHTTP2: false,
	}
	return &StaticA{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.StaticTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		timeout:   cfg.StaticTimeout,
	}
}

func (s *StaticA) Name() string { return models.StrategyStaticA }

func (s *StaticA) RendersScripts() bool { return false }

// Scrape fetches targetURL, checks whether the page is a script-gated
// placeholder, and runs the shared extraction pipeline. Malformed image
// URLs are dropped silently.
func (s *StaticA) Scrape(ctx context.Context, targetURL string) Outcome {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rawHTML, finalURL, err := s.fetch(ctx, targetURL)
	if err != nil {
		return Failed(err.Error())
	}

	prelim := cleaner.Normalize(rawHTML)
	if needs, reason := needsRendering(rawHTML, utf8.RuneCountInString(prelim), false); needs {
		return NeedsRendering(reason)
	}

	return extract(rawHTML, finalURL, staticAMinTextLen, false)
}

func (s *StaticA) fetch(ctx context.Context, targetURL string) (rawHTML, finalURL string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("static-A: build request: %w", err)
	}

	// Browser-like headers to match the TLS fingerprint.
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", "", categorizeError(err, "static-A: request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", "", fmt.Errorf("static-A: HTTP %d for %s", resp.StatusCode, targetURL)
	}
	if ct := resp.Header.Get("Content-Type"); !isHTMLContentType(ct) {
		return "", "", fmt.Errorf("static-A: non-HTML content type %q", ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", "", fmt.Errorf("static-A: read body: %w", err)
	}

	return string(body), resp.Request.URL.String(), nil
}

// dialTLSChrome establishes a TLS connection using the Chrome
// fingerprint via utls.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)

	if len(chromeH1Spec.Extensions) == 0 {
		tlsConn := tls.UClient(conn, &tls.Config{ServerName: host}, tls.HelloChrome_Auto)
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			conn.Close()
			return nil, err
		}
		return tlsConn, nil
	}

	tlsConn := tls.UClient(conn, &tls.Config{ServerName: host}, tls.HelloCustom)
	if err := tlsConn.ApplyPreset(&chromeH1Spec); err != nil {
		conn.Close()
		return nil, fmt.Errorf("static-A: apply tls spec: %w", err)
	}
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return tlsConn, nil
}
