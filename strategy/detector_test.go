package strategy

import (
	"strings"
	"testing"
)

func TestNeedsRendering(t *testing.T) {
	tests := []struct {
		name       string
		html       string
		textLen    int
		want       bool
		wantReason string // substring
	}{
		{
			name:       "sparse page with signature",
			html:       `<html><body><p>Please enable JavaScript to view this page.</p></body></html>`,
			textLen:    44,
			want:       true,
			wantReason: `"please enable javascript"`,
		},
		{
			name:    "rich page mentioning javascript",
			html:    `<html><body><article>How to fix "JavaScript is required" errors...</article></body></html>`,
			textLen: 500,
			want:    false,
		},
		{
			name:    "sparse page without signature",
			html:    `<html><body><p>Under construction.</p></body></html>`,
			textLen: 19,
			want:    false,
		},
		{
			name:       "signature only in attribute markup still counts",
			html:       `<html><body data-msg="This site requires JavaScript"><p>Loading</p></body></html>`,
			textLen:    7,
			want:       true,
			wantReason: "7 chars of text",
		},
		{
			name:    "gate boundary is inclusive",
			html:    `<html><body><p>JavaScript is required</p></body></html>`,
			textLen: renderGateTextLen,
			want:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := needsRendering(tt.html, tt.textLen, false)
			if got != tt.want {
				t.Fatalf("needsRendering = %v, want %v (reason %q)", got, tt.want, reason)
			}
			if tt.want && !strings.Contains(reason, tt.wantReason) {
				t.Errorf("reason %q does not contain %q", reason, tt.wantReason)
			}
			if !tt.want && reason != "" {
				t.Errorf("reason = %q, want empty", reason)
			}
		})
	}
}

func TestNeedsRenderingNoscriptPlaceholder(t *testing.T) {
	html := `<html><body>
		<noscript>You need to enable JavaScript to run this app.</noscript>
		<div id="root"></div>
	</body></html>`

	got, reason := needsRendering(html, 0, true)
	if !got {
		t.Fatal("noscript placeholder page not flagged")
	}
	// The placeholder's own text must appear verbatim.
	if !strings.Contains(reason, "You need to enable JavaScript to run this app.") {
		t.Errorf("reason %q does not quote the placeholder text", reason)
	}
	if !strings.Contains(reason, "script-gated placeholder") {
		t.Errorf("reason %q missing placeholder marker", reason)
	}
}

func TestNeedsRenderingNoscriptWithoutSignature(t *testing.T) {
	// A noscript block with benign text falls back to the generic reason.
	html := `<html><body>
		<noscript><img src="/pixel.gif"></noscript>
		<p>Please enable JavaScript.</p>
	</body></html>`

	got, reason := needsRendering(html, 25, true)
	if !got {
		t.Fatal("signature page not flagged")
	}
	if !strings.Contains(reason, "25 chars of text") {
		t.Errorf("reason %q should be the generic form", reason)
	}
}
