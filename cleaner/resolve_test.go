package cleaner

import "testing"

func TestResolveImageURL(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		base    string
		want    string
		wantErr bool
	}{
		{
			"parent segment pops path component",
			"../images/pic.jpg",
			"http://example.com/path/page.html",
			"http://example.com/images/pic.jpg",
			false,
		},
		{
			"leading slash resets to site root",
			"/static/logo.png",
			"https://example.com/deep/nested/page",
			"https://example.com/static/logo.png",
			false,
		},
		{
			"sibling relative path",
			"pic.jpg",
			"http://example.com/path/page.html",
			"http://example.com/path/pic.jpg",
			false,
		},
		{
			"absolute src returned unchanged",
			"https://cdn.example.org/a.webp",
			"http://example.com/page",
			"https://cdn.example.org/a.webp",
			false,
		},
		{
			"protocol-relative src inherits base scheme",
			"//cdn.example.org/b.png",
			"https://example.com/page",
			"https://cdn.example.org/b.png",
			false,
		},
		{
			"empty src is an error",
			"",
			"http://example.com/",
			"",
			true,
		},
		{
			"data URI is an error",
			"data:image/png;base64,iVBOR",
			"http://example.com/",
			"",
			true,
		},
		{
			"javascript URI is an error",
			"javascript:void(0)",
			"http://example.com/",
			"",
			true,
		},
		{
			"unparseable src is an error",
			"http://exa mple.com/%zz",
			"http://example.com/",
			"",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveImageURL(tt.src, tt.base)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ResolveImageURL(%q, %q) = %q, want error", tt.src, tt.base, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveImageURL(%q, %q) unexpected error: %v", tt.src, tt.base, err)
			}
			if got != tt.want {
				t.Errorf("ResolveImageURL(%q, %q) = %q, want %q", tt.src, tt.base, got, tt.want)
			}
		})
	}
}
