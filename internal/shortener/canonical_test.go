package shortener_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uni-3/my-url-shortener/internal/shortener"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lowercases scheme and host and strips default port",
			in:   "HTTPS://EXAMPLE.COM:443/foo/bar/index.html?a=b#c",
			want: "https://example.com/foo/bar/?a=b#c",
		},
		{
			name: "appends trailing slash to bare domain",
			in:   "https://example.com",
			want: "https://example.com/",
		},
		{
			name: "appends trailing slash to extensionless path",
			in:   "https://example.com/foo/bar",
			want: "https://example.com/foo/bar/",
		},
		{
			name: "keeps filename paths unchanged",
			in:   "https://example.com/assets/app.js",
			want: "https://example.com/assets/app.js",
		},
		{
			name: "strips index.html keeping the slash",
			in:   "https://example.com/docs/index.html",
			want: "https://example.com/docs/",
		},
		{
			name: "strips http default port",
			in:   "http://example.com:80/x/",
			want: "http://example.com/x/",
		},
		{
			name: "keeps non-default port",
			in:   "https://example.com:8443/x/",
			want: "https://example.com:8443/x/",
		},
		{
			name: "preserves query and fragment",
			in:   "https://example.com/search?q=go#results",
			want: "https://example.com/search/?q=go#results",
		},
		{
			name: "returns unparseable input unchanged",
			in:   "://not-a-url",
			want: "://not-a-url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shortener.Canonicalize(tt.in))
		})
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	inputs := []string{
		"HTTPS://EXAMPLE.COM:443/foo/bar/index.html?a=b#c",
		"https://example.com",
		"https://example.com/foo/bar",
		"https://example.com/assets/app.js",
		"http://example.com:80/index.html",
		"https://example.com/a/b/c/?x=1&y=2",
		"://not-a-url",
		"not-a-url",
	}

	for _, in := range inputs {
		once := shortener.Canonicalize(in)
		twice := shortener.Canonicalize(once)

		assert.Equal(t, once, twice, "Canonicalize must be idempotent for %q", in)
	}
}

func TestValidateURL(t *testing.T) {
	t.Run("accepts http and https URLs", func(t *testing.T) {
		assert.NoError(t, shortener.ValidateURL("https://example.com"))
		assert.NoError(t, shortener.ValidateURL("http://example.com/path?q=1"))
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, in := range []string{"not-a-url", "", "ftp://example.com", "https://", "javascript:alert(1)"} {
			assert.ErrorIs(t, shortener.ValidateURL(in), shortener.ErrInvalidURL, "input %q", in)
		}
	})
}
