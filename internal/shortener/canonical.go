package shortener

import (
	"net/url"
	"strings"
)

// ValidateURL checks that rawURL is a well-formed absolute http or https URL.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ErrInvalidURL
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}

	return nil
}

// Canonicalize normalizes rawURL into the form used as the deduplication key.
// It lower-cases the scheme and host, strips default ports, drops a trailing
// "index.html" path segment (keeping the slash), and appends a trailing slash
// when the last path segment does not look like a filename.
//
// Canonicalize is total and idempotent. Unparseable input is returned
// unchanged; validation upstream is expected to have rejected it already.
func Canonicalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	switch {
	case u.Scheme == "http" && strings.HasSuffix(u.Host, ":80"):
		u.Host = strings.TrimSuffix(u.Host, ":80")
	case u.Scheme == "https" && strings.HasSuffix(u.Host, ":443"):
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	// Path rules only make sense for hierarchical URLs.
	if u.Opaque != "" {
		return u.String()
	}

	if strings.HasSuffix(u.Path, "/index.html") {
		u.Path = strings.TrimSuffix(u.Path, "index.html")
	}

	if !strings.HasSuffix(u.Path, "/") {
		last := u.Path[strings.LastIndex(u.Path, "/")+1:]
		if !strings.Contains(last, ".") {
			u.Path += "/"
		}
	}

	return u.String()
}
