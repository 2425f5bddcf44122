// Package urlutil resolves link and image URLs against a document base URL.
// It is shared by the markdown serializer and the citation rewriter.
package urlutil

import (
	"net/url"
	"strings"
)

// absolutePrefixes are schemes that pass through Resolve unchanged.
var absolutePrefixes = []string{"http://", "https://", "mailto:", "data:"}

// IsAbsolute reports whether raw already carries a scheme we pass through,
// or is protocol-relative ("//host/path").
func IsAbsolute(raw string) bool {
	if strings.HasPrefix(raw, "//") {
		return true
	}
	for _, p := range absolutePrefixes {
		if strings.HasPrefix(raw, p) {
			return true
		}
	}
	return false
}

// Resolve resolves candidate against base.
//
// Absolute and protocol-relative candidates pass through unchanged.
// Root-relative candidates ("/path") combine with base's scheme and host only.
// Everything else goes through standard relative resolution against the full
// base. Any resolution failure returns the candidate unchanged.
func Resolve(base, candidate string) string {
	if candidate == "" || IsAbsolute(candidate) {
		return candidate
	}
	if base == "" {
		return candidate
	}

	b, err := url.Parse(base)
	if err != nil || b.Scheme == "" || b.Host == "" {
		return candidate
	}

	if strings.HasPrefix(candidate, "/") {
		return b.Scheme + "://" + b.Host + candidate
	}

	ref, err := url.Parse(candidate)
	if err != nil {
		return candidate
	}
	return b.ResolveReference(ref).String()
}
