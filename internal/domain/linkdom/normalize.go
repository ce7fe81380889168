// Package linkdom contains pure domain-string helpers shared by the
// reconciliation, import classification, and imposter matching code.
// It is free of framework and storage concerns.
package linkdom

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Normalize canonicalizes a URL or bare domain into a comparable join key:
// the lowercased hostname with a leading "www." stripped.
//
// Normalize never fails. Input that does not parse as an absolute URL is
// treated as a bare hostname, so downstream merge logic always has a key to
// work with. An empty input normalizes to the empty string; callers must
// treat empty keys as "unknown domain" rather than matching them against
// each other.
func Normalize(urlOrDomain string) string {
	s := strings.TrimSpace(urlOrDomain)
	if s == "" {
		return ""
	}

	host := s
	if u, err := url.Parse(s); err == nil && u.Host != "" {
		host = u.Hostname()
	}

	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")

	return host
}

// RootDomain reduces a hostname to its eTLD+1 (e.g. "a.b.example.co.uk" →
// "example.co.uk"). The input is normalized first. When the public suffix
// list cannot produce an answer (IP literals, single labels, garbage), the
// normalized host is returned as-is so callers still get a usable key.
func RootDomain(host string) string {
	normalized := Normalize(host)
	if normalized == "" {
		return ""
	}

	root, err := publicsuffix.EffectiveTLDPlusOne(normalized)
	if err != nil {
		return normalized
	}
	return root
}

// IsAbsoluteHTTPURL reports whether raw parses as an absolute http(s) URL
// with a non-empty host. Import rows that fail this check are skipped by the
// classifier rather than guessed at.
func IsAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
