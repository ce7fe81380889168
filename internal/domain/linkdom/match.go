package linkdom

import (
	"path/filepath"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Pattern types supported by imposter-domain watch entries.
const (
	PatternTypeExact       = "exact"         // Exact domain match
	PatternTypeWildcard    = "wildcard"      // Simple wildcard matching (*.example.com)
	PatternTypeGlob        = "glob"          // Full glob pattern matching
	PatternTypeETLDPlusOne = "etld_plus_one" // eTLD+1 matching (example.com matches sub.example.com)
)

// ValidPatternTypes returns all valid pattern types.
func ValidPatternTypes() []string {
	return []string{PatternTypeExact, PatternTypeWildcard, PatternTypeGlob, PatternTypeETLDPlusOne}
}

// IsValidPatternType checks if a pattern type is valid.
func IsValidPatternType(patternType string) bool {
	for _, t := range ValidPatternTypes() {
		if t == patternType {
			return true
		}
	}
	return false
}

// Match checks if a domain matches a watch pattern of the given type.
// Both sides are normalized before comparison. Unknown pattern types fall
// back to exact matching.
func Match(domain, pattern, patternType string) bool {
	domain = Normalize(domain)
	pattern = Normalize(pattern)
	patternType = strings.ToLower(strings.TrimSpace(patternType))

	if domain == "" || pattern == "" {
		return false
	}

	switch patternType {
	case PatternTypeWildcard:
		return matchWildcard(domain, pattern)
	case PatternTypeGlob:
		return matchGlob(domain, pattern)
	case PatternTypeETLDPlusOne:
		return matchETLDPlusOne(domain, pattern)
	default:
		return domain == pattern
	}
}

// matchWildcard performs simple wildcard matching (*.example.com).
// A single wildcard is supported at the beginning of the pattern.
func matchWildcard(domain, pattern string) bool {
	if domain == pattern {
		return true
	}

	if !strings.HasPrefix(pattern, "*.") {
		return false
	}

	base := pattern[2:]
	if base == "" {
		return false
	}

	if !strings.HasSuffix(domain, base) {
		return false
	}

	if len(domain) == len(base) {
		return true
	}

	// The character before the base domain must be a dot, otherwise
	// "notexample.com" would match "*.example.com".
	return domain[len(domain)-len(base)-1] == '.'
}

// matchGlob performs glob pattern matching using filepath.Match.
func matchGlob(domain, pattern string) bool {
	matched, err := filepath.Match(pattern, domain)
	if err != nil {
		return domain == pattern
	}
	return matched
}

// matchETLDPlusOne matches when both sides share the same effective TLD+1.
// "example.com" matches "sub.example.com", "deep.sub.example.com", etc.
func matchETLDPlusOne(domain, pattern string) bool {
	if domain == pattern {
		return true
	}

	domainRoot, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return false
	}
	patternRoot, err := publicsuffix.EffectiveTLDPlusOne(pattern)
	if err != nil {
		return false
	}

	return domainRoot == patternRoot
}
