package linkdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "absolute url", input: "https://example.com/path?q=1", want: "example.com"},
		{name: "absolute url with www", input: "https://www.example.com/path", want: "example.com"},
		{name: "mixed case host", input: "HTTPS://WWW.Example.COM/About", want: "example.com"},
		{name: "bare domain", input: "example.com", want: "example.com"},
		{name: "bare domain with www", input: "www.Example.com", want: "example.com"},
		{name: "subdomain preserved", input: "https://blog.example.com", want: "blog.example.com"},
		{name: "port stripped from url", input: "http://example.com:8080/x", want: "example.com"},
		{name: "whitespace trimmed", input: "  example.com  ", want: "example.com"},
		{name: "empty string", input: "", want: ""},
		{name: "whitespace only", input: "   ", want: ""},
		{name: "unparsable degrades to lowercase", input: "not a url at all", want: "not a url at all"},
		{name: "scheme only upper www", input: "http://WWW.RIVAL.com", want: "rival.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"https://www.example.com/a",
		"example.com",
		"WWW.EXAMPLE.COM",
		"",
		"not a url at all",
		"http://sub.www.example.co.uk",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}

func TestRootDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already root", input: "example.com", want: "example.com"},
		{name: "subdomain", input: "blog.example.com", want: "example.com"},
		{name: "multi level public suffix", input: "shop.example.co.uk", want: "example.co.uk"},
		{name: "url input", input: "https://www.deep.sub.example.com/x", want: "example.com"},
		{name: "single label falls back", input: "localhost", want: "localhost"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RootDomain(tt.input))
		})
	}
}

func TestIsAbsoluteHTTPURL(t *testing.T) {
	t.Parallel()

	assert.True(t, IsAbsoluteHTTPURL("https://example.com/a"))
	assert.True(t, IsAbsoluteHTTPURL("http://example.com"))
	assert.False(t, IsAbsoluteHTTPURL("example.com"))
	assert.False(t, IsAbsoluteHTTPURL("ftp://example.com"))
	assert.False(t, IsAbsoluteHTTPURL(""))
	assert.False(t, IsAbsoluteHTTPURL("//example.com/a"))
	assert.False(t, IsAbsoluteHTTPURL("https://"))
}

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		domain      string
		pattern     string
		patternType string
		want        bool
	}{
		{name: "exact hit", domain: "rival.com", pattern: "rival.com", patternType: PatternTypeExact, want: true},
		{name: "exact miss", domain: "rival.co", pattern: "rival.com", patternType: PatternTypeExact, want: false},
		{name: "exact normalizes www", domain: "www.Rival.com", pattern: "rival.com", patternType: PatternTypeExact, want: true},
		{name: "wildcard subdomain", domain: "cdn.rival.com", pattern: "*.rival.com", patternType: PatternTypeWildcard, want: true},
		{name: "wildcard base match", domain: "rival.com", pattern: "*.rival.com", patternType: PatternTypeWildcard, want: true},
		{name: "wildcard partial suffix rejected", domain: "notrival.com", pattern: "*.rival.com", patternType: PatternTypeWildcard, want: false},
		{name: "glob", domain: "rival-app.com", pattern: "rival*.com", patternType: PatternTypeGlob, want: true},
		{name: "etld plus one", domain: "deep.sub.rival.com", pattern: "rival.com", patternType: PatternTypeETLDPlusOne, want: true},
		{name: "etld plus one miss", domain: "rival.net", pattern: "rival.com", patternType: PatternTypeETLDPlusOne, want: false},
		{name: "unknown type falls back to exact", domain: "rival.com", pattern: "rival.com", patternType: "bogus", want: true},
		{name: "empty domain never matches", domain: "", pattern: "rival.com", patternType: PatternTypeExact, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Match(tt.domain, tt.pattern, tt.patternType))
		})
	}
}
