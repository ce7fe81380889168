package competitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowAdapter_CanonicalNames(t *testing.T) {
	t.Parallel()

	row := NewRowAdapter().Adapt(map[string]any{
		"url":            "https://example.com/a",
		"domain_rating":  70,
		"domain_traffic": 12000,
		"anchor_text":    "best widgets",
		"nofollow":       true,
	})

	assert.Equal(t, "https://example.com/a", row.URL)
	require.NotNil(t, row.DomainRating)
	assert.Equal(t, 70, *row.DomainRating)
	require.NotNil(t, row.DomainTraffic)
	assert.Equal(t, 12000, *row.DomainTraffic)
	assert.Equal(t, "best widgets", row.AnchorText)
	assert.True(t, row.Nofollow)
}

func TestRowAdapter_AhrefsStyleAliases(t *testing.T) {
	t.Parallel()

	// CSV headers as exported by Ahrefs: spaced, capitalized, numbers as
	// strings, link type instead of a nofollow boolean.
	row := NewRowAdapter().Adapt(map[string]any{
		"Referring URL":  "https://Example.com/post",
		"Domain rating":  "63",
		"Domain traffic": "4500.0",
		"Anchor text":    " click here ",
		"Link type":      "nofollow",
	})

	assert.Equal(t, "https://Example.com/post", row.URL)
	require.NotNil(t, row.DomainRating)
	assert.Equal(t, 63, *row.DomainRating)
	require.NotNil(t, row.DomainTraffic)
	assert.Equal(t, 4500, *row.DomainTraffic)
	assert.Equal(t, "click here", row.AnchorText)
	assert.True(t, row.Nofollow)
}

func TestRowAdapter_CamelCaseAliases(t *testing.T) {
	t.Parallel()

	row := NewRowAdapter().Adapt(map[string]any{
		"referringUrl": "https://example.com/b",
		"domainRating": float64(41), // JSON numbers decode as float64
		"anchorText":   "widgets",
	})

	assert.Equal(t, "https://example.com/b", row.URL)
	require.NotNil(t, row.DomainRating)
	assert.Equal(t, 41, *row.DomainRating)
	assert.Nil(t, row.DomainTraffic)
	assert.False(t, row.Nofollow)
}

func TestRowAdapter_UnparsableNumbersBecomeNil(t *testing.T) {
	t.Parallel()

	row := NewRowAdapter().Adapt(map[string]any{
		"url": "https://example.com/c",
		"dr":  "n/a",
	})

	assert.Nil(t, row.DomainRating, "unparsable metric must be nil, not zero")
}

func TestRowAdapter_JMESPaths(t *testing.T) {
	t.Parallel()

	adapter, err := NewRowAdapterWithPaths(map[string]string{
		FieldURL:          "link.href",
		FieldDomainRating: "metrics.dr",
	})
	require.NoError(t, err)

	row := adapter.Adapt(map[string]any{
		"link":    map[string]any{"href": "https://nested.com/x"},
		"metrics": map[string]any{"dr": float64(88)},
		"anchor":  "from alias table",
	})

	assert.Equal(t, "https://nested.com/x", row.URL)
	require.NotNil(t, row.DomainRating)
	assert.Equal(t, 88, *row.DomainRating)
	// Fields without a path fall back to the alias table.
	assert.Equal(t, "from alias table", row.AnchorText)
}

func TestRowAdapter_InvalidJMESPath(t *testing.T) {
	t.Parallel()

	_, err := NewRowAdapterWithPaths(map[string]string{FieldURL: "link["})
	require.Error(t, err)
}

func TestRowAdapter_AdaptAll(t *testing.T) {
	t.Parallel()

	rows := NewRowAdapter().AdaptAll([]map[string]any{
		{"url": "https://a.com/1"},
		{"url": "https://b.com/2"},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "https://a.com/1", rows[0].URL)
	assert.Equal(t, "https://b.com/2", rows[1].URL)
}
