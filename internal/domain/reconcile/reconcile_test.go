package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int          { return &v }
func strPtr(v string) *string    { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func TestReconcile_RoundTrip(t *testing.T) {
	t.Parallel()

	backlinks := []BacklinkRecord{
		{ID: "b1", URL: "https://Example.com/a", DomainRating: intPtr(40)},
		{ID: "b2", URL: "https://www.example.com/b", DomainRating: intPtr(60)},
	}
	prospects := []ProspectRecord{
		{ID: "p1", URL: "example.com", ContactEmail: strPtr("x@y.com")},
	}

	out := Reconcile(backlinks, prospects)

	require.Len(t, out, 1)
	agg, ok := out["example.com"]
	require.True(t, ok, "aggregate must be keyed by normalized domain")

	require.NotNil(t, agg.DomainRating)
	assert.Equal(t, 60, *agg.DomainRating)
	require.NotNil(t, agg.ContactEmail)
	assert.Equal(t, "x@y.com", *agg.ContactEmail)
	assert.Equal(t, []string{"b1", "b2"}, agg.BacklinkIDs)
	assert.Equal(t, []string{"p1"}, agg.ProspectIDs)
	assert.Equal(t, "https://Example.com/a", agg.ExampleURL)
}

func TestReconcile_BacklinkSeedsExampleURL(t *testing.T) {
	t.Parallel()

	// Even though the prospect list is supplied alongside, backlinks fold
	// first, so the canonical example URL is always a backlink's URL when
	// at least one backlink exists for the domain.
	backlinks := []BacklinkRecord{
		{ID: "b1", URL: "https://example.com/live-link"},
	}
	prospects := []ProspectRecord{
		{ID: "p1", URL: "https://www.example.com/pitch-page"},
	}

	out := Reconcile(backlinks, prospects)

	require.Len(t, out, 1)
	assert.Equal(t, "https://example.com/live-link", out["example.com"].ExampleURL)
}

func TestReconcile_MonotonicMetrics(t *testing.T) {
	t.Parallel()

	// Folding within a kind is commutative: the final rating/traffic is the
	// max of all non-null contributions, regardless of order.
	records := []BacklinkRecord{
		{ID: "b1", URL: "https://a.com/1", DomainRating: intPtr(50), DomainTraffic: intPtr(1000)},
		{ID: "b2", URL: "https://a.com/2", DomainRating: intPtr(30)},
		{ID: "b3", URL: "https://a.com/3", DomainRating: intPtr(70), DomainTraffic: intPtr(500)},
		{ID: "b4", URL: "https://a.com/4"},
	}

	permutations := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{2, 0, 3, 1},
	}

	for _, perm := range permutations {
		ordered := make([]BacklinkRecord, 0, len(records))
		for _, i := range perm {
			ordered = append(ordered, records[i])
		}

		out := Reconcile(ordered, nil)
		require.Len(t, out, 1)
		agg := out["a.com"]
		require.NotNil(t, agg.DomainRating)
		assert.Equal(t, 70, *agg.DomainRating)
		require.NotNil(t, agg.DomainTraffic)
		assert.Equal(t, 1000, *agg.DomainTraffic)
		assert.Len(t, agg.BacklinkIDs, 4)
	}
}

func TestReconcile_NilMetricNeverOverwrites(t *testing.T) {
	t.Parallel()

	out := Reconcile([]BacklinkRecord{
		{ID: "b1", URL: "https://a.com/1", DomainRating: intPtr(10)},
		{ID: "b2", URL: "https://a.com/2"},
	}, nil)

	agg := out["a.com"]
	require.NotNil(t, agg.DomainRating)
	assert.Equal(t, 10, *agg.DomainRating)
}

func TestReconcile_ContactFieldsFirstWriteWins(t *testing.T) {
	t.Parallel()

	first := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	out := Reconcile(nil, []ProspectRecord{
		{ID: "p1", URL: "https://a.com/1", ContactedOn: timePtr(first), ContactMethod: strPtr("email")},
		{ID: "p2", URL: "https://a.com/2", ContactedOn: timePtr(second), ContactMethod: strPtr("form"), ContactEmail: strPtr("late@a.com")},
	})

	agg := out["a.com"]
	require.NotNil(t, agg.ContactedOn)
	assert.Equal(t, first, *agg.ContactedOn)
	require.NotNil(t, agg.ContactMethod)
	assert.Equal(t, "email", *agg.ContactMethod)
	// p1 carried no email, so p2's first non-null value lands.
	require.NotNil(t, agg.ContactEmail)
	assert.Equal(t, "late@a.com", *agg.ContactEmail)
}

func TestReconcile_NofollowORsAcrossKinds(t *testing.T) {
	t.Parallel()

	out := Reconcile(
		[]BacklinkRecord{{ID: "b1", URL: "https://a.com/1", Nofollow: false}},
		[]ProspectRecord{{ID: "p1", URL: "https://a.com/2", Nofollow: true}},
	)

	assert.True(t, out["a.com"].Nofollow)
}

func TestReconcile_DistinctDomains(t *testing.T) {
	t.Parallel()

	out := Reconcile(
		[]BacklinkRecord{
			{ID: "b1", URL: "https://a.com/1"},
			{ID: "b2", URL: "https://b.com/1"},
		},
		[]ProspectRecord{
			{ID: "p1", URL: "https://c.com/1"},
			{ID: "p2", URL: "https://www.b.com/2"},
		},
	)

	require.Len(t, out, 3)
	assert.Equal(t, []string{"b2"}, out["b.com"].BacklinkIDs)
	assert.Equal(t, []string{"p2"}, out["b.com"].ProspectIDs)
}

func TestReconcile_EmptyKeysIgnored(t *testing.T) {
	t.Parallel()

	out := Reconcile(
		[]BacklinkRecord{{ID: "b1", URL: ""}},
		[]ProspectRecord{{ID: "p1", URL: "   "}},
	)

	assert.Empty(t, out, "empty-key records must not merge with each other")
}

func TestReconcile_Idempotent(t *testing.T) {
	t.Parallel()

	backlinks := []BacklinkRecord{
		{ID: "b1", URL: "https://a.com/1", DomainRating: intPtr(40), Nofollow: true},
	}
	prospects := []ProspectRecord{
		{ID: "p1", URL: "https://a.com/2", ContactEmail: strPtr("x@a.com")},
	}

	first := Reconcile(backlinks, prospects)
	second := Reconcile(backlinks, prospects)

	assert.Equal(t, first, second, "a repeated pass over the same snapshot must produce the same aggregates")
}
