// Package reconcile merges backlink and prospect records into canonical
// per-domain aggregates. It is a pure in-memory fold; persistence of the
// resulting aggregates (including conflict fallback on concurrent creates)
// is the service layer's concern.
package reconcile

import (
	"time"

	"github.com/linkpilot/linkpilot-api/internal/domain/linkdom"
)

// BacklinkRecord is the backlink-shaped input to a reconciliation pass.
type BacklinkRecord struct {
	ID            string
	URL           string
	DomainRating  *int
	DomainTraffic *int
	Nofollow      bool
}

// ProspectRecord is the prospect-shaped input to a reconciliation pass.
// Contact fields only ever reach an aggregate through prospects.
type ProspectRecord struct {
	ID             string
	URL            string
	DomainRating   *int
	DomainTraffic  *int
	Nofollow       bool
	ContactedOn    *time.Time
	ContactMethod  *string
	ContactEmail   *string
	ContactFormURL *string
	Remarks        *string
}

// Aggregate is everything known about one normalized domain after a pass.
type Aggregate struct {
	Domain         string
	ExampleURL     string
	DomainRating   *int
	DomainTraffic  *int
	Nofollow       bool
	ContactedOn    *time.Time
	ContactMethod  *string
	ContactEmail   *string
	ContactFormURL *string
	Remarks        *string
	BacklinkIDs    []string
	ProspectIDs    []string
}

// Reconcile folds backlinks first, then prospects, into one Aggregate per
// normalized domain. Backlinks seed ExampleURL and metrics; prospects
// contribute rating/traffic/nofollow updates plus outreach metadata, but
// never displace an ExampleURL already set by a backlink.
//
// Records whose URL normalizes to an empty key carry no usable join key and
// are ignored; empty keys must never match each other. Every other input
// record id lands in exactly one aggregate's id list under its origin kind.
func Reconcile(backlinks []BacklinkRecord, prospects []ProspectRecord) map[string]*Aggregate {
	aggregates := make(map[string]*Aggregate)

	for _, b := range backlinks {
		key := linkdom.Normalize(b.URL)
		if key == "" {
			continue
		}
		agg := aggregateFor(aggregates, key, b.URL)
		mergeMaxInt(&agg.DomainRating, b.DomainRating)
		mergeMaxInt(&agg.DomainTraffic, b.DomainTraffic)
		agg.Nofollow = agg.Nofollow || b.Nofollow
		agg.BacklinkIDs = append(agg.BacklinkIDs, b.ID)
	}

	for _, p := range prospects {
		key := linkdom.Normalize(p.URL)
		if key == "" {
			continue
		}
		agg := aggregateFor(aggregates, key, p.URL)
		mergeMaxInt(&agg.DomainRating, p.DomainRating)
		mergeMaxInt(&agg.DomainTraffic, p.DomainTraffic)
		agg.Nofollow = agg.Nofollow || p.Nofollow
		mergeFirstTime(&agg.ContactedOn, p.ContactedOn)
		mergeFirstString(&agg.ContactMethod, p.ContactMethod)
		mergeFirstString(&agg.ContactEmail, p.ContactEmail)
		mergeFirstString(&agg.ContactFormURL, p.ContactFormURL)
		mergeFirstString(&agg.Remarks, p.Remarks)
		agg.ProspectIDs = append(agg.ProspectIDs, p.ID)
	}

	return aggregates
}

// aggregateFor returns the existing aggregate for key or seeds a new one.
// The seeding record's raw URL becomes ExampleURL (first write wins, and
// backlinks fold before prospects).
func aggregateFor(aggregates map[string]*Aggregate, key, rawURL string) *Aggregate {
	if agg, ok := aggregates[key]; ok {
		return agg
	}
	agg := &Aggregate{
		Domain:     key,
		ExampleURL: rawURL,
	}
	aggregates[key] = agg
	return agg
}
