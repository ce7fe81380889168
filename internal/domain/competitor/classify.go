// Package competitor classifies imported competitor-backlink rows against
// the domains a brand already holds or is already prospecting. The
// classification itself is a pure function of each row's normalized domain
// and the lookup sets; batch ordering never changes an individual verdict.
package competitor

import (
	"fmt"
	"sort"

	"github.com/linkpilot/linkpilot-api/internal/domain/linkdom"
)

// Classification is the verdict for one imported row.
type Classification string

const (
	ClassificationNew         Classification = "new"
	ClassificationInProspects Classification = "in_prospects"
	ClassificationAlreadyHave Classification = "already_have"
)

// sortPriority orders classifications in the response: fresh opportunities
// first, then rows already in the prospect pipeline, then links we already
// hold.
func (c Classification) sortPriority() int {
	switch c {
	case ClassificationNew:
		return 0
	case ClassificationInProspects:
		return 1
	case ClassificationAlreadyHave:
		return 2
	default:
		return 3
	}
}

// defaultProspectStatus is attached when a row matches a known prospect URL
// but the domain-keyed lookup has no status for it.
const defaultProspectStatus = "not_contacted"

// maxSkipReasons bounds the sample of per-row skip reasons returned to the
// caller; the full count is always reported.
const maxSkipReasons = 10

// Row is one imported competitor-backlink row after adaptation.
type Row struct {
	URL           string
	DomainRating  *int
	DomainTraffic *int
	AnchorText    string
	Nofollow      bool
}

// ClassifiedRow is a Row with its verdict and any matched context attached.
type ClassifiedRow struct {
	Row
	Domain         string
	Classification Classification
	// Brands holds the brand names that already own a backlink on this
	// domain (already_have only).
	Brands []string
	// ProspectStatus holds the existing prospect's outreach status
	// (in_prospects only).
	ProspectStatus string
}

// Lookups carries the existing-domain snapshots a batch is classified
// against.
type Lookups struct {
	// BacklinkDomains maps normalized domain → brand names holding a link.
	BacklinkDomains map[string][]string
	// ProspectDomains maps normalized domain → outreach status.
	ProspectDomains map[string]string
	// ProspectURLs holds raw prospect URLs for exact-URL fallback matches.
	ProspectURLs map[string]struct{}
}

// Result is the classified batch plus partition counts.
type Result struct {
	Rows             []ClassifiedRow
	NewOpportunities int
	AlreadyHave      int
	InProspects      int
	Skipped          int
	SkipReasons      []string
}

// Classify classifies every row and returns them sorted: classification
// priority ascending (new < in_prospects < already_have), then domain
// rating descending with nil treated as 0. Rows without an absolute
// http(s) URL are skipped, counted, and sampled into SkipReasons; a bad
// row never aborts the batch.
func Classify(rows []Row, lookups Lookups) Result {
	var res Result
	res.Rows = make([]ClassifiedRow, 0, len(rows))

	for i, row := range rows {
		if !linkdom.IsAbsoluteHTTPURL(row.URL) {
			res.Skipped++
			if len(res.SkipReasons) < maxSkipReasons {
				res.SkipReasons = append(res.SkipReasons, fmt.Sprintf("row %d: missing or non-http(s) url %q", i, row.URL))
			}
			continue
		}

		classified := classifyRow(row, lookups)
		switch classified.Classification {
		case ClassificationNew:
			res.NewOpportunities++
		case ClassificationInProspects:
			res.InProspects++
		case ClassificationAlreadyHave:
			res.AlreadyHave++
		}
		res.Rows = append(res.Rows, classified)
	}

	sortClassified(res.Rows)
	return res
}

// classifyRow resolves one row. Backlink ownership wins over prospect
// membership; the raw-URL prospect lookup only matters when the
// domain-keyed lookup misses.
func classifyRow(row Row, lookups Lookups) ClassifiedRow {
	out := ClassifiedRow{Row: row, Domain: linkdom.Normalize(row.URL)}

	if brands, ok := lookups.BacklinkDomains[out.Domain]; ok {
		out.Classification = ClassificationAlreadyHave
		out.Brands = brands
		return out
	}

	if status, ok := lookups.ProspectDomains[out.Domain]; ok {
		out.Classification = ClassificationInProspects
		out.ProspectStatus = status
		return out
	}
	if _, ok := lookups.ProspectURLs[row.URL]; ok {
		out.Classification = ClassificationInProspects
		out.ProspectStatus = defaultProspectStatus
		return out
	}

	out.Classification = ClassificationNew
	return out
}

func sortClassified(rows []ClassifiedRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		pi, pj := rows[i].Classification.sortPriority(), rows[j].Classification.sortPriority()
		if pi != pj {
			return pi < pj
		}
		return ratingOrZero(rows[i].DomainRating) > ratingOrZero(rows[j].DomainRating)
	})
}

func ratingOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
