package model

import (
	"time"
)

// LinkDomain is the persisted form of a reconciliation aggregate: the
// canonical record of everything known about one root domain for a brand.
// Rows are written by reconciliation passes; (brand_id, domain) is unique
// and a conflicting insert falls back to an update of the same row.
type LinkDomain struct {
	ID             string     `json:"id"                         db:"id"`
	BrandID        string     `json:"brand_id"                   db:"brand_id"`
	Domain         string     `json:"domain"                     db:"domain"`
	ExampleURL     string     `json:"example_url"                db:"example_url"`
	DomainRating   *int       `json:"domain_rating,omitempty"    db:"domain_rating"`
	DomainTraffic  *int       `json:"domain_traffic,omitempty"   db:"domain_traffic"`
	Nofollow       bool       `json:"nofollow"                   db:"nofollow"`
	ContactedOn    *time.Time `json:"contacted_on,omitempty"     db:"contacted_on"`
	ContactMethod  *string    `json:"contact_method,omitempty"   db:"contact_method"`
	ContactEmail   *string    `json:"contact_email,omitempty"    db:"contact_email"`
	ContactFormURL *string    `json:"contact_form_url,omitempty" db:"contact_form_url"`
	Remarks        *string    `json:"remarks,omitempty"          db:"remarks"`
	BacklinkIDs    []string   `json:"backlink_ids"               db:"backlink_ids"`
	ProspectIDs    []string   `json:"prospect_ids"               db:"prospect_ids"`
	ReconciledAt   time.Time  `json:"reconciled_at"              db:"reconciled_at"`
	CreatedAt      time.Time  `json:"created_at"                 db:"created_at"`
}

// UpsertLinkDomainRequest carries one reconciled aggregate to storage.
type UpsertLinkDomainRequest struct {
	BrandID        string     `json:"brand_id"`
	Domain         string     `json:"domain"`
	ExampleURL     string     `json:"example_url"`
	DomainRating   *int       `json:"domain_rating,omitempty"`
	DomainTraffic  *int       `json:"domain_traffic,omitempty"`
	Nofollow       bool       `json:"nofollow"`
	ContactedOn    *time.Time `json:"contacted_on,omitempty"`
	ContactMethod  *string    `json:"contact_method,omitempty"`
	ContactEmail   *string    `json:"contact_email,omitempty"`
	ContactFormURL *string    `json:"contact_form_url,omitempty"`
	Remarks        *string    `json:"remarks,omitempty"`
	BacklinkIDs    []string   `json:"backlink_ids"`
	ProspectIDs    []string   `json:"prospect_ids"`
}

// LinkDomainListOptions represents options for listing link domains.
type LinkDomainListOptions struct {
	BrandID   *string `json:"brand_id,omitempty"`
	Domain    *string `json:"domain,omitempty"` // Partial domain match
	MinRating *int    `json:"min_rating,omitempty"`
	Limit     int     `json:"limit,omitempty"`
	Offset    int     `json:"offset,omitempty"`
}

// ReconcileResult summarizes one reconciliation pass: which domains
// committed and which failed. Per-domain failures never abort the pass.
type ReconcileResult struct {
	BrandID        string          `json:"brand_id"`
	DomainsTotal   int             `json:"domains_total"`
	DomainsWritten int             `json:"domains_written"`
	DomainsFailed  int             `json:"domains_failed"`
	Failures       []DomainFailure `json:"failures,omitempty"`
	ReconciledAt   time.Time       `json:"reconciled_at"`
}

// DomainFailure names one domain that could not be persisted and why.
type DomainFailure struct {
	Domain string `json:"domain"`
	Reason string `json:"reason"`
}
