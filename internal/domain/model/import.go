package model

import (
	"errors"
	"strings"
	"time"
)

// ImportBatch is the audit record for one competitor-backlink import.
// The classified rows themselves are ephemeral; only this summary plus an
// audit copy of the rows is persisted, keyed by the batch id.
type ImportBatch struct {
	ID         string    `json:"id"          db:"id"`
	BrandID    string    `json:"brand_id"    db:"brand_id"`
	Source     string    `json:"source"      db:"source"`
	RowCount   int       `json:"row_count"   db:"row_count"`
	NewCount   int       `json:"new_count"   db:"new_count"`
	HaveCount  int       `json:"have_count"  db:"have_count"`
	PipedCount int       `json:"piped_count" db:"piped_count"`
	SkipCount  int       `json:"skip_count"  db:"skip_count"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
}

// ImportRowAudit is the persisted audit copy of one classified row. Rows
// keep their contract order via the serial id.
type ImportRowAudit struct {
	ID             int64     `json:"id"                       db:"id"`
	BatchID        string    `json:"batch_id"                 db:"batch_id"`
	URL            string    `json:"url"                      db:"url"`
	Domain         string    `json:"domain"                   db:"domain"`
	DomainRating   *int      `json:"domain_rating,omitempty"  db:"domain_rating"`
	DomainTraffic  *int      `json:"domain_traffic,omitempty" db:"domain_traffic"`
	AnchorText     string    `json:"anchor_text,omitempty"    db:"anchor_text"`
	Nofollow       bool      `json:"nofollow"                 db:"nofollow"`
	Classification string    `json:"classification"           db:"classification"`
	CreatedAt      time.Time `json:"created_at"               db:"created_at"`
}

// ClassifyImportRequest is the inbound shape of an import batch: raw,
// loosely-typed rows straight from a JSON body or a parsed CSV, plus an
// optional map of JMESPath expressions for sources that nest their fields.
type ClassifyImportRequest struct {
	BrandID    string            `json:"brand_id"`
	Source     string            `json:"source,omitempty"`
	Rows       []map[string]any  `json:"rows"`
	FieldPaths map[string]string `json:"field_paths,omitempty"`
}

// Normalize normalizes the ClassifyImportRequest fields.
func (r *ClassifyImportRequest) Normalize() {
	r.BrandID = strings.TrimSpace(r.BrandID)
	r.Source = strings.ToLower(strings.TrimSpace(r.Source))
	if r.Source == "" {
		r.Source = "manual"
	}
}

// Validate validates the ClassifyImportRequest fields. An empty rows array
// is a hard request error; per-row problems are not.
func (r *ClassifyImportRequest) Validate() error {
	if r.BrandID == "" {
		return errors.New("brand_id is required")
	}
	if len(r.Rows) == 0 {
		return errors.New("rows is required")
	}
	return nil
}

// ClassifiedImportRow is one classified row as returned to the caller.
type ClassifiedImportRow struct {
	URL            string   `json:"url"`
	Domain         string   `json:"domain"`
	DomainRating   *int     `json:"domain_rating,omitempty"`
	DomainTraffic  *int     `json:"domain_traffic,omitempty"`
	AnchorText     string   `json:"anchor_text,omitempty"`
	Nofollow       bool     `json:"nofollow"`
	Classification string   `json:"classification"`
	Brands         []string `json:"brands,omitempty"`
	ProspectStatus string   `json:"prospect_status,omitempty"`
}

// ClassifyImportResult is the batch response: classified rows in their
// contract order plus partition counts and a bounded skip sample.
type ClassifyImportResult struct {
	BatchID          string                `json:"batch_id"`
	Rows             []ClassifiedImportRow `json:"rows"`
	NewOpportunities int                   `json:"new_opportunities"`
	AlreadyHave      int                   `json:"already_have"`
	InProspects      int                   `json:"in_prospects"`
	Skipped          int                   `json:"skipped"`
	SkipReasons      []string              `json:"skip_reasons,omitempty"`
}

// ImportBatchListOptions represents options for listing import batches.
type ImportBatchListOptions struct {
	BrandID *string `json:"brand_id,omitempty"`
	Limit   int     `json:"limit,omitempty"`
	Offset  int     `json:"offset,omitempty"`
}
