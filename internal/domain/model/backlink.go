package model

import (
	"errors"
	"strings"
	"time"

	"github.com/linkpilot/linkpilot-api/internal/domain/linkdom"
)

// Backlink represents a live, confirmed link pointing at a brand's site.
type Backlink struct {
	ID            string     `json:"id"                       db:"id"`
	BrandID       string     `json:"brand_id"                 db:"brand_id"`
	URL           string     `json:"url"                      db:"url"`
	Domain        string     `json:"domain"                   db:"domain"`
	DomainRating  *int       `json:"domain_rating,omitempty"  db:"domain_rating"`
	DomainTraffic *int       `json:"domain_traffic,omitempty" db:"domain_traffic"`
	AnchorText    string     `json:"anchor_text,omitempty"    db:"anchor_text"`
	Nofollow      bool       `json:"nofollow"                 db:"nofollow"`
	AcquiredOn    *time.Time `json:"acquired_on,omitempty"    db:"acquired_on"`
	CreatedAt     time.Time  `json:"created_at"               db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"               db:"updated_at"`
}

// CreateBacklinkRequest represents a request to record a new backlink.
type CreateBacklinkRequest struct {
	BrandID       string     `json:"brand_id"`
	URL           string     `json:"url"`
	DomainRating  *int       `json:"domain_rating,omitempty"`
	DomainTraffic *int       `json:"domain_traffic,omitempty"`
	AnchorText    string     `json:"anchor_text,omitempty"`
	Nofollow      bool       `json:"nofollow,omitempty"`
	AcquiredOn    *time.Time `json:"acquired_on,omitempty"`
}

// Normalize normalizes the CreateBacklinkRequest fields.
func (r *CreateBacklinkRequest) Normalize() {
	r.BrandID = strings.TrimSpace(r.BrandID)
	r.URL = strings.TrimSpace(r.URL)
	r.AnchorText = strings.TrimSpace(r.AnchorText)
}

// Validate validates the CreateBacklinkRequest fields.
func (r *CreateBacklinkRequest) Validate() error {
	if r.BrandID == "" {
		return errors.New("brand_id is required")
	}
	if r.URL == "" {
		return errors.New("url is required")
	}
	if !linkdom.IsAbsoluteHTTPURL(r.URL) {
		return errors.New("url must be an absolute http(s) url")
	}
	if err := validateMetric("domain_rating", r.DomainRating); err != nil {
		return err
	}
	if err := validateMetric("domain_traffic", r.DomainTraffic); err != nil {
		return err
	}
	return nil
}

// UpdateBacklinkRequest represents a request to update an existing backlink.
type UpdateBacklinkRequest struct {
	URL           *string    `json:"url,omitempty"`
	DomainRating  *int       `json:"domain_rating,omitempty"`
	DomainTraffic *int       `json:"domain_traffic,omitempty"`
	AnchorText    *string    `json:"anchor_text,omitempty"`
	Nofollow      *bool      `json:"nofollow,omitempty"`
	AcquiredOn    *time.Time `json:"acquired_on,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateBacklinkRequest.
func (r *UpdateBacklinkRequest) HasUpdates() bool {
	return r.URL != nil || r.DomainRating != nil || r.DomainTraffic != nil ||
		r.AnchorText != nil || r.Nofollow != nil || r.AcquiredOn != nil
}

// Validate validates UpdateBacklinkRequest.
func (r *UpdateBacklinkRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.URL != nil && !linkdom.IsAbsoluteHTTPURL(*r.URL) {
		return errors.New("url must be an absolute http(s) url")
	}
	if err := validateMetric("domain_rating", r.DomainRating); err != nil {
		return err
	}
	return validateMetric("domain_traffic", r.DomainTraffic)
}

// BacklinkListOptions represents options for listing backlinks.
type BacklinkListOptions struct {
	BrandID  *string `json:"brand_id,omitempty"`
	Domain   *string `json:"domain,omitempty"` // Partial domain match
	Nofollow *bool   `json:"nofollow,omitempty"`
	Limit    int     `json:"limit,omitempty"`
	Offset   int     `json:"offset,omitempty"`
}

func validateMetric(field string, v *int) error {
	if v != nil && *v < 0 {
		return errors.New(field + " cannot be negative")
	}
	return nil
}
