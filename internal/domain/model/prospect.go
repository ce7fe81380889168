package model

import (
	"errors"
	"strings"
	"time"

	"github.com/linkpilot/linkpilot-api/internal/domain/linkdom"
)

// Prospect represents a candidate backlink source moving through the
// outreach pipeline.
type Prospect struct {
	ID             string         `json:"id"                         db:"id"`
	BrandID        string         `json:"brand_id"                   db:"brand_id"`
	URL            string         `json:"url"                        db:"url"`
	Domain         string         `json:"domain"                     db:"domain"`
	DomainRating   *int           `json:"domain_rating,omitempty"    db:"domain_rating"`
	DomainTraffic  *int           `json:"domain_traffic,omitempty"   db:"domain_traffic"`
	Nofollow       bool           `json:"nofollow"                   db:"nofollow"`
	Status         ProspectStatus `json:"status"                     db:"status"`
	ContactedOn    *time.Time     `json:"contacted_on,omitempty"     db:"contacted_on"`
	ContactMethod  *string        `json:"contact_method,omitempty"   db:"contact_method"`
	ContactEmail   *string        `json:"contact_email,omitempty"    db:"contact_email"`
	ContactFormURL *string        `json:"contact_form_url,omitempty" db:"contact_form_url"`
	Remarks        *string        `json:"remarks,omitempty"          db:"remarks"`
	CreatedAt      time.Time      `json:"created_at"                 db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"                 db:"updated_at"`
}

// ProspectStatus tracks a prospect through the outreach lifecycle.
type ProspectStatus string

const (
	ProspectStatusNotContacted  ProspectStatus = "not_contacted"
	ProspectStatusContacted     ProspectStatus = "contacted"
	ProspectStatusInNegotiation ProspectStatus = "in_negotiation"
	ProspectStatusAgreed        ProspectStatus = "agreed"
	ProspectStatusLinkPlaced    ProspectStatus = "link_placed"
	ProspectStatusRejected      ProspectStatus = "rejected"
)

// Valid returns true when the status is one of the supported values.
func (s ProspectStatus) Valid() bool {
	switch s {
	case ProspectStatusNotContacted, ProspectStatusContacted, ProspectStatusInNegotiation,
		ProspectStatusAgreed, ProspectStatusLinkPlaced, ProspectStatusRejected:
		return true
	default:
		return false
	}
}

// String returns the string representation of the prospect status.
func (s ProspectStatus) String() string {
	return string(s)
}

func normalizeProspectStatus(v ProspectStatus) ProspectStatus {
	normalized := ProspectStatus(strings.ToLower(strings.TrimSpace(string(v))))
	if normalized == "" {
		return ProspectStatusNotContacted
	}
	return normalized
}

// CreateProspectRequest represents a request to create a new prospect.
type CreateProspectRequest struct {
	BrandID        string         `json:"brand_id"`
	URL            string         `json:"url"`
	DomainRating   *int           `json:"domain_rating,omitempty"`
	DomainTraffic  *int           `json:"domain_traffic,omitempty"`
	Nofollow       bool           `json:"nofollow,omitempty"`
	Status         ProspectStatus `json:"status,omitempty"`
	ContactedOn    *time.Time     `json:"contacted_on,omitempty"`
	ContactMethod  *string        `json:"contact_method,omitempty"`
	ContactEmail   *string        `json:"contact_email,omitempty"`
	ContactFormURL *string        `json:"contact_form_url,omitempty"`
	Remarks        *string        `json:"remarks,omitempty"`
}

// Normalize normalizes the CreateProspectRequest fields.
func (r *CreateProspectRequest) Normalize() {
	r.BrandID = strings.TrimSpace(r.BrandID)
	r.URL = strings.TrimSpace(r.URL)
	r.Status = normalizeProspectStatus(r.Status)
}

// Validate validates the CreateProspectRequest fields.
func (r *CreateProspectRequest) Validate() error {
	if r.BrandID == "" {
		return errors.New("brand_id is required")
	}
	if r.URL == "" {
		return errors.New("url is required")
	}
	if !linkdom.IsAbsoluteHTTPURL(r.URL) && linkdom.Normalize(r.URL) == "" {
		return errors.New("url must yield a usable domain")
	}
	if !r.Status.Valid() {
		return errors.New("invalid status")
	}
	if err := validateMetric("domain_rating", r.DomainRating); err != nil {
		return err
	}
	return validateMetric("domain_traffic", r.DomainTraffic)
}

// UpdateProspectRequest represents a request to update an existing prospect.
type UpdateProspectRequest struct {
	DomainRating   *int            `json:"domain_rating,omitempty"`
	DomainTraffic  *int            `json:"domain_traffic,omitempty"`
	Nofollow       *bool           `json:"nofollow,omitempty"`
	Status         *ProspectStatus `json:"status,omitempty"`
	ContactedOn    *time.Time      `json:"contacted_on,omitempty"`
	ContactMethod  *string         `json:"contact_method,omitempty"`
	ContactEmail   *string         `json:"contact_email,omitempty"`
	ContactFormURL *string         `json:"contact_form_url,omitempty"`
	Remarks        *string         `json:"remarks,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateProspectRequest.
func (r *UpdateProspectRequest) HasUpdates() bool {
	return r.DomainRating != nil || r.DomainTraffic != nil || r.Nofollow != nil ||
		r.Status != nil || r.ContactedOn != nil || r.ContactMethod != nil ||
		r.ContactEmail != nil || r.ContactFormURL != nil || r.Remarks != nil
}

// Validate validates UpdateProspectRequest.
func (r *UpdateProspectRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Status != nil {
		normalized := normalizeProspectStatus(*r.Status)
		if !normalized.Valid() {
			return errors.New("invalid status")
		}
		r.Status = &normalized
	}
	if err := validateMetric("domain_rating", r.DomainRating); err != nil {
		return err
	}
	return validateMetric("domain_traffic", r.DomainTraffic)
}

// ProspectListOptions represents options for listing prospects.
type ProspectListOptions struct {
	BrandID *string         `json:"brand_id,omitempty"`
	Status  *ProspectStatus `json:"status,omitempty"`
	Domain  *string         `json:"domain,omitempty"` // Partial domain match
	Limit   int             `json:"limit,omitempty"`
	Offset  int             `json:"offset,omitempty"`
}

// ProspectStats represents counts of prospects per outreach status.
type ProspectStats struct {
	Total         int `json:"total"`
	NotContacted  int `json:"not_contacted"`
	Contacted     int `json:"contacted"`
	InNegotiation int `json:"in_negotiation"`
	Agreed        int `json:"agreed"`
	LinkPlaced    int `json:"link_placed"`
	Rejected      int `json:"rejected"`
}
