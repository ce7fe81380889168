package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/linkpilot/linkpilot-api/internal/domain/linkdom"
)

// TrackedKeyword is one keyword/country pair tracked for a brand's domain.
type TrackedKeyword struct {
	ID        string    `json:"id"         db:"id"`
	BrandID   string    `json:"brand_id"   db:"brand_id"`
	Keyword   string    `json:"keyword"    db:"keyword"`
	Country   string    `json:"country"    db:"country"`
	Domain    string    `json:"domain"     db:"domain"`
	Active    bool      `json:"active"     db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateTrackedKeywordRequest represents a request to track a new keyword.
type CreateTrackedKeywordRequest struct {
	BrandID string `json:"brand_id"`
	Keyword string `json:"keyword"`
	Country string `json:"country,omitempty"`
	Domain  string `json:"domain,omitempty"` // Defaults to the brand's domain
}

// Normalize normalizes the CreateTrackedKeywordRequest fields.
func (r *CreateTrackedKeywordRequest) Normalize() {
	r.BrandID = strings.TrimSpace(r.BrandID)
	r.Keyword = strings.ToLower(strings.TrimSpace(r.Keyword))
	r.Country = strings.ToLower(strings.TrimSpace(r.Country))
	if r.Country == "" {
		r.Country = "us"
	}
	r.Domain = linkdom.Normalize(r.Domain)
}

// Validate validates the CreateTrackedKeywordRequest fields.
func (r *CreateTrackedKeywordRequest) Validate() error {
	if r.BrandID == "" {
		return errors.New("brand_id is required")
	}
	if r.Keyword == "" {
		return errors.New("keyword is required")
	}
	if utf8.RuneCountInString(r.Keyword) > 255 {
		return errors.New("keyword cannot exceed 255 characters")
	}
	if len(r.Country) != 2 {
		return errors.New("country must be a two-letter code")
	}
	return nil
}

// UpdateTrackedKeywordRequest represents a request to update a tracked keyword.
type UpdateTrackedKeywordRequest struct {
	Active *bool   `json:"active,omitempty"`
	Domain *string `json:"domain,omitempty"`
}

// Validate validates UpdateTrackedKeywordRequest.
func (r *UpdateTrackedKeywordRequest) Validate() error {
	if r.Active == nil && r.Domain == nil {
		return errors.New("at least one field must be updated")
	}
	if r.Domain != nil && linkdom.Normalize(*r.Domain) == "" {
		return errors.New("domain must yield a usable key")
	}
	return nil
}

// TrackedKeywordListOptions represents options for listing tracked keywords.
type TrackedKeywordListOptions struct {
	BrandID *string `json:"brand_id,omitempty"`
	Country *string `json:"country,omitempty"`
	Active  *bool   `json:"active,omitempty"`
	Limit   int     `json:"limit,omitempty"`
	Offset  int     `json:"offset,omitempty"`
}
