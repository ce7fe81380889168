package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Brand represents one managed client brand. Backlinks, prospects, tracked
// keywords, and imposter watches all hang off a brand.
type Brand struct {
	ID        string    `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	SiteURL   string    `json:"site_url"   db:"site_url"`
	Domain    string    `json:"domain"     db:"domain"`
	Country   string    `json:"country"    db:"country"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateBrandRequest represents a request to create a new brand.
type CreateBrandRequest struct {
	Name    string `json:"name"`
	SiteURL string `json:"site_url"`
	Country string `json:"country,omitempty"`
}

// Normalize normalizes the CreateBrandRequest fields.
func (r *CreateBrandRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.SiteURL = strings.TrimSpace(r.SiteURL)
	r.Country = strings.ToLower(strings.TrimSpace(r.Country))
	if r.Country == "" {
		r.Country = "us"
	}
}

// Validate validates the CreateBrandRequest fields.
func (r *CreateBrandRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if utf8.RuneCountInString(r.Name) > 255 {
		return errors.New("name cannot exceed 255 characters")
	}
	if r.SiteURL == "" {
		return errors.New("site_url is required")
	}
	if len(r.Country) != 2 {
		return errors.New("country must be a two-letter code")
	}
	return nil
}

// UpdateBrandRequest represents a request to update an existing brand.
type UpdateBrandRequest struct {
	Name    *string `json:"name,omitempty"`
	SiteURL *string `json:"site_url,omitempty"`
	Country *string `json:"country,omitempty"`
}

// Normalize normalizes the UpdateBrandRequest fields.
func (r *UpdateBrandRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.SiteURL != nil {
		v := strings.TrimSpace(*r.SiteURL)
		r.SiteURL = &v
	}
	if r.Country != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Country))
		r.Country = &v
	}
}

// Validate validates UpdateBrandRequest, ensuring at least one field is set.
func (r *UpdateBrandRequest) Validate() error {
	if r.Name == nil && r.SiteURL == nil && r.Country == nil {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil && *r.Name == "" {
		return errors.New("name cannot be empty")
	}
	if r.SiteURL != nil && *r.SiteURL == "" {
		return errors.New("site_url cannot be empty")
	}
	if r.Country != nil && len(*r.Country) != 2 {
		return errors.New("country must be a two-letter code")
	}
	return nil
}

// BrandListOptions represents options for listing brands.
type BrandListOptions struct {
	Name   *string `json:"name,omitempty"` // Partial name match
	Limit  int     `json:"limit,omitempty"`
	Offset int     `json:"offset,omitempty"`
}
