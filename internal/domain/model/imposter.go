package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/linkpilot/linkpilot-api/internal/domain/linkdom"
)

// ImposterWatch is a watch entry for typosquat/competitor lookalike
// domains targeting a brand. Matching semantics live in linkdom.Match.
type ImposterWatch struct {
	ID            string     `json:"id"                        db:"id"`
	BrandID       string     `json:"brand_id"                  db:"brand_id"`
	Pattern       string     `json:"pattern"                   db:"pattern"`
	PatternType   string     `json:"pattern_type"              db:"pattern_type"`
	Description   string     `json:"description,omitempty"     db:"description"`
	Status        string     `json:"status"                    db:"status"`
	MatchCount    int        `json:"match_count"               db:"match_count"`
	LastMatchedAt *time.Time `json:"last_matched_at,omitempty" db:"last_matched_at"`
	CreatedAt     time.Time  `json:"created_at"                db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"                db:"updated_at"`
}

// Imposter watch statuses.
const (
	ImposterStatusActive   = "active"
	ImposterStatusResolved = "resolved"
)

// CreateImposterWatchRequest represents a request to create a watch entry.
type CreateImposterWatchRequest struct {
	BrandID     string `json:"brand_id"`
	Pattern     string `json:"pattern"`
	PatternType string `json:"pattern_type,omitempty"` // Defaults to 'exact'
	Description string `json:"description,omitempty"`
}

// Normalize normalizes the CreateImposterWatchRequest fields.
func (r *CreateImposterWatchRequest) Normalize() {
	r.BrandID = strings.TrimSpace(r.BrandID)
	r.Pattern = strings.TrimSpace(strings.ToLower(r.Pattern))
	r.PatternType = strings.TrimSpace(strings.ToLower(r.PatternType))
	r.Description = strings.TrimSpace(r.Description)
	if r.PatternType == "" {
		r.PatternType = linkdom.PatternTypeExact
	}
}

// Validate validates the CreateImposterWatchRequest fields.
func (r *CreateImposterWatchRequest) Validate() error {
	if r.BrandID == "" {
		return errors.New("brand_id is required")
	}
	if r.Pattern == "" {
		return errors.New("pattern is required")
	}
	if !utf8.ValidString(r.Pattern) {
		return errors.New("pattern must be valid UTF-8")
	}
	if len(r.Pattern) > 255 {
		return errors.New("pattern cannot exceed 255 characters")
	}
	if !linkdom.IsValidPatternType(r.PatternType) {
		return fmt.Errorf("pattern_type must be one of: %s", strings.Join(linkdom.ValidPatternTypes(), ", "))
	}
	if len(r.Description) > 1000 {
		return errors.New("description cannot exceed 1000 characters")
	}
	return nil
}

// UpdateImposterWatchRequest represents a request to update a watch entry.
type UpdateImposterWatchRequest struct {
	Pattern     *string `json:"pattern,omitempty"`
	PatternType *string `json:"pattern_type,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// Normalize normalizes the UpdateImposterWatchRequest fields.
func (r *UpdateImposterWatchRequest) Normalize() {
	if r.Pattern != nil {
		v := strings.TrimSpace(strings.ToLower(*r.Pattern))
		r.Pattern = &v
	}
	if r.PatternType != nil {
		v := strings.TrimSpace(strings.ToLower(*r.PatternType))
		r.PatternType = &v
	}
	if r.Description != nil {
		v := strings.TrimSpace(*r.Description)
		r.Description = &v
	}
	if r.Status != nil {
		v := strings.TrimSpace(strings.ToLower(*r.Status))
		r.Status = &v
	}
}

// Validate validates UpdateImposterWatchRequest.
func (r *UpdateImposterWatchRequest) Validate() error {
	if r.Pattern == nil && r.PatternType == nil && r.Description == nil && r.Status == nil {
		return errors.New("at least one field must be updated")
	}
	if r.Pattern != nil && *r.Pattern == "" {
		return errors.New("pattern cannot be empty")
	}
	if r.PatternType != nil && !linkdom.IsValidPatternType(*r.PatternType) {
		return fmt.Errorf("pattern_type must be one of: %s", strings.Join(linkdom.ValidPatternTypes(), ", "))
	}
	if r.Status != nil && *r.Status != ImposterStatusActive && *r.Status != ImposterStatusResolved {
		return errors.New("status must be active or resolved")
	}
	return nil
}

// ImposterWatchListOptions represents options for listing watch entries.
type ImposterWatchListOptions struct {
	BrandID *string `json:"brand_id,omitempty"`
	Status  *string `json:"status,omitempty"`
	Limit   int     `json:"limit,omitempty"`
	Offset  int     `json:"offset,omitempty"`
}

// ImposterMatch reports one observed domain that matched a watch entry.
type ImposterMatch struct {
	WatchID     string `json:"watch_id"`
	Pattern     string `json:"pattern"`
	PatternType string `json:"pattern_type"`
	Domain      string `json:"domain"`
}
