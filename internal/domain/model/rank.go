package model

import (
	"errors"
	"strings"
	"time"
)

// RankObservation is one daily rank measurement for a tracked keyword.
// At most one row exists per (keyword, day); a second write for the same
// day overwrites the first. Position 0 means "not ranked in tracked range".
type RankObservation struct {
	ID           string    `json:"id"                      db:"id"`
	KeywordID    string    `json:"keyword_id"              db:"keyword_id"`
	Day          time.Time `json:"day"                     db:"day"`
	Position     int       `json:"position"                db:"position"`
	RankedURL    *string   `json:"ranked_url,omitempty"    db:"ranked_url"`
	Traffic      *int      `json:"traffic,omitempty"       db:"traffic"`
	SearchVolume *int      `json:"search_volume,omitempty" db:"search_volume"`
	Difficulty   *float64  `json:"difficulty,omitempty"    db:"difficulty"`
	CPC          *float64  `json:"cpc,omitempty"           db:"cpc"`
	Source       string    `json:"source"                  db:"source"`
	CreatedAt    time.Time `json:"created_at"              db:"created_at"`
}

// Observation sources.
const (
	RankSourceManual  = "manual"
	RankSourceFetched = "fetched"
)

// RecordRankRequest represents a request to record a rank observation
// (manual entry or a scheduled fetch result). Writing twice for the same
// day upserts rather than duplicating.
type RecordRankRequest struct {
	KeywordID    string     `json:"keyword_id"`
	Day          *time.Time `json:"day,omitempty"` // Defaults to today (UTC)
	Position     int        `json:"position"`
	RankedURL    *string    `json:"ranked_url,omitempty"`
	Traffic      *int       `json:"traffic,omitempty"`
	SearchVolume *int       `json:"search_volume,omitempty"`
	Difficulty   *float64   `json:"difficulty,omitempty"`
	CPC          *float64   `json:"cpc,omitempty"`
	Source       string     `json:"source,omitempty"`
}

// Normalize normalizes the RecordRankRequest fields.
func (r *RecordRankRequest) Normalize() {
	r.KeywordID = strings.TrimSpace(r.KeywordID)
	r.Source = strings.ToLower(strings.TrimSpace(r.Source))
	if r.Source == "" {
		r.Source = RankSourceManual
	}
}

// Validate validates the RecordRankRequest fields.
func (r *RecordRankRequest) Validate() error {
	if r.KeywordID == "" {
		return errors.New("keyword_id is required")
	}
	if r.Position < 0 {
		return errors.New("position cannot be negative")
	}
	if r.Source != RankSourceManual && r.Source != RankSourceFetched {
		return errors.New("invalid source")
	}
	return nil
}

// RankHistoryOptions bounds a stored-history read.
type RankHistoryOptions struct {
	KeywordID string     `json:"keyword_id"`
	Since     *time.Time `json:"since,omitempty"`
	Until     *time.Time `json:"until,omitempty"`
	Limit     int        `json:"limit,omitempty"`
}

// RankAlert is a persisted significant mover detected between two adjacent
// daily snapshots.
type RankAlert struct {
	ID               string    `json:"id"                db:"id"`
	BrandID          string    `json:"brand_id"          db:"brand_id"`
	KeywordID        string    `json:"keyword_id"        db:"keyword_id"`
	Keyword          string    `json:"keyword"           db:"keyword"`
	Country          string    `json:"country"           db:"country"`
	PreviousPosition int       `json:"previous_position" db:"previous_position"`
	CurrentPosition  int       `json:"current_position"  db:"current_position"`
	Change           int       `json:"change"            db:"change"`
	DetectedOn       time.Time `json:"detected_on"       db:"detected_on"`
	CreatedAt        time.Time `json:"created_at"        db:"created_at"`
}

// RankAlertListOptions represents options for listing rank alerts.
type RankAlertListOptions struct {
	BrandID *string    `json:"brand_id,omitempty"`
	Since   *time.Time `json:"since,omitempty"`
	Limit   int        `json:"limit,omitempty"`
	Offset  int        `json:"offset,omitempty"`
}

// MoversResult is the day-over-day movement report for a brand.
type MoversResult struct {
	BrandID     string     `json:"brand_id"`
	Today       time.Time  `json:"today"`
	Gainers     []RankMove `json:"gainers"`
	Losers      []RankMove `json:"losers"`
	Significant []RankMove `json:"significant"`
	Compared    int        `json:"compared"`
}

// RankMove is one mover in a MoversResult.
type RankMove struct {
	KeywordID        string `json:"keyword_id"`
	Keyword          string `json:"keyword"`
	Country          string `json:"country"`
	PreviousPosition int    `json:"previous_position"`
	CurrentPosition  int    `json:"current_position"`
	Change           int    `json:"change"`
}
