package model

import (
	"encoding/json"
	"time"
)

// RankFetchJob is one queued unit of ranking-provider work: fetch current
// positions for a brand's active keywords. Jobs are leased with a lock
// deadline; the reaper returns stale leases to the queue.
type RankFetchJob struct {
	ID          string          `json:"id"                     db:"id"`
	BrandID     string          `json:"brand_id"               db:"brand_id"`
	Status      JobStatus       `json:"status"                 db:"status"`
	Payload     json.RawMessage `json:"payload,omitempty"      db:"payload"`
	Attempts    int             `json:"attempts"               db:"attempts"`
	LockedUntil *time.Time      `json:"locked_until,omitempty" db:"locked_until"`
	LastError   *string         `json:"last_error,omitempty"   db:"last_error"`
	CreatedAt   time.Time       `json:"created_at"             db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"             db:"updated_at"`
}

// JobStatus is the lifecycle state of a rank fetch job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Valid returns true when the status is one of the supported values.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusRunning, JobStatusCompleted, JobStatusFailed:
		return true
	default:
		return false
	}
}

// JobStats summarizes queue depth per status.
type JobStats struct {
	Pending   int `json:"pending"`
	Running   int `json:"running"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// RankSchedule drives periodic rank-fetch enqueueing for a brand.
type RankSchedule struct {
	ID              string     `json:"id"                         db:"id"`
	BrandID         string     `json:"brand_id"                   db:"brand_id"`
	IntervalMinutes int        `json:"interval_minutes"           db:"interval_minutes"`
	Enabled         bool       `json:"enabled"                    db:"enabled"`
	NextRunAt       time.Time  `json:"next_run_at"                db:"next_run_at"`
	LastEnqueuedAt  *time.Time `json:"last_enqueued_at,omitempty" db:"last_enqueued_at"`
	CreatedAt       time.Time  `json:"created_at"                 db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"                 db:"updated_at"`
}
