package core

import (
	"context"
	"time"

	"github.com/linkpilot/linkpilot-api/internal/domain/model"
)

// RankJobRepository defines the interface for the rank fetch job queue.
// Jobs are leased with FOR UPDATE SKIP LOCKED so concurrent workers never
// double-process a job.
type RankJobRepository interface {
	Enqueue(ctx context.Context, brandID string) (*model.RankFetchJob, error)
	GetByID(ctx context.Context, id string) (*model.RankFetchJob, error)

	// ReserveNext leases the oldest pending job for leaseSeconds and marks
	// it running. Returns (nil, nil) when the queue is empty.
	ReserveNext(ctx context.Context, leaseSeconds int) (*model.RankFetchJob, error)

	// Heartbeat extends the lease on a running job. Returns false when the
	// job is no longer running (completed, failed, or reaped).
	Heartbeat(ctx context.Context, jobID string, leaseSeconds int) (bool, error)

	Complete(ctx context.Context, id string) (bool, error)
	Fail(ctx context.Context, id, errMsg string) (bool, error)
	Stats(ctx context.Context) (*model.JobStats, error)
}

// RankScheduleRepository defines the interface for periodic rank fetch schedules.
type RankScheduleRepository interface {
	Upsert(ctx context.Context, brandID string, intervalMinutes int) (*model.RankSchedule, error)
	// FindDue finds enabled schedules whose next_run_at has passed, using
	// FOR UPDATE SKIP LOCKED so concurrent schedulers never double-enqueue.
	FindDue(ctx context.Context, now time.Time, limit int) ([]*model.RankSchedule, error)
	// MarkEnqueued advances next_run_at by the schedule interval and stamps
	// last_enqueued_at. Returns false when the schedule is gone.
	MarkEnqueued(ctx context.Context, id string, now time.Time) (bool, error)
	SetEnabled(ctx context.Context, id string, enabled bool) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ReaperRepository defines the interface for job queue cleanup operations.
type ReaperRepository interface {
	// RequeueExpiredLeases returns running jobs with expired leases to the
	// pending state so another worker can pick them up. Returns the number
	// of jobs requeued.
	RequeueExpiredLeases(ctx context.Context, now time.Time) (int64, error)

	// FailExhaustedJobs marks pending jobs that have exceeded maxAttempts
	// as failed. Returns the number of jobs failed.
	FailExhaustedJobs(ctx context.Context, maxAttempts int) (int64, error)

	// DeleteOldJobs deletes terminal jobs older than maxAge, up to batchSize
	// per call to prevent long locks. Returns the number of jobs deleted.
	DeleteOldJobs(ctx context.Context, maxAge time.Duration, batchSize int) (int64, error)
}

// KeywordRank is one provider result for a tracked keyword.
type KeywordRank struct {
	KeywordID    string
	Position     int
	RankedURL    *string
	Traffic      *int
	SearchVolume *int
	Difficulty   *float64
	CPC          *float64
}

// RankingProvider fetches current positions from an external ranking data
// vendor. Implementations live in internal/adapters.
type RankingProvider interface {
	// FetchRank returns the current position for one keyword. Position 0
	// means the domain does not rank in the tracked range.
	FetchRank(ctx context.Context, kw *model.TrackedKeyword) (*KeywordRank, error)
}
