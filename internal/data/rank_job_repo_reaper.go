package data

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/linkpilot/linkpilot-api/internal/data/pgxutil"
)

// Reaper operations for the rank job queue. A worker that dies mid-job
// leaves a running row with an expired lease; these sweeps recover it.

// RequeueExpiredLeases returns running jobs with expired leases to pending.
func (r *RankJobRepo) RequeueExpiredLeases(ctx context.Context, now time.Time) (int64, error) {
	var requeued int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			UPDATE rank_jobs
			SET status = 'pending', locked_until = NULL, updated_at = $1
			WHERE status = 'running' AND locked_until IS NOT NULL AND locked_until < $1`,
			now.UTC())
		if err != nil {
			return err
		}
		requeued = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to requeue expired leases: %w", err)
	}
	return requeued, nil
}

// FailExhaustedJobs marks pending jobs that already burned maxAttempts
// leases as failed.
func (r *RankJobRepo) FailExhaustedJobs(ctx context.Context, maxAttempts int) (int64, error) {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	now := r.timeProvider.Now().UTC()
	var failed int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			UPDATE rank_jobs
			SET status = 'failed', last_error = 'retry attempts exhausted', updated_at = $2
			WHERE status = 'pending' AND attempts >= $1`, maxAttempts, now)
		if err != nil {
			return err
		}
		failed = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to fail exhausted jobs: %w", err)
	}
	return failed, nil
}

// DeleteOldJobs deletes terminal jobs older than maxAge, up to batchSize per
// call to prevent long locks.
func (r *RankJobRepo) DeleteOldJobs(ctx context.Context, maxAge time.Duration, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = 500
	}
	cutoff := r.timeProvider.Now().UTC().Add(-maxAge)
	var deleted int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			DELETE FROM rank_jobs
			WHERE id IN (
				SELECT id FROM rank_jobs
				WHERE status IN ('completed', 'failed') AND updated_at < $1
				ORDER BY updated_at ASC
				LIMIT $2
			)`, cutoff, batchSize)
		if err != nil {
			return err
		}
		deleted = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete old jobs: %w", err)
	}
	return deleted, nil
}
