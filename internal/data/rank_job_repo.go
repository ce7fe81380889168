package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/linkpilot/linkpilot-api/internal/data/pgxutil"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
)

// RankJobRepo provides database operations for the rank fetch job queue.
// Leasing uses FOR UPDATE SKIP LOCKED so concurrent workers never reserve
// the same job.
type RankJobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewRankJobRepo creates a new RankJobRepo with real time provider.
func NewRankJobRepo(db *sql.DB) *RankJobRepo {
	return &RankJobRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewRankJobRepoWithTimeProvider creates a new RankJobRepo with a custom time provider.
func NewRankJobRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *RankJobRepo {
	return &RankJobRepo{DB: db, timeProvider: tp}
}

const rankJobColumnList = "id, brand_id, status, payload, attempts, locked_until, last_error, " +
	"created_at, updated_at"

// SQL used by ReserveNext to atomically lease the oldest pending job.
const reserveNextRankJobSQL = `
	WITH cte AS (
		SELECT id FROM rank_jobs
		WHERE status = 'pending'
		ORDER BY created_at ASC
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	)
	UPDATE rank_jobs j
	SET status = 'running',
	    attempts = j.attempts + 1,
	    locked_until = $1,
	    updated_at = $2
	FROM cte
	WHERE j.id = cte.id
	RETURNING j.id, j.brand_id, j.status, j.payload, j.attempts, j.locked_until, j.last_error, j.created_at, j.updated_at`

// Enqueue adds a pending rank fetch job for a brand. An existing pending job
// for the same brand is reused instead of queueing a duplicate.
func (r *RankJobRepo) Enqueue(ctx context.Context, brandID string) (*model.RankFetchJob, error) {
	if brandID == "" {
		return nil, errors.New("brand_id is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.RankFetchJob
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			rows, err := tx.Query(ctx, `
				SELECT `+rankJobColumnList+`
				FROM rank_jobs
				WHERE brand_id = $1 AND status = 'pending'
				LIMIT 1`, brandID)
			if err != nil {
				return err
			}
			existing, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.RankFetchJob])
			if err == nil {
				out = existing
				return nil
			}
			if !errors.Is(err, pgx.ErrNoRows) {
				return err
			}

			rows, err = tx.Query(ctx, `
				INSERT INTO rank_jobs (brand_id, status, payload, attempts, created_at, updated_at)
				VALUES ($1, 'pending', '{}', 0, $2, $2)
				RETURNING `+rankJobColumnList, brandID, now)
			if err != nil {
				return err
			}
			out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.RankFetchJob])
			return err
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue rank job: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a rank job by ID.
func (r *RankJobRepo) GetByID(ctx context.Context, id string) (*model.RankFetchJob, error) {
	var out model.RankFetchJob
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+rankJobColumnList+`
			FROM rank_jobs
			WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.RankFetchJob])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get rank job by ID: %w", err)
	}
	return &out, nil
}

// ReserveNext leases the oldest pending job for leaseSeconds and marks it
// running. Returns (nil, nil) when the queue is empty.
func (r *RankJobRepo) ReserveNext(ctx context.Context, leaseSeconds int) (*model.RankFetchJob, error) {
	if leaseSeconds <= 0 {
		leaseSeconds = 60
	}
	now := r.timeProvider.Now().UTC()
	lockedUntil := now.Add(time.Duration(leaseSeconds) * time.Second)

	var out model.RankFetchJob
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, reserveNextRankJobSQL, lockedUntil, now)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.RankFetchJob])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to reserve rank job: %w", err)
	}
	return &out, nil
}

// Heartbeat extends the lease on a running job. Returns false when the job
// is no longer running.
func (r *RankJobRepo) Heartbeat(ctx context.Context, jobID string, leaseSeconds int) (bool, error) {
	if leaseSeconds <= 0 {
		leaseSeconds = 60
	}
	now := r.timeProvider.Now().UTC()
	lockedUntil := now.Add(time.Duration(leaseSeconds) * time.Second)

	var updated int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			UPDATE rank_jobs
			SET locked_until = $2, updated_at = $3
			WHERE id = $1 AND status = 'running'`, jobID, lockedUntil, now)
		if err != nil {
			return err
		}
		updated = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to heartbeat rank job: %w", err)
	}
	return updated > 0, nil
}

// Complete marks a running job completed. Returns false when the job was
// not running.
func (r *RankJobRepo) Complete(ctx context.Context, id string) (bool, error) {
	return r.finish(ctx, id, `
		UPDATE rank_jobs
		SET status = 'completed', locked_until = NULL, last_error = NULL, updated_at = $2
		WHERE id = $1 AND status = 'running'`, nil)
}

// Fail marks a running job failed with the given error message.
func (r *RankJobRepo) Fail(ctx context.Context, id, errMsg string) (bool, error) {
	return r.finish(ctx, id, `
		UPDATE rank_jobs
		SET status = 'failed', locked_until = NULL, last_error = $3, updated_at = $2
		WHERE id = $1 AND status = 'running'`, &errMsg)
}

func (r *RankJobRepo) finish(ctx context.Context, id, query string, errMsg *string) (bool, error) {
	now := r.timeProvider.Now().UTC()
	var updated int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		args := []any{id, now}
		if errMsg != nil {
			args = append(args, *errMsg)
		}
		ct, err := conn.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		updated = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to finish rank job: %w", err)
	}
	return updated > 0, nil
}

// Stats summarizes queue depth per status.
func (r *RankJobRepo) Stats(ctx context.Context) (*model.JobStats, error) {
	stats := &model.JobStats{}
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT status, COUNT(*) AS n
			FROM rank_jobs
			GROUP BY status`)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var status string
			var n int
			if err := rows.Scan(&status, &n); err != nil {
				return err
			}
			switch model.JobStatus(status) {
			case model.JobStatusPending:
				stats.Pending = n
			case model.JobStatusRunning:
				stats.Running = n
			case model.JobStatusCompleted:
				stats.Completed = n
			case model.JobStatusFailed:
				stats.Failed = n
			}
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get rank job stats: %w", err)
	}
	return stats, nil
}
