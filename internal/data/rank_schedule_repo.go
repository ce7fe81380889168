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

// RankScheduleRepo provides database operations for periodic rank fetch
// schedules.
type RankScheduleRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewRankScheduleRepo creates a new RankScheduleRepo with real time provider.
func NewRankScheduleRepo(db *sql.DB) *RankScheduleRepo {
	return &RankScheduleRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewRankScheduleRepoWithTimeProvider creates a new RankScheduleRepo with a custom time provider.
func NewRankScheduleRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *RankScheduleRepo {
	return &RankScheduleRepo{DB: db, timeProvider: tp}
}

const rankScheduleColumnList = "id, brand_id, interval_minutes, enabled, next_run_at, " +
	"last_enqueued_at, created_at, updated_at"

// findDueSchedulesSQL locks due rows so concurrent schedulers skip them.
const findDueSchedulesSQL = `
	SELECT ` + rankScheduleColumnList + `
	FROM rank_schedules
	WHERE enabled = TRUE AND next_run_at <= $1
	ORDER BY next_run_at ASC
	LIMIT $2
	FOR UPDATE SKIP LOCKED`

// Upsert creates or replaces the schedule for a brand. One schedule per
// brand; updating the interval resets next_run_at from now.
func (r *RankScheduleRepo) Upsert(ctx context.Context, brandID string, intervalMinutes int) (*model.RankSchedule, error) {
	if brandID == "" {
		return nil, errors.New("brand_id is required")
	}
	if intervalMinutes <= 0 {
		return nil, errors.New("interval_minutes must be positive")
	}

	now := r.timeProvider.Now().UTC()
	nextRun := now.Add(time.Duration(intervalMinutes) * time.Minute)
	var out model.RankSchedule
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO rank_schedules (brand_id, interval_minutes, enabled, next_run_at, created_at, updated_at)
			VALUES ($1, $2, TRUE, $3, $4, $4)
			ON CONFLICT (brand_id) DO UPDATE SET
				interval_minutes = EXCLUDED.interval_minutes,
				enabled          = TRUE,
				next_run_at      = EXCLUDED.next_run_at,
				updated_at       = EXCLUDED.updated_at
			RETURNING `+rankScheduleColumnList,
			brandID, intervalMinutes, nextRun, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.RankSchedule])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to upsert rank schedule: %w", err)
	}
	return &out, nil
}

// FindDue finds enabled schedules whose next_run_at has passed.
func (r *RankScheduleRepo) FindDue(ctx context.Context, now time.Time, limit int) ([]*model.RankSchedule, error) {
	if limit <= 0 {
		limit = 25
	}
	var rowsOut []model.RankSchedule
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, findDueSchedulesSQL, now.UTC(), limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.RankSchedule])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to find due schedules: %w", err)
	}
	res := make([]*model.RankSchedule, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// MarkEnqueued advances next_run_at by the schedule interval and stamps
// last_enqueued_at. Returns false when the schedule is gone.
func (r *RankScheduleRepo) MarkEnqueued(ctx context.Context, id string, now time.Time) (bool, error) {
	var updated int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			UPDATE rank_schedules
			SET last_enqueued_at = $2,
			    next_run_at = $2 + (interval_minutes * INTERVAL '1 minute'),
			    updated_at = $2
			WHERE id = $1`, id, now.UTC())
		if err != nil {
			return err
		}
		updated = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to mark schedule enqueued: %w", err)
	}
	return updated > 0, nil
}

// SetEnabled toggles a schedule. Returns false when the schedule is gone.
func (r *RankScheduleRepo) SetEnabled(ctx context.Context, id string, enabled bool) (bool, error) {
	now := r.timeProvider.Now().UTC()
	var updated int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			UPDATE rank_schedules
			SET enabled = $2, updated_at = $3
			WHERE id = $1`, id, enabled, now)
		if err != nil {
			return err
		}
		updated = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle rank schedule: %w", err)
	}
	return updated > 0, nil
}

// Delete removes a schedule by ID.
func (r *RankScheduleRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM rank_schedules WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete rank schedule: %w", err)
	}
	return rows > 0, nil
}
