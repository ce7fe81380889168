package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/linkpilot/linkpilot-api/internal/data/database"
	"github.com/linkpilot/linkpilot-api/internal/data/pgxutil"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
)

// RankAlertRepo provides database operations for persisted significant movers.
type RankAlertRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewRankAlertRepo creates a new RankAlertRepo with real time provider.
func NewRankAlertRepo(db *sql.DB) *RankAlertRepo {
	return &RankAlertRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewRankAlertRepoWithTimeProvider creates a new RankAlertRepo with a custom time provider.
func NewRankAlertRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *RankAlertRepo {
	return &RankAlertRepo{DB: db, timeProvider: tp}
}

const rankAlertColumnList = "id, brand_id, keyword_id, keyword, country, previous_position, " +
	"current_position, change, detected_on, created_at"

// CreateBatch inserts detected movers in one round trip via pgx batching.
// An empty slice is a no-op. Re-detecting the same (keyword, day) pair is
// ignored rather than duplicated.
func (r *RankAlertRepo) CreateBatch(ctx context.Context, alerts []*model.RankAlert) (int, error) {
	if len(alerts) == 0 {
		return 0, nil
	}

	now := r.timeProvider.Now().UTC()
	var inserted int
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		batch := &pgx.Batch{}
		for _, a := range alerts {
			batch.Queue(`
				INSERT INTO rank_alerts (
					brand_id, keyword_id, keyword, country, previous_position,
					current_position, change, detected_on, created_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				ON CONFLICT (keyword_id, detected_on) DO NOTHING`,
				a.BrandID, a.KeywordID, a.Keyword, a.Country, a.PreviousPosition,
				a.CurrentPosition, a.Change, a.DetectedOn, now,
			)
		}
		results := conn.SendBatch(ctx, batch)
		defer results.Close()
		for range alerts {
			ct, err := results.Exec()
			if err != nil {
				return err
			}
			inserted += int(ct.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return inserted, fmt.Errorf("failed to insert rank alerts: %w", err)
	}
	return inserted, nil
}

// List retrieves rank alerts with optional filters, newest first.
func (r *RankAlertRepo) List(ctx context.Context, opts model.RankAlertListOptions) ([]*model.RankAlert, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(rankAlertColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("detected_on", sortDirDesc),
	}
	if opts.BrandID != nil && *opts.BrandID != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("brand_id", database.Equal, *opts.BrandID),
		))
	}
	if opts.Since != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("detected_on", database.GreaterThanOrEqual, opts.Since.UTC()),
		))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("rank_alerts", queryOpts...))

	var rowsOut []model.RankAlert
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.RankAlert])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list rank alerts: %w", err)
	}
	res := make([]*model.RankAlert, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// DeleteOlderThan removes alerts detected before the cutoff.
func (r *RankAlertRepo) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM rank_alerts WHERE detected_on < $1`, before.UTC())
		if err != nil {
			return err
		}
		deleted = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete old rank alerts: %w", err)
	}
	return deleted, nil
}

// rankAlertColumns returns the standard column list for rank alert queries.
func rankAlertColumns() []string {
	return []string{
		"id", "brand_id", "keyword_id", "keyword", "country", "previous_position",
		"current_position", "change", "detected_on", "created_at",
	}
}
