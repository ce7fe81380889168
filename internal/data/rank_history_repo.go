package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/linkpilot/linkpilot-api/internal/data/pgxutil"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
)

// RankHistoryRepo provides database operations for daily rank observations.
type RankHistoryRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewRankHistoryRepo creates a new RankHistoryRepo with real time provider.
func NewRankHistoryRepo(db *sql.DB) *RankHistoryRepo {
	return &RankHistoryRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewRankHistoryRepoWithTimeProvider creates a new RankHistoryRepo with a custom time provider.
func NewRankHistoryRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *RankHistoryRepo {
	return &RankHistoryRepo{DB: db, timeProvider: tp}
}

const rankObservationColumnList = "id, keyword_id, day, position, ranked_url, traffic, " +
	"search_volume, difficulty, cpc, source, created_at"

const rankRecordQuery = `
	INSERT INTO rank_history (
		keyword_id, day, position, ranked_url, traffic, search_volume,
		difficulty, cpc, source, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (keyword_id, day) DO UPDATE SET
		position      = EXCLUDED.position,
		ranked_url    = EXCLUDED.ranked_url,
		traffic       = EXCLUDED.traffic,
		search_volume = EXCLUDED.search_volume,
		difficulty    = EXCLUDED.difficulty,
		cpc           = EXCLUDED.cpc,
		source        = EXCLUDED.source
	RETURNING ` + rankObservationColumnList

// latestTwoDaysQuery returns a brand's observations on its two most recent
// distinct days, newest day first. The movers report diffs these two slices.
const latestTwoDaysQuery = `
	WITH days AS (
		SELECT DISTINCT rh.day
		FROM rank_history rh
		JOIN tracked_keywords tk ON tk.id = rh.keyword_id
		WHERE tk.brand_id = $1
		ORDER BY rh.day DESC
		LIMIT 2
	)
	SELECT ` + prefixedRankColumns + `
	FROM rank_history rh
	JOIN tracked_keywords tk ON tk.id = rh.keyword_id
	WHERE tk.brand_id = $1 AND rh.day IN (SELECT day FROM days)
	ORDER BY rh.day DESC, rh.keyword_id ASC`

const prefixedRankColumns = "rh.id, rh.keyword_id, rh.day, rh.position, rh.ranked_url, rh.traffic, " +
	"rh.search_volume, rh.difficulty, rh.cpc, rh.source, rh.created_at"

// Record upserts one observation for (keyword, day). A second write for the
// same day replaces the first; history never holds duplicate days.
func (r *RankHistoryRepo) Record(ctx context.Context, req *model.RecordRankRequest) (*model.RankObservation, error) {
	if req == nil {
		return nil, errors.New("record rank request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	day := now.Truncate(24 * time.Hour)
	if req.Day != nil {
		day = req.Day.UTC().Truncate(24 * time.Hour)
	}

	var out model.RankObservation
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, rankRecordQuery,
			req.KeywordID, day, req.Position, req.RankedURL, req.Traffic, req.SearchVolume,
			req.Difficulty, req.CPC, req.Source, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.RankObservation])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to record rank observation: %w", err)
	}
	return &out, nil
}

// History returns stored observations for one keyword, oldest first, within
// the optional [since, until] window.
func (r *RankHistoryRepo) History(ctx context.Context, opts model.RankHistoryOptions) ([]*model.RankObservation, error) {
	if opts.KeywordID == "" {
		return nil, errors.New("keyword_id is required")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 365
	}

	conds := []string{"keyword_id = $1"}
	args := []any{opts.KeywordID}
	if opts.Since != nil {
		args = append(args, opts.Since.UTC())
		conds = append(conds, "day >= $"+strconv.Itoa(len(args)))
	}
	if opts.Until != nil {
		args = append(args, opts.Until.UTC())
		conds = append(conds, "day <= $"+strconv.Itoa(len(args)))
	}
	args = append(args, limit)
	query := "SELECT " + rankObservationColumnList +
		" FROM rank_history WHERE " + strings.Join(conds, " AND ") +
		" ORDER BY day ASC LIMIT $" + strconv.Itoa(len(args))

	var rowsOut []model.RankObservation
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.RankObservation])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to load rank history: %w", err)
	}
	res := make([]*model.RankObservation, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// LatestTwoDays returns observations for a brand's keywords on the two most
// recent distinct days on record, newest day first.
func (r *RankHistoryRepo) LatestTwoDays(ctx context.Context, brandID string) ([]*model.RankObservation, error) {
	var rowsOut []model.RankObservation
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, latestTwoDaysQuery, brandID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.RankObservation])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to load latest rank days: %w", err)
	}
	res := make([]*model.RankObservation, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// DeleteOlderThan removes observations before the cutoff day.
func (r *RankHistoryRepo) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM rank_history WHERE day < $1`, before.UTC())
		if err != nil {
			return err
		}
		deleted = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete old rank history: %w", err)
	}
	return deleted, nil
}
