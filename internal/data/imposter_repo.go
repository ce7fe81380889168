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

	"github.com/linkpilot/linkpilot-api/internal/data/database"
	"github.com/linkpilot/linkpilot-api/internal/data/pgxutil"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
)

// ImposterWatchRepo provides database operations for imposter watch entries.
type ImposterWatchRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewImposterWatchRepo creates a new ImposterWatchRepo with real time provider.
func NewImposterWatchRepo(db *sql.DB) *ImposterWatchRepo {
	return &ImposterWatchRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewImposterWatchRepoWithTimeProvider creates a new ImposterWatchRepo with a custom time provider.
func NewImposterWatchRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ImposterWatchRepo {
	return &ImposterWatchRepo{DB: db, timeProvider: tp}
}

const imposterColumnList = "id, brand_id, pattern, pattern_type, description, status, " +
	"match_count, last_matched_at, created_at, updated_at"

const (
	imposterGetByIDQuery = `
		SELECT ` + imposterColumnList + `
		FROM imposter_watches
		WHERE id = $1`

	imposterListActiveByBrandQuery = `
		SELECT ` + imposterColumnList + `
		FROM imposter_watches
		WHERE brand_id = $1 AND status = 'active'
		ORDER BY pattern ASC`
)

// Create inserts a new imposter watch entry.
func (r *ImposterWatchRepo) Create(ctx context.Context, req *model.CreateImposterWatchRequest) (*model.ImposterWatch, error) {
	if req == nil {
		return nil, errors.New("create imposter watch request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.ImposterWatch
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO imposter_watches (
				brand_id, pattern, pattern_type, description, status, match_count, created_at, updated_at
			) VALUES ($1, $2, $3, $4, 'active', 0, $5, $5)
			RETURNING `+imposterColumnList,
			req.BrandID, req.Pattern, req.PatternType, req.Description, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ImposterWatch])
		return err
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByID retrieves a watch entry by ID.
func (r *ImposterWatchRepo) GetByID(ctx context.Context, id string) (*model.ImposterWatch, error) {
	var out model.ImposterWatch
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, imposterGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ImposterWatch])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWatchNotFound
		}
		return nil, fmt.Errorf("failed to get imposter watch by ID: %w", err)
	}
	return &out, nil
}

// List retrieves watch entries with optional filters and pagination.
func (r *ImposterWatchRepo) List(ctx context.Context, opts model.ImposterWatchListOptions) ([]*model.ImposterWatch, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(imposterColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("created_at", sortDirDesc),
	}
	if opts.BrandID != nil && *opts.BrandID != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("brand_id", database.Equal, *opts.BrandID),
		))
	}
	if opts.Status != nil && *opts.Status != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, *opts.Status),
		))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("imposter_watches", queryOpts...))

	var rowsOut []model.ImposterWatch
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ImposterWatch])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list imposter watches: %w", err)
	}
	res := make([]*model.ImposterWatch, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// ListActiveByBrand returns active watches for a brand.
func (r *ImposterWatchRepo) ListActiveByBrand(ctx context.Context, brandID string) ([]*model.ImposterWatch, error) {
	var rowsOut []model.ImposterWatch
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, imposterListActiveByBrandQuery, brandID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ImposterWatch])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list active imposter watches: %w", err)
	}
	res := make([]*model.ImposterWatch, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a watch entry.
func (r *ImposterWatchRepo) Update(ctx context.Context, id string, req model.UpdateImposterWatchRequest) (*model.ImposterWatch, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 5)
	args := make([]any, 0, 6)
	nextIdx := func() int { return len(args) + 1 }

	if req.Pattern != nil {
		setParts = append(setParts, fmt.Sprintf("pattern = $%d", nextIdx()))
		args = append(args, *req.Pattern)
	}
	if req.PatternType != nil {
		setParts = append(setParts, fmt.Sprintf("pattern_type = $%d", nextIdx()))
		args = append(args, *req.PatternType)
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
		args = append(args, *req.Description)
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *req.Status)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	var out model.ImposterWatch
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		args = append(args, id)
		query := "UPDATE imposter_watches SET " + strings.Join(setParts, ", ") +
			" WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING " + imposterColumnList
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ImposterWatch])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWatchNotFound
		}
		return nil, fmt.Errorf("failed to update imposter watch: %w", err)
	}
	return &out, nil
}

// Delete deletes a watch entry by ID.
func (r *ImposterWatchRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM imposter_watches WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete imposter watch: %w", err)
	}
	return rows > 0, nil
}

// RecordMatch increments match_count and stamps last_matched_at.
func (r *ImposterWatchRepo) RecordMatch(ctx context.Context, id string, at time.Time) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			UPDATE imposter_watches
			SET match_count = match_count + 1, last_matched_at = $2, updated_at = $2
			WHERE id = $1`, id, at.UTC())
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return ErrWatchNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrWatchNotFound) {
			return err
		}
		return fmt.Errorf("failed to record imposter match: %w", err)
	}
	return nil
}

// imposterColumns returns the standard column list for imposter watch queries.
func imposterColumns() []string {
	return []string{
		"id", "brand_id", "pattern", "pattern_type", "description", "status",
		"match_count", "last_matched_at", "created_at", "updated_at",
	}
}
