package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/linkpilot/linkpilot-api/internal/data/database"
	"github.com/linkpilot/linkpilot-api/internal/data/pgxutil"
	"github.com/linkpilot/linkpilot-api/internal/domain/linkdom"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
)

// TrackedKeywordRepo provides database operations for tracked keywords.
type TrackedKeywordRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewTrackedKeywordRepo creates a new TrackedKeywordRepo with real time provider.
func NewTrackedKeywordRepo(db *sql.DB) *TrackedKeywordRepo {
	return &TrackedKeywordRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewTrackedKeywordRepoWithTimeProvider creates a new TrackedKeywordRepo with a custom time provider.
func NewTrackedKeywordRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *TrackedKeywordRepo {
	return &TrackedKeywordRepo{DB: db, timeProvider: tp}
}

const keywordColumnList = "id, brand_id, keyword, country, domain, active, created_at, updated_at"

const (
	keywordGetByIDQuery = `
		SELECT ` + keywordColumnList + `
		FROM tracked_keywords
		WHERE id = $1`

	keywordListActiveByBrandQuery = `
		SELECT ` + keywordColumnList + `
		FROM tracked_keywords
		WHERE brand_id = $1 AND active = TRUE
		ORDER BY keyword ASC, country ASC`
)

// Create starts tracking a keyword. (brand_id, keyword, country) is unique;
// tracking the same pair twice is a conflict, not a second row.
func (r *TrackedKeywordRepo) Create(ctx context.Context, req *model.CreateTrackedKeywordRequest) (*model.TrackedKeyword, error) {
	if req == nil {
		return nil, errors.New("create tracked keyword request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.TrackedKeyword
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO tracked_keywords (brand_id, keyword, country, domain, active, created_at, updated_at)
			VALUES ($1, $2, $3, COALESCE(NULLIF($4, ''), (SELECT domain FROM brands WHERE id = $1)), TRUE, $5, $5)
			RETURNING `+keywordColumnList,
			req.BrandID, req.Keyword, req.Country, req.Domain, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.TrackedKeyword])
		return err
	}); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrKeywordExists
		}
		return nil, err
	}
	return &out, nil
}

// GetByID retrieves a tracked keyword by ID.
func (r *TrackedKeywordRepo) GetByID(ctx context.Context, id string) (*model.TrackedKeyword, error) {
	var out model.TrackedKeyword
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, keywordGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.TrackedKeyword])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeywordNotFound
		}
		return nil, fmt.Errorf("failed to get tracked keyword by ID: %w", err)
	}
	return &out, nil
}

// List retrieves tracked keywords with optional filters and pagination.
func (r *TrackedKeywordRepo) List(ctx context.Context, opts model.TrackedKeywordListOptions) ([]*model.TrackedKeyword, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(keywordColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("keyword", sortDirAsc),
	}
	if opts.BrandID != nil && *opts.BrandID != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("brand_id", database.Equal, *opts.BrandID),
		))
	}
	if opts.Country != nil && *opts.Country != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("country", database.Equal, strings.ToLower(strings.TrimSpace(*opts.Country))),
		))
	}
	if opts.Active != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("active", database.Equal, *opts.Active),
		))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("tracked_keywords", queryOpts...))

	return r.collectList(ctx, query, args, "failed to list tracked keywords")
}

// ListActiveByBrand returns the active keywords for a brand.
func (r *TrackedKeywordRepo) ListActiveByBrand(ctx context.Context, brandID string) ([]*model.TrackedKeyword, error) {
	return r.collectList(ctx, keywordListActiveByBrandQuery, []any{brandID}, "failed to list active keywords")
}

// Update updates a tracked keyword's active flag or domain override.
func (r *TrackedKeywordRepo) Update(ctx context.Context, id string, req model.UpdateTrackedKeywordRequest) (*model.TrackedKeyword, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 3)
	args := make([]any, 0, 4)
	nextIdx := func() int { return len(args) + 1 }

	if req.Active != nil {
		setParts = append(setParts, fmt.Sprintf("active = $%d", nextIdx()))
		args = append(args, *req.Active)
	}
	if req.Domain != nil {
		setParts = append(setParts, fmt.Sprintf("domain = $%d", nextIdx()))
		args = append(args, linkdom.Normalize(*req.Domain))
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	var out model.TrackedKeyword
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		args = append(args, id)
		query := "UPDATE tracked_keywords SET " + strings.Join(setParts, ", ") +
			" WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING " + keywordColumnList
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.TrackedKeyword])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeywordNotFound
		}
		return nil, fmt.Errorf("failed to update tracked keyword: %w", err)
	}
	return &out, nil
}

// Delete stops tracking a keyword. Rank history rows cascade away with it.
func (r *TrackedKeywordRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM tracked_keywords WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete tracked keyword: %w", err)
	}
	return rows > 0, nil
}

// keywordColumns returns the standard column list for tracked keyword queries.
func keywordColumns() []string {
	return []string{"id", "brand_id", "keyword", "country", "domain", "active", "created_at", "updated_at"}
}

func (r *TrackedKeywordRepo) collectList(ctx context.Context, query string, args []any, errMsg string) ([]*model.TrackedKeyword, error) {
	var rowsOut []model.TrackedKeyword
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.TrackedKeyword])
		return err
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	res := make([]*model.TrackedKeyword, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
