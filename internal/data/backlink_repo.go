package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/linkpilot/linkpilot-api/internal/data/database"
	"github.com/linkpilot/linkpilot-api/internal/data/pgxutil"
	"github.com/linkpilot/linkpilot-api/internal/domain/linkdom"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
)

// BacklinkRepo provides database operations for backlinks.
type BacklinkRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewBacklinkRepo creates a new BacklinkRepo with real time provider.
func NewBacklinkRepo(db *sql.DB) *BacklinkRepo {
	return &BacklinkRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewBacklinkRepoWithTimeProvider creates a new BacklinkRepo with a custom time provider.
func NewBacklinkRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *BacklinkRepo {
	return &BacklinkRepo{DB: db, timeProvider: tp}
}

const backlinkColumnList = "id, brand_id, url, domain, domain_rating, domain_traffic, " +
	"anchor_text, nofollow, acquired_on, created_at, updated_at"

const (
	backlinkGetByIDQuery = `
		SELECT ` + backlinkColumnList + `
		FROM backlinks
		WHERE id = $1`

	backlinkListByBrandQuery = `
		SELECT ` + backlinkColumnList + `
		FROM backlinks
		WHERE brand_id = $1
		ORDER BY created_at ASC`
)

// Create inserts a new backlink. The row's domain column is derived from the
// URL at write time; reconciliation and classification group on it.
func (r *BacklinkRepo) Create(ctx context.Context, req *model.CreateBacklinkRequest) (*model.Backlink, error) {
	if req == nil {
		return nil, errors.New("create backlink request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	domain := linkdom.Normalize(req.URL)
	if domain == "" {
		return nil, errors.New("url must yield a usable domain")
	}

	now := r.timeProvider.Now().UTC()
	var out model.Backlink
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO backlinks (
				brand_id, url, domain, domain_rating, domain_traffic,
				anchor_text, nofollow, acquired_on, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
			RETURNING `+backlinkColumnList,
			req.BrandID, req.URL, domain, req.DomainRating, req.DomainTraffic,
			req.AnchorText, req.Nofollow, req.AcquiredOn, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Backlink])
		return err
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByID retrieves a backlink by ID.
func (r *BacklinkRepo) GetByID(ctx context.Context, id string) (*model.Backlink, error) {
	var out model.Backlink
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, backlinkGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Backlink])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBacklinkNotFound
		}
		return nil, fmt.Errorf("failed to get backlink by ID: %w", err)
	}
	return &out, nil
}

// List retrieves backlinks with optional filters and pagination.
func (r *BacklinkRepo) List(ctx context.Context, opts model.BacklinkListOptions) ([]*model.Backlink, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(backlinkColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("created_at", sortDirDesc),
	}
	if opts.BrandID != nil && *opts.BrandID != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("brand_id", database.Equal, *opts.BrandID),
		))
	}
	if opts.Domain != nil && strings.TrimSpace(*opts.Domain) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("domain", database.ILike, "%"+strings.TrimSpace(*opts.Domain)+"%"),
		))
	}
	if opts.Nofollow != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("nofollow", database.Equal, *opts.Nofollow),
		))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("backlinks", queryOpts...))

	return r.collectList(ctx, query, args, "failed to list backlinks")
}

// ListByBrand returns every backlink for a brand without paging.
func (r *BacklinkRepo) ListByBrand(ctx context.Context, brandID string) ([]*model.Backlink, error) {
	return r.collectList(ctx, backlinkListByBrandQuery, []any{brandID}, "failed to list backlinks by brand")
}

// Update updates fields of a backlink. Changing the URL re-derives the
// domain column.
func (r *BacklinkRepo) Update(ctx context.Context, id string, req model.UpdateBacklinkRequest) (*model.Backlink, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 8)
	args := make([]any, 0, 9)
	nextIdx := func() int { return len(args) + 1 }

	if req.URL != nil {
		setParts = append(setParts, fmt.Sprintf("url = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.URL))
		setParts = append(setParts, fmt.Sprintf("domain = $%d", nextIdx()))
		args = append(args, linkdom.Normalize(*req.URL))
	}
	if req.DomainRating != nil {
		setParts = append(setParts, fmt.Sprintf("domain_rating = $%d", nextIdx()))
		args = append(args, *req.DomainRating)
	}
	if req.DomainTraffic != nil {
		setParts = append(setParts, fmt.Sprintf("domain_traffic = $%d", nextIdx()))
		args = append(args, *req.DomainTraffic)
	}
	if req.AnchorText != nil {
		setParts = append(setParts, fmt.Sprintf("anchor_text = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.AnchorText))
	}
	if req.Nofollow != nil {
		setParts = append(setParts, fmt.Sprintf("nofollow = $%d", nextIdx()))
		args = append(args, *req.Nofollow)
	}
	if req.AcquiredOn != nil {
		setParts = append(setParts, fmt.Sprintf("acquired_on = $%d", nextIdx()))
		args = append(args, *req.AcquiredOn)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	var out model.Backlink
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		args = append(args, id)
		query := "UPDATE backlinks SET " + strings.Join(setParts, ", ") +
			" WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING " + backlinkColumnList
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Backlink])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBacklinkNotFound
		}
		return nil, fmt.Errorf("failed to update backlink: %w", err)
	}
	return &out, nil
}

// Delete deletes a backlink by ID.
func (r *BacklinkRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM backlinks WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete backlink: %w", err)
	}
	return rows > 0, nil
}

// backlinkColumns returns the standard column list for backlink queries.
func backlinkColumns() []string {
	return []string{
		"id", "brand_id", "url", "domain", "domain_rating", "domain_traffic",
		"anchor_text", "nofollow", "acquired_on", "created_at", "updated_at",
	}
}

func (r *BacklinkRepo) collectList(ctx context.Context, query string, args []any, errMsg string) ([]*model.Backlink, error) {
	var rowsOut []model.Backlink
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Backlink])
		return err
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	res := make([]*model.Backlink, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
