package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgerrcode"

	"github.com/linkpilot/linkpilot-api/internal/data/database"
	"github.com/linkpilot/linkpilot-api/internal/data/pgxutil"
	"github.com/linkpilot/linkpilot-api/internal/domain/linkdom"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
)

// BrandRepo provides database operations for brands.
type BrandRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewBrandRepo creates a new BrandRepo with real time provider.
func NewBrandRepo(db *sql.DB) *BrandRepo {
	return &BrandRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewBrandRepoWithTimeProvider creates a new BrandRepo with a custom time provider (useful for tests).
func NewBrandRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *BrandRepo {
	return &BrandRepo{DB: db, timeProvider: tp}
}

const brandColumnList = "id, name, site_url, domain, country, created_at, updated_at"

const (
	brandGetByIDQuery = `
		SELECT ` + brandColumnList + `
		FROM brands
		WHERE id = $1`

	brandGetByNameQuery = `
		SELECT ` + brandColumnList + `
		FROM brands
		WHERE name = $1`
)

// Create inserts a new brand. The brand's canonical domain is derived from
// site_url at write time so later reads never re-normalize.
func (r *BrandRepo) Create(ctx context.Context, req *model.CreateBrandRequest) (*model.Brand, error) {
	if req == nil {
		return nil, errors.New("create brand request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	domain := linkdom.Normalize(req.SiteURL)
	if domain == "" {
		return nil, errors.New("site_url must yield a usable domain")
	}

	now := r.timeProvider.Now().UTC()
	var out model.Brand
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO brands (name, site_url, domain, country, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING `+brandColumnList,
			req.Name, req.SiteURL, domain, req.Country, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Brand])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a brand by ID.
func (r *BrandRepo) GetByID(ctx context.Context, id string) (*model.Brand, error) {
	return r.getByQuery(ctx, brandGetByIDQuery, "failed to get brand by ID", id)
}

// GetByName retrieves a brand by name.
func (r *BrandRepo) GetByName(ctx context.Context, name string) (*model.Brand, error) {
	return r.getByQuery(ctx, brandGetByNameQuery, "failed to get brand by name", name)
}

// List retrieves brands with optional name filter and pagination.
func (r *BrandRepo) List(ctx context.Context, opts model.BrandListOptions) ([]*model.Brand, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(brandColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("created_at", sortDirDesc),
	}
	if opts.Name != nil && strings.TrimSpace(*opts.Name) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("name", database.ILike, "%"+strings.TrimSpace(*opts.Name)+"%"),
		))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("brands", queryOpts...))

	var rowsOut []model.Brand
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Brand])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	res := make([]*model.Brand, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a brand. Changing site_url re-derives the
// canonical domain.
func (r *BrandRepo) Update(ctx context.Context, id string, req model.UpdateBrandRequest) (*model.Brand, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := r.buildUpdateClause(req)
	if setClause == "" {
		return r.GetByID(ctx, id)
	}

	var out model.Brand
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		args = append(args, id)
		query := "UPDATE brands SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING " + brandColumnList
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Brand])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a brand.
func (r *BrandRepo) buildUpdateClause(req model.UpdateBrandRequest) (string, []any) {
	setParts := make([]string, 0, 5)
	args := make([]any, 0, 6)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, *req.Name)
	}
	if req.SiteURL != nil {
		setParts = append(setParts, fmt.Sprintf("site_url = $%d", nextIdx()))
		args = append(args, *req.SiteURL)
		setParts = append(setParts, fmt.Sprintf("domain = $%d", nextIdx()))
		args = append(args, linkdom.Normalize(*req.SiteURL))
	}
	if req.Country != nil {
		setParts = append(setParts, fmt.Sprintf("country = $%d", nextIdx()))
		args = append(args, *req.Country)
	}

	if len(setParts) == 0 {
		return "", nil
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	return strings.Join(setParts, ", "), args
}

// Delete deletes a brand by ID.
func (r *BrandRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete brand: %w", err)
	}
	return rows > 0, nil
}

// brandColumns returns the standard column list for brand queries.
func brandColumns() []string {
	return []string{"id", "name", "site_url", "domain", "country", "created_at", "updated_at"}
}

// getByQuery executes a query and returns a single brand.
func (r *BrandRepo) getByQuery(ctx context.Context, q, errMsg string, args ...any) (*model.Brand, error) {
	var brand model.Brand
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		brand, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Brand])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &brand, nil
}

func (r *BrandRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrBrandNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrBrandNameExists
	}
	return err
}
