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

// ProspectRepo provides database operations for outreach prospects.
type ProspectRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewProspectRepo creates a new ProspectRepo with real time provider.
func NewProspectRepo(db *sql.DB) *ProspectRepo {
	return &ProspectRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewProspectRepoWithTimeProvider creates a new ProspectRepo with a custom time provider.
func NewProspectRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ProspectRepo {
	return &ProspectRepo{DB: db, timeProvider: tp}
}

const prospectColumnList = "id, brand_id, url, domain, domain_rating, domain_traffic, nofollow, " +
	"status, contacted_on, contact_method, contact_email, contact_form_url, remarks, created_at, updated_at"

const (
	prospectGetByIDQuery = `
		SELECT ` + prospectColumnList + `
		FROM prospects
		WHERE id = $1`

	prospectListByBrandQuery = `
		SELECT ` + prospectColumnList + `
		FROM prospects
		WHERE brand_id = $1
		ORDER BY created_at ASC`

	prospectStatsQuery = `
		SELECT status, COUNT(*) AS n
		FROM prospects
		WHERE brand_id = $1
		GROUP BY status`
)

// Create inserts a new prospect. The domain column is derived from the URL
// at write time.
func (r *ProspectRepo) Create(ctx context.Context, req *model.CreateProspectRequest) (*model.Prospect, error) {
	if req == nil {
		return nil, errors.New("create prospect request is required")
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
	var out model.Prospect
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO prospects (
				brand_id, url, domain, domain_rating, domain_traffic, nofollow, status,
				contacted_on, contact_method, contact_email, contact_form_url, remarks,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
			RETURNING `+prospectColumnList,
			req.BrandID, req.URL, domain, req.DomainRating, req.DomainTraffic, req.Nofollow, req.Status,
			req.ContactedOn, req.ContactMethod, req.ContactEmail, req.ContactFormURL, req.Remarks,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Prospect])
		return err
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByID retrieves a prospect by ID.
func (r *ProspectRepo) GetByID(ctx context.Context, id string) (*model.Prospect, error) {
	var out model.Prospect
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, prospectGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Prospect])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProspectNotFound
		}
		return nil, fmt.Errorf("failed to get prospect by ID: %w", err)
	}
	return &out, nil
}

// List retrieves prospects with optional filters and pagination.
func (r *ProspectRepo) List(ctx context.Context, opts model.ProspectListOptions) ([]*model.Prospect, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(prospectColumns()...),
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
			database.WhereCond("status", database.Equal, string(*opts.Status)),
		))
	}
	if opts.Domain != nil && strings.TrimSpace(*opts.Domain) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("domain", database.ILike, "%"+strings.TrimSpace(*opts.Domain)+"%"),
		))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("prospects", queryOpts...))

	return r.collectList(ctx, query, args, "failed to list prospects")
}

// ListByBrand returns every prospect for a brand without paging.
func (r *ProspectRepo) ListByBrand(ctx context.Context, brandID string) ([]*model.Prospect, error) {
	return r.collectList(ctx, prospectListByBrandQuery, []any{brandID}, "failed to list prospects by brand")
}

// Update updates fields of a prospect.
func (r *ProspectRepo) Update(ctx context.Context, id string, req model.UpdateProspectRequest) (*model.Prospect, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 10)
	args := make([]any, 0, 11)
	nextIdx := func() int { return len(args) + 1 }

	if req.DomainRating != nil {
		setParts = append(setParts, fmt.Sprintf("domain_rating = $%d", nextIdx()))
		args = append(args, *req.DomainRating)
	}
	if req.DomainTraffic != nil {
		setParts = append(setParts, fmt.Sprintf("domain_traffic = $%d", nextIdx()))
		args = append(args, *req.DomainTraffic)
	}
	if req.Nofollow != nil {
		setParts = append(setParts, fmt.Sprintf("nofollow = $%d", nextIdx()))
		args = append(args, *req.Nofollow)
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, string(*req.Status))
	}
	if req.ContactedOn != nil {
		setParts = append(setParts, fmt.Sprintf("contacted_on = $%d", nextIdx()))
		args = append(args, *req.ContactedOn)
	}
	if req.ContactMethod != nil {
		setParts = append(setParts, fmt.Sprintf("contact_method = $%d", nextIdx()))
		args = append(args, *req.ContactMethod)
	}
	if req.ContactEmail != nil {
		setParts = append(setParts, fmt.Sprintf("contact_email = $%d", nextIdx()))
		args = append(args, *req.ContactEmail)
	}
	if req.ContactFormURL != nil {
		setParts = append(setParts, fmt.Sprintf("contact_form_url = $%d", nextIdx()))
		args = append(args, *req.ContactFormURL)
	}
	if req.Remarks != nil {
		setParts = append(setParts, fmt.Sprintf("remarks = $%d", nextIdx()))
		args = append(args, *req.Remarks)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	var out model.Prospect
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		args = append(args, id)
		query := "UPDATE prospects SET " + strings.Join(setParts, ", ") +
			" WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING " + prospectColumnList
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Prospect])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProspectNotFound
		}
		return nil, fmt.Errorf("failed to update prospect: %w", err)
	}
	return &out, nil
}

// Delete deletes a prospect by ID.
func (r *ProspectRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM prospects WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete prospect: %w", err)
	}
	return rows > 0, nil
}

// Stats returns prospect counts per outreach status for a brand.
func (r *ProspectRepo) Stats(ctx context.Context, brandID string) (*model.ProspectStats, error) {
	stats := &model.ProspectStats{}
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, prospectStatsQuery, brandID)
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
			stats.Total += n
			switch model.ProspectStatus(status) {
			case model.ProspectStatusNotContacted:
				stats.NotContacted = n
			case model.ProspectStatusContacted:
				stats.Contacted = n
			case model.ProspectStatusInNegotiation:
				stats.InNegotiation = n
			case model.ProspectStatusAgreed:
				stats.Agreed = n
			case model.ProspectStatusLinkPlaced:
				stats.LinkPlaced = n
			case model.ProspectStatusRejected:
				stats.Rejected = n
			}
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get prospect stats: %w", err)
	}
	return stats, nil
}

// prospectColumns returns the standard column list for prospect queries.
func prospectColumns() []string {
	return []string{
		"id", "brand_id", "url", "domain", "domain_rating", "domain_traffic", "nofollow",
		"status", "contacted_on", "contact_method", "contact_email", "contact_form_url",
		"remarks", "created_at", "updated_at",
	}
}

func (r *ProspectRepo) collectList(ctx context.Context, query string, args []any, errMsg string) ([]*model.Prospect, error) {
	var rowsOut []model.Prospect
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Prospect])
		return err
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	res := make([]*model.Prospect, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
