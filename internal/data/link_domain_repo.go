package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/linkpilot/linkpilot-api/internal/data/database"
	"github.com/linkpilot/linkpilot-api/internal/data/pgxutil"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
)

// LinkDomainRepo provides database operations for reconciled link domains.
// One row per (brand, root domain); reconciliation passes upsert whole rows.
type LinkDomainRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewLinkDomainRepo creates a new LinkDomainRepo with real time provider.
func NewLinkDomainRepo(db *sql.DB) *LinkDomainRepo {
	return &LinkDomainRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewLinkDomainRepoWithTimeProvider creates a new LinkDomainRepo with a custom time provider.
func NewLinkDomainRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *LinkDomainRepo {
	return &LinkDomainRepo{DB: db, timeProvider: tp}
}

const linkDomainColumnList = "id, brand_id, domain, example_url, domain_rating, domain_traffic, " +
	"nofollow, contacted_on, contact_method, contact_email, contact_form_url, remarks, " +
	"backlink_ids, prospect_ids, reconciled_at, created_at"

const linkDomainUpsertQuery = `
	INSERT INTO link_domains (
		brand_id, domain, example_url, domain_rating, domain_traffic, nofollow,
		contacted_on, contact_method, contact_email, contact_form_url, remarks,
		backlink_ids, prospect_ids, reconciled_at, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
	ON CONFLICT (brand_id, domain) DO UPDATE SET
		example_url      = EXCLUDED.example_url,
		domain_rating    = EXCLUDED.domain_rating,
		domain_traffic   = EXCLUDED.domain_traffic,
		nofollow         = EXCLUDED.nofollow,
		contacted_on     = EXCLUDED.contacted_on,
		contact_method   = EXCLUDED.contact_method,
		contact_email    = EXCLUDED.contact_email,
		contact_form_url = EXCLUDED.contact_form_url,
		remarks          = EXCLUDED.remarks,
		backlink_ids     = EXCLUDED.backlink_ids,
		prospect_ids     = EXCLUDED.prospect_ids,
		reconciled_at    = EXCLUDED.reconciled_at
	RETURNING ` + linkDomainColumnList

// Upsert inserts the aggregate or, on a (brand_id, domain) conflict, replaces
// the existing row's reconciled fields in place. created_at survives updates.
func (r *LinkDomainRepo) Upsert(ctx context.Context, req *model.UpsertLinkDomainRequest) (*model.LinkDomain, error) {
	if req == nil {
		return nil, errors.New("upsert link domain request is required")
	}
	if req.BrandID == "" {
		return nil, errors.New("brand_id is required")
	}
	if req.Domain == "" {
		return nil, errors.New("domain is required")
	}

	backlinkIDs := req.BacklinkIDs
	if backlinkIDs == nil {
		backlinkIDs = []string{}
	}
	prospectIDs := req.ProspectIDs
	if prospectIDs == nil {
		prospectIDs = []string{}
	}

	now := r.timeProvider.Now().UTC()
	var out model.LinkDomain
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, linkDomainUpsertQuery,
			req.BrandID, req.Domain, req.ExampleURL, req.DomainRating, req.DomainTraffic, req.Nofollow,
			req.ContactedOn, req.ContactMethod, req.ContactEmail, req.ContactFormURL, req.Remarks,
			backlinkIDs, prospectIDs, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.LinkDomain])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to upsert link domain: %w", err)
	}
	return &out, nil
}

// GetByDomain retrieves the reconciled row for one (brand, domain) pair.
func (r *LinkDomainRepo) GetByDomain(ctx context.Context, brandID, domain string) (*model.LinkDomain, error) {
	var out model.LinkDomain
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+linkDomainColumnList+`
			FROM link_domains
			WHERE brand_id = $1 AND domain = $2`, brandID, domain)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.LinkDomain])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLinkDomainNotFound
		}
		return nil, fmt.Errorf("failed to get link domain: %w", err)
	}
	return &out, nil
}

// List retrieves link domains with optional filters and pagination.
func (r *LinkDomainRepo) List(ctx context.Context, opts model.LinkDomainListOptions) ([]*model.LinkDomain, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(linkDomainColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("domain", sortDirAsc),
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
	if opts.MinRating != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("domain_rating", database.GreaterThanOrEqual, *opts.MinRating),
		))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("link_domains", queryOpts...))

	var rowsOut []model.LinkDomain
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.LinkDomain])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list link domains: %w", err)
	}
	res := make([]*model.LinkDomain, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// DeleteStale removes rows for a brand not reconciled since the cutoff.
// Domains that stopped appearing in both source tables age out this way.
func (r *LinkDomainRepo) DeleteStale(ctx context.Context, brandID string, before time.Time) (int64, error) {
	var deleted int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			DELETE FROM link_domains
			WHERE brand_id = $1 AND reconciled_at < $2`, brandID, before)
		if err != nil {
			return err
		}
		deleted = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale link domains: %w", err)
	}
	return deleted, nil
}

// linkDomainColumns returns the standard column list for link domain queries.
func linkDomainColumns() []string {
	return []string{
		"id", "brand_id", "domain", "example_url", "domain_rating", "domain_traffic",
		"nofollow", "contacted_on", "contact_method", "contact_email", "contact_form_url",
		"remarks", "backlink_ids", "prospect_ids", "reconciled_at", "created_at",
	}
}
