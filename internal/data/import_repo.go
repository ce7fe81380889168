package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/data/database"
	"github.com/linkpilot/linkpilot-api/internal/data/pgxutil"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
)

// ImportRepo provides database operations for import batch audit records.
type ImportRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewImportRepo creates a new ImportRepo with real time provider.
func NewImportRepo(db *sql.DB) *ImportRepo {
	return &ImportRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewImportRepoWithTimeProvider creates a new ImportRepo with a custom time provider.
func NewImportRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ImportRepo {
	return &ImportRepo{DB: db, timeProvider: tp}
}

const importBatchColumnList = "id, brand_id, source, row_count, new_count, have_count, " +
	"piped_count, skip_count, created_at"

const importRowColumnList = "id, batch_id, url, domain, domain_rating, domain_traffic, " +
	"anchor_text, nofollow, classification, created_at"

// RecordBatch persists the batch summary and an audit copy of each classified
// row in one transaction. Either everything lands or nothing does.
func (r *ImportRepo) RecordBatch(ctx context.Context, params core.RecordImportBatchParams) (*model.ImportBatch, error) {
	if params.Result == nil {
		return nil, errors.New("classify result is required")
	}
	if params.BrandID == "" {
		return nil, errors.New("brand_id is required")
	}

	res := params.Result
	now := r.timeProvider.Now().UTC()

	var batch model.ImportBatch
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			rows, err := tx.Query(ctx, `
				INSERT INTO import_batches (
					brand_id, source, row_count, new_count, have_count, piped_count, skip_count, created_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				RETURNING `+importBatchColumnList,
				params.BrandID, params.Source, len(res.Rows),
				res.NewOpportunities, res.AlreadyHave, res.InProspects, res.Skipped, now,
			)
			if err != nil {
				return err
			}
			batch, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ImportBatch])
			if err != nil {
				return err
			}

			if len(res.Rows) == 0 {
				return nil
			}
			_, err = tx.CopyFrom(ctx,
				pgx.Identifier{"import_rows"},
				[]string{"batch_id", "url", "domain", "domain_rating", "domain_traffic",
					"anchor_text", "nofollow", "classification", "created_at"},
				pgx.CopyFromSlice(len(res.Rows), func(i int) ([]any, error) {
					row := res.Rows[i]
					return []any{batch.ID, row.URL, row.Domain, row.DomainRating, row.DomainTraffic,
						row.AnchorText, row.Nofollow, row.Classification, now}, nil
				}),
			)
			return err
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record import batch: %w", err)
	}
	return &batch, nil
}

// GetBatch retrieves an import batch summary by ID.
func (r *ImportRepo) GetBatch(ctx context.Context, id string) (*model.ImportBatch, error) {
	var out model.ImportBatch
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+importBatchColumnList+`
			FROM import_batches
			WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ImportBatch])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to get import batch: %w", err)
	}
	return &out, nil
}

// ListBatches retrieves import batches, newest first.
func (r *ImportRepo) ListBatches(ctx context.Context, opts model.ImportBatchListOptions) ([]*model.ImportBatch, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns("id", "brand_id", "source", "row_count", "new_count",
			"have_count", "piped_count", "skip_count", "created_at"),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("created_at", sortDirDesc),
	}
	if opts.BrandID != nil && *opts.BrandID != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("brand_id", database.Equal, *opts.BrandID),
		))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions("import_batches", queryOpts...))

	var rowsOut []model.ImportBatch
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ImportBatch])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list import batches: %w", err)
	}
	res := make([]*model.ImportBatch, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// ListRows retrieves the audit rows for one batch in insertion order.
func (r *ImportRepo) ListRows(ctx context.Context, batchID string) ([]*model.ImportRowAudit, error) {
	var rowsOut []model.ImportRowAudit
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+importRowColumnList+`
			FROM import_rows
			WHERE batch_id = $1
			ORDER BY id ASC`, batchID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ImportRowAudit])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list import rows: %w", err)
	}
	res := make([]*model.ImportRowAudit, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
