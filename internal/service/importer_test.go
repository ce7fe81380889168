package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/linkpilot/linkpilot-api/internal/core"
	"github.com/linkpilot/linkpilot-api/internal/data"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
	"github.com/linkpilot/linkpilot-api/internal/mocks"
)

type importFixture struct {
	brands    *mocks.MockBrandRepository
	backlinks *mocks.MockBacklinkRepository
	prospects *mocks.MockProspectRepository
	imports   *mocks.MockImportRepository
}

func newImportFixture(ctrl *gomock.Controller) importFixture {
	return importFixture{
		brands:    mocks.NewMockBrandRepository(ctrl),
		backlinks: mocks.NewMockBacklinkRepository(ctrl),
		prospects: mocks.NewMockProspectRepository(ctrl),
		imports:   mocks.NewMockImportRepository(ctrl),
	}
}

func (f importFixture) service() *ImportService {
	return NewImportService(ImportServiceOptions{
		Brands:    f.brands,
		Backlinks: f.backlinks,
		Prospects: f.prospects,
		Imports:   f.imports,
	})
}

func TestNewImportService_PanicsWithoutDeps(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newImportFixture(ctrl)
	assert.Panics(t, func() {
		NewImportService(ImportServiceOptions{
			Brands:    f.brands,
			Backlinks: f.backlinks,
			Prospects: f.prospects,
		})
	})
}

func TestImportService_Classify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newImportFixture(ctrl)
	svc := f.service()

	ctx := context.Background()

	// Already-have lookups span the whole portfolio, not just the importing
	// brand.
	f.brands.EXPECT().List(ctx, model.BrandListOptions{Limit: 1000}).Return([]*model.Brand{
		{ID: "brand-1", Name: "Acme Running"},
		{ID: "brand-2", Name: "Beta Gear"},
	}, nil)
	f.backlinks.EXPECT().ListByBrand(gomock.Any(), "brand-1").Return([]*model.Backlink{
		{ID: "b-1", BrandID: "brand-1", URL: "https://blog-a.com/review", Domain: "blog-a.com"},
	}, nil)
	f.backlinks.EXPECT().ListByBrand(gomock.Any(), "brand-2").Return([]*model.Backlink{
		{ID: "b-2", BrandID: "brand-2", URL: "https://blog-a.com/roundup", Domain: "blog-a.com"},
	}, nil)
	f.prospects.EXPECT().ListByBrand(gomock.Any(), "brand-1").Return([]*model.Prospect{
		{
			ID:      "p-1",
			BrandID: "brand-1",
			URL:     "https://shoereview.net/write-for-us",
			Domain:  "shoereview.net",
			Status:  model.ProspectStatusContacted,
		},
	}, nil)

	f.imports.EXPECT().RecordBatch(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, params core.RecordImportBatchParams) (*model.ImportBatch, error) {
			assert.Equal(t, "brand-1", params.BrandID)
			assert.Equal(t, "ahrefs", params.Source)
			require.NotNil(t, params.Result)
			return &model.ImportBatch{ID: "batch-1", BrandID: "brand-1", Source: "ahrefs"}, nil
		})

	req := &model.ClassifyImportRequest{
		BrandID: "brand-1",
		Source:  "Ahrefs",
		Rows: []map[string]any{
			{"url": "https://blog-a.com/some-post", "domain rating": 55},
			{"Referring URL": "https://www.shoereview.net/reviews"},
			{"url": "https://fresh.example.org/article", "dr": 70},
			{"url": "not-a-url"},
		},
	}

	result, err := svc.Classify(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "batch-1", result.BatchID)
	assert.Equal(t, 1, result.NewOpportunities)
	assert.Equal(t, 1, result.AlreadyHave)
	assert.Equal(t, 1, result.InProspects)
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, result.SkipReasons, 1)

	// New opportunities sort first, already-held links last.
	require.Len(t, result.Rows, 3)
	assert.Equal(t, "fresh.example.org", result.Rows[0].Domain)
	assert.Equal(t, "new", result.Rows[0].Classification)
	assert.Equal(t, "shoereview.net", result.Rows[1].Domain)
	assert.Equal(t, "in_prospects", result.Rows[1].Classification)
	assert.Equal(t, "contacted", result.Rows[1].ProspectStatus)
	assert.Equal(t, "blog-a.com", result.Rows[2].Domain)
	assert.Equal(t, "already_have", result.Rows[2].Classification)
	assert.Equal(t, []string{"Acme Running", "Beta Gear"}, result.Rows[2].Brands)
}

func TestImportService_Classify_FieldPaths(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newImportFixture(ctrl)
	svc := f.service()

	ctx := context.Background()
	f.brands.EXPECT().List(ctx, gomock.Any()).Return(nil, nil)
	f.prospects.EXPECT().ListByBrand(gomock.Any(), "brand-1").Return(nil, nil)
	f.imports.EXPECT().RecordBatch(ctx, gomock.Any()).Return(&model.ImportBatch{ID: "batch-2"}, nil)

	req := &model.ClassifyImportRequest{
		BrandID: "brand-1",
		Rows: []map[string]any{
			{"link": map[string]any{"href": "https://nested.example.com/post"}, "metrics": map[string]any{"dr": 61.0}},
		},
		FieldPaths: map[string]string{
			"url":           "link.href",
			"domain_rating": "metrics.dr",
		},
	}

	result, err := svc.Classify(ctx, req)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "nested.example.com", result.Rows[0].Domain)
	assert.Equal(t, "new", result.Rows[0].Classification)
	require.NotNil(t, result.Rows[0].DomainRating)
	assert.Equal(t, 61, *result.Rows[0].DomainRating)
}

func TestImportService_Classify_InvalidFieldPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newImportFixture(ctrl).service()

	_, err := svc.Classify(context.Background(), &model.ClassifyImportRequest{
		BrandID:    "brand-1",
		Rows:       []map[string]any{{"url": "https://a.com"}},
		FieldPaths: map[string]string{"url": "]]["},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestImportService_Classify_EmptyRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newImportFixture(ctrl).service()

	_, err := svc.Classify(context.Background(), &model.ClassifyImportRequest{BrandID: "brand-1"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestImportService_GetBatch_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newImportFixture(ctrl)
	svc := f.service()

	ctx := context.Background()
	f.imports.EXPECT().GetBatch(ctx, "missing").Return(nil, data.ErrBatchNotFound)

	batch, err := svc.GetBatch(ctx, "missing")
	require.Error(t, err)
	assert.Nil(t, batch)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestImportService_ListBatches_NormalizesPagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newImportFixture(ctrl)
	svc := f.service()

	ctx := context.Background()
	f.imports.EXPECT().
		ListBatches(ctx, model.ImportBatchListOptions{Limit: 50}).
		Return([]*model.ImportBatch{}, nil)

	_, err := svc.ListBatches(ctx, model.ImportBatchListOptions{})
	require.NoError(t, err)
}

func TestImportService_ListRows_RequiresBatchID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newImportFixture(ctrl).service()

	_, err := svc.ListRows(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
