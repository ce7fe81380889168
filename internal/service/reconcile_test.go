package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/linkpilot/linkpilot-api/internal/data"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
	"github.com/linkpilot/linkpilot-api/internal/mocks"
)

type reconcileFixture struct {
	backlinks   *mocks.MockBacklinkRepository
	prospects   *mocks.MockProspectRepository
	linkDomains *mocks.MockLinkDomainRepository
}

func newReconcileFixture(ctrl *gomock.Controller) reconcileFixture {
	return reconcileFixture{
		backlinks:   mocks.NewMockBacklinkRepository(ctrl),
		prospects:   mocks.NewMockProspectRepository(ctrl),
		linkDomains: mocks.NewMockLinkDomainRepository(ctrl),
	}
}

func (f reconcileFixture) service() *ReconcileService {
	return NewReconcileService(ReconcileServiceOptions{
		Backlinks:   f.backlinks,
		Prospects:   f.prospects,
		LinkDomains: f.linkDomains,
	})
}

func (f reconcileFixture) expectInputs(ctx context.Context, brandID string) {
	rating40, rating55 := 40, 55
	email := "editor@shoereview.net"

	f.backlinks.EXPECT().ListByBrand(gomock.Any(), brandID).Return([]*model.Backlink{
		{ID: "b-1", BrandID: brandID, URL: "https://www.blog-a.com/post", DomainRating: &rating40},
		{ID: "b-2", BrandID: brandID, URL: "https://blog-a.com/other", DomainRating: &rating55},
	}, nil)
	f.prospects.EXPECT().ListByBrand(gomock.Any(), brandID).Return([]*model.Prospect{
		{ID: "p-1", BrandID: brandID, URL: "https://shoereview.net/write-for-us", ContactEmail: &email},
	}, nil)
}

func TestNewReconcileService_PanicsWithoutDeps(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newReconcileFixture(ctrl)
	assert.Panics(t, func() {
		NewReconcileService(ReconcileServiceOptions{
			Backlinks: f.backlinks,
			Prospects: f.prospects,
		})
	})
}

func TestReconcileService_Reconcile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newReconcileFixture(ctrl)
	svc := f.service()

	ctx := context.Background()
	f.expectInputs(ctx, "brand-1")

	// Aggregates are written in sorted domain order.
	gomock.InOrder(
		f.linkDomains.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, req *model.UpsertLinkDomainRequest) (*model.LinkDomain, error) {
				assert.Equal(t, "blog-a.com", req.Domain)
				assert.Equal(t, "https://www.blog-a.com/post", req.ExampleURL)
				require.NotNil(t, req.DomainRating)
				assert.Equal(t, 55, *req.DomainRating)
				assert.Equal(t, []string{"b-1", "b-2"}, req.BacklinkIDs)
				assert.Empty(t, req.ProspectIDs)
				return &model.LinkDomain{ID: "ld-1"}, nil
			}),
		f.linkDomains.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, req *model.UpsertLinkDomainRequest) (*model.LinkDomain, error) {
				assert.Equal(t, "shoereview.net", req.Domain)
				require.NotNil(t, req.ContactEmail)
				assert.Equal(t, "editor@shoereview.net", *req.ContactEmail)
				assert.Equal(t, []string{"p-1"}, req.ProspectIDs)
				return &model.LinkDomain{ID: "ld-2"}, nil
			}),
	)
	f.linkDomains.EXPECT().DeleteStale(ctx, "brand-1", gomock.Any()).Return(int64(3), nil)

	result, err := svc.Reconcile(ctx, "brand-1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.DomainsTotal)
	assert.Equal(t, 2, result.DomainsWritten)
	assert.Zero(t, result.DomainsFailed)
	assert.Empty(t, result.Failures)
}

func TestReconcileService_Reconcile_FailedDomainSkipsStaleSweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newReconcileFixture(ctrl)
	svc := f.service()

	ctx := context.Background()
	f.expectInputs(ctx, "brand-1")

	gomock.InOrder(
		f.linkDomains.EXPECT().Upsert(ctx, gomock.Any()).Return(nil, errors.New("serialization failure")),
		f.linkDomains.EXPECT().Upsert(ctx, gomock.Any()).Return(&model.LinkDomain{ID: "ld-2"}, nil),
	)
	// No DeleteStale expectation: a failed domain's previous row must
	// survive until a clean pass.

	result, err := svc.Reconcile(ctx, "brand-1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.DomainsTotal)
	assert.Equal(t, 1, result.DomainsWritten)
	assert.Equal(t, 1, result.DomainsFailed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "blog-a.com", result.Failures[0].Domain)
}

func TestReconcileService_Reconcile_CancellationAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newReconcileFixture(ctrl)
	svc := f.service()

	ctx := context.Background()
	f.expectInputs(ctx, "brand-1")
	f.linkDomains.EXPECT().Upsert(ctx, gomock.Any()).Return(nil, context.Canceled)

	result, err := svc.Reconcile(ctx, "brand-1")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReconcileService_Reconcile_RequiresBrandID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newReconcileFixture(ctrl).service()

	_, err := svc.Reconcile(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestReconcileService_GetDomain_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newReconcileFixture(ctrl)
	svc := f.service()

	ctx := context.Background()
	f.linkDomains.EXPECT().GetByDomain(ctx, "brand-1", "missing.com").Return(nil, data.ErrLinkDomainNotFound)

	row, err := svc.GetDomain(ctx, "brand-1", "missing.com")
	require.Error(t, err)
	assert.Nil(t, row)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestReconcileService_ListDomains_NormalizesPagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newReconcileFixture(ctrl)
	svc := f.service()

	ctx := context.Background()
	f.linkDomains.EXPECT().
		List(ctx, model.LinkDomainListOptions{Limit: 50}).
		Return([]*model.LinkDomain{}, nil)

	_, err := svc.ListDomains(ctx, model.LinkDomainListOptions{})
	require.NoError(t, err)
}
