package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/linkpilot/linkpilot-api/internal/data"
	"github.com/linkpilot/linkpilot-api/internal/domain/linkdom"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
	"github.com/linkpilot/linkpilot-api/internal/mocks"
)

func TestNewImposterService_PanicsWithoutDeps(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assert.Panics(t, func() {
		NewImposterService(ImposterServiceOptions{Watches: mocks.NewMockImposterWatchRepository(ctrl)})
	})
}

func TestImposterService_Create_DefaultsPatternType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	watches := mocks.NewMockImposterWatchRepository(ctrl)
	svc := NewImposterService(ImposterServiceOptions{
		Watches:     watches,
		LinkDomains: mocks.NewMockLinkDomainRepository(ctrl),
	})

	ctx := context.Background()
	req := &model.CreateImposterWatchRequest{BrandID: "brand-1", Pattern: " ACME-Shoes.COM "}
	want := &model.ImposterWatch{ID: "watch-1", Pattern: "acme-shoes.com", PatternType: linkdom.PatternTypeExact}

	watches.EXPECT().Create(ctx, req).DoAndReturn(
		func(_ context.Context, got *model.CreateImposterWatchRequest) (*model.ImposterWatch, error) {
			assert.Equal(t, "acme-shoes.com", got.Pattern)
			assert.Equal(t, linkdom.PatternTypeExact, got.PatternType)
			return want, nil
		})

	watch, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, want, watch)
}

func TestImposterService_Create_InvalidPatternType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewImposterService(ImposterServiceOptions{
		Watches:     mocks.NewMockImposterWatchRepository(ctrl),
		LinkDomains: mocks.NewMockLinkDomainRepository(ctrl),
	})

	_, err := svc.Create(context.Background(), &model.CreateImposterWatchRequest{
		BrandID:     "brand-1",
		Pattern:     "acme-shoes.com",
		PatternType: "regex",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestImposterService_Sweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	watches := mocks.NewMockImposterWatchRepository(ctrl)
	linkDomains := mocks.NewMockLinkDomainRepository(ctrl)
	svc := NewImposterService(ImposterServiceOptions{Watches: watches, LinkDomains: linkDomains})

	ctx := context.Background()
	brandID := "brand-1"

	watches.EXPECT().ListActiveByBrand(ctx, brandID).Return([]*model.ImposterWatch{
		{ID: "watch-1", Pattern: "acme-shoes.com", PatternType: linkdom.PatternTypeExact},
		{ID: "watch-2", Pattern: "*.acmerunning.com", PatternType: linkdom.PatternTypeWildcard},
	}, nil)

	linkDomains.EXPECT().
		List(ctx, model.LinkDomainListOptions{BrandID: &brandID, Limit: sweepPageSize}).
		Return([]*model.LinkDomain{
			{Domain: "acme-shoes.com"},
			{Domain: "shop.acmerunning.com"},
			{Domain: "cdn.acmerunning.com"},
			{Domain: "unrelated.example.org"},
		}, nil)

	// One counter bump per watch, no matter how many domains it hit.
	watches.EXPECT().RecordMatch(ctx, "watch-1", gomock.Any()).Return(nil)
	watches.EXPECT().RecordMatch(ctx, "watch-2", gomock.Any()).Return(nil)

	matches, err := svc.Sweep(ctx, brandID)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	byWatch := make(map[string][]string)
	for _, m := range matches {
		byWatch[m.WatchID] = append(byWatch[m.WatchID], m.Domain)
	}
	assert.Equal(t, []string{"acme-shoes.com"}, byWatch["watch-1"])
	assert.ElementsMatch(t, []string{"shop.acmerunning.com", "cdn.acmerunning.com"}, byWatch["watch-2"])
}

func TestImposterService_Sweep_NoActiveWatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	watches := mocks.NewMockImposterWatchRepository(ctrl)
	svc := NewImposterService(ImposterServiceOptions{
		Watches:     watches,
		LinkDomains: mocks.NewMockLinkDomainRepository(ctrl),
	})

	ctx := context.Background()
	watches.EXPECT().ListActiveByBrand(ctx, "brand-1").Return(nil, nil)

	matches, err := svc.Sweep(ctx, "brand-1")
	require.NoError(t, err)
	assert.Nil(t, matches)
}

func TestImposterService_Sweep_RequiresBrandID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewImposterService(ImposterServiceOptions{
		Watches:     mocks.NewMockImposterWatchRepository(ctrl),
		LinkDomains: mocks.NewMockLinkDomainRepository(ctrl),
	})

	_, err := svc.Sweep(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestImposterService_Update_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	watches := mocks.NewMockImposterWatchRepository(ctrl)
	svc := NewImposterService(ImposterServiceOptions{
		Watches:     watches,
		LinkDomains: mocks.NewMockLinkDomainRepository(ctrl),
	})

	ctx := context.Background()
	status := "Resolved"
	want := &model.ImposterWatch{ID: "watch-1", Status: model.ImposterStatusResolved}

	watches.EXPECT().Update(ctx, "watch-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, req model.UpdateImposterWatchRequest) (*model.ImposterWatch, error) {
			require.NotNil(t, req.Status)
			assert.Equal(t, model.ImposterStatusResolved, *req.Status)
			return want, nil
		})

	watch, err := svc.Update(ctx, "watch-1", model.UpdateImposterWatchRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, want, watch)
}

func TestImposterService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	watches := mocks.NewMockImposterWatchRepository(ctrl)
	svc := NewImposterService(ImposterServiceOptions{
		Watches:     watches,
		LinkDomains: mocks.NewMockLinkDomainRepository(ctrl),
	})

	ctx := context.Background()
	watches.EXPECT().Delete(ctx, "missing").Return(false, data.ErrWatchNotFound)

	deleted, err := svc.Delete(ctx, "missing")
	require.Error(t, err)
	assert.False(t, deleted)
	assert.True(t, apperrors.IsNotFound(err))
}
