package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/linkpilot/linkpilot-api/internal/data"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	apperrors "github.com/linkpilot/linkpilot-api/internal/errors"
	"github.com/linkpilot/linkpilot-api/internal/mocks"
)

func TestNewKeywordService_PanicsWithoutRepo(t *testing.T) {
	assert.Panics(t, func() {
		NewKeywordService(KeywordServiceOptions{})
	})
}

func TestKeywordService_Create_NormalizesBeforePersist(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockTrackedKeywordRepository(ctrl)
	svc := NewKeywordService(KeywordServiceOptions{Repo: repo})

	ctx := context.Background()
	req := &model.CreateTrackedKeywordRequest{
		BrandID: "brand-1",
		Keyword: "  Running Shoes  ",
		Country: "US",
		Domain:  "https://www.acmerunning.com/shop",
	}
	want := &model.TrackedKeyword{ID: "kw-1", BrandID: "brand-1", Keyword: "running shoes", Country: "us"}

	repo.EXPECT().Create(ctx, req).DoAndReturn(
		func(_ context.Context, got *model.CreateTrackedKeywordRequest) (*model.TrackedKeyword, error) {
			assert.Equal(t, "running shoes", got.Keyword)
			assert.Equal(t, "us", got.Country)
			assert.Equal(t, "acmerunning.com", got.Domain)
			return want, nil
		})

	kw, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, want, kw)
}

func TestKeywordService_Create_DuplicateConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockTrackedKeywordRepository(ctrl)
	svc := NewKeywordService(KeywordServiceOptions{Repo: repo})

	ctx := context.Background()
	repo.EXPECT().Create(ctx, gomock.Any()).Return(nil, data.ErrKeywordExists)

	kw, err := svc.Create(ctx, &model.CreateTrackedKeywordRequest{BrandID: "brand-1", Keyword: "running shoes"})
	require.Error(t, err)
	assert.Nil(t, kw)
	assert.True(t, apperrors.IsConflict(err))
}

func TestKeywordService_Create_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockTrackedKeywordRepository(ctrl)
	svc := NewKeywordService(KeywordServiceOptions{Repo: repo})

	_, err := svc.Create(context.Background(), &model.CreateTrackedKeywordRequest{Keyword: "running shoes"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestKeywordService_List_AppliesFilters(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockTrackedKeywordRepository(ctrl)
	svc := NewKeywordService(KeywordServiceOptions{Repo: repo})

	ctx := context.Background()
	brandID := "brand-1"
	active := true
	repo.EXPECT().
		List(ctx, model.TrackedKeywordListOptions{BrandID: &brandID, Active: &active, Limit: 50}).
		Return([]*model.TrackedKeyword{{ID: "kw-1"}}, nil)

	keywords, err := svc.List(ctx, model.TrackedKeywordListOptions{BrandID: &brandID, Active: &active})
	require.NoError(t, err)
	assert.Len(t, keywords, 1)
}

func TestKeywordService_Update_Deactivate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockTrackedKeywordRepository(ctrl)
	svc := NewKeywordService(KeywordServiceOptions{Repo: repo})

	ctx := context.Background()
	active := false
	want := &model.TrackedKeyword{ID: "kw-1", Active: false}
	repo.EXPECT().Update(ctx, "kw-1", model.UpdateTrackedKeywordRequest{Active: &active}).Return(want, nil)

	kw, err := svc.Update(ctx, "kw-1", model.UpdateTrackedKeywordRequest{Active: &active})
	require.NoError(t, err)
	assert.False(t, kw.Active)
}

func TestKeywordService_Update_RequiresAField(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockTrackedKeywordRepository(ctrl)
	svc := NewKeywordService(KeywordServiceOptions{Repo: repo})

	_, err := svc.Update(context.Background(), "kw-1", model.UpdateTrackedKeywordRequest{})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestKeywordService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockTrackedKeywordRepository(ctrl)
	svc := NewKeywordService(KeywordServiceOptions{Repo: repo})

	ctx := context.Background()
	repo.EXPECT().Delete(ctx, "missing").Return(false, data.ErrKeywordNotFound)

	deleted, err := svc.Delete(ctx, "missing")
	require.Error(t, err)
	assert.False(t, deleted)
	assert.True(t, apperrors.IsNotFound(err))
}
