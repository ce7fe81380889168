package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/linkpilot/linkpilot-api/internal/data"
	"github.com/linkpilot/linkpilot-api/internal/domain/model"
	"github.com/linkpilot/linkpilot-api/internal/mocks"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

func newBrandHandlers(t *testing.T) (*BrandHandlers, *mocks.MockBrandRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBrandRepository(ctrl)
	return &BrandHandlers{Svc: service.NewBrandService(service.BrandServiceOptions{Repo: repo})}, repo
}

func TestBrandHandlers_Create(t *testing.T) {
	h, repo := newBrandHandlers(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, req *model.CreateBrandRequest) (*model.Brand, error) {
			// The service normalizes before hitting the repository.
			assert.Equal(t, "Acme Running", req.Name)
			assert.Equal(t, "us", req.Country)
			return brandForTest("brand-1"), nil
		})

	req := httptest.NewRequest(http.MethodPost, "/api/brands",
		sessionBody(`{"name":"  Acme Running  ","site_url":"https://www.acmerunning.com","country":"US"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"brand-1"`)
}

func TestBrandHandlers_Create_InvalidJSON(t *testing.T) {
	h, _ := newBrandHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/brands", sessionBody(`{"name":`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_json")
}

func TestBrandHandlers_Create_UnknownField(t *testing.T) {
	h, _ := newBrandHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/brands",
		sessionBody(`{"name":"Acme","site_url":"https://acme.io","bogus":true}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBrandHandlers_Create_ValidationError(t *testing.T) {
	h, _ := newBrandHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/brands", sessionBody(`{"site_url":"https://acme.io"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation")
}

func TestBrandHandlers_GetByID_NotFound(t *testing.T) {
	h, repo := newBrandHandlers(t)

	repo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, data.ErrBrandNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/brands/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	h.GetByID(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestBrandHandlers_List_ClampsPagination(t *testing.T) {
	h, repo := newBrandHandlers(t)

	repo.EXPECT().
		List(gomock.Any(), model.BrandListOptions{Limit: 1000, Offset: 20}).
		Return([]*model.Brand{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/brands?limit=5000&offset=20", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBrandHandlers_Update_Conflict(t *testing.T) {
	h, repo := newBrandHandlers(t)

	repo.EXPECT().Update(gomock.Any(), "brand-1", gomock.Any()).Return(nil, data.ErrBrandNameExists)

	req := httptest.NewRequest(http.MethodPut, "/api/brands/brand-1", sessionBody(`{"name":"Taken"}`))
	req.SetPathValue("id", "brand-1")
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "conflict")
}

func TestBrandHandlers_Delete(t *testing.T) {
	h, repo := newBrandHandlers(t)

	repo.EXPECT().Delete(gomock.Any(), "brand-1").Return(true, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/brands/brand-1", nil)
	req.SetPathValue("id", "brand-1")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":true}`, rec.Body.String())
}

func TestBrandHandlers_Delete_MissingID(t *testing.T) {
	h, _ := newBrandHandlers(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/brands/", nil)
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_path")
}
