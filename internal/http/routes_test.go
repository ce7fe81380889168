package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/linkpilot/linkpilot-api/config"
	domainauth "github.com/linkpilot/linkpilot-api/internal/domain/auth"
	"github.com/linkpilot/linkpilot-api/internal/mocks"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

// routerFixture exposes the repository mocks behind a fully wired router.
type routerFixture struct {
	auth   *stubAuthService
	brands *mocks.MockBrandRepository
	jobs   *mocks.MockRankJobRepository
}

func newTestRouter(t *testing.T) (http.Handler, *routerFixture) {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &routerFixture{
		auth:   newStubAuthService(),
		brands: mocks.NewMockBrandRepository(ctrl),
		jobs:   mocks.NewMockRankJobRepository(ctrl),
	}

	backlinks := mocks.NewMockBacklinkRepository(ctrl)
	prospects := mocks.NewMockProspectRepository(ctrl)
	keywords := mocks.NewMockTrackedKeywordRepository(ctrl)
	linkDomains := mocks.NewMockLinkDomainRepository(ctrl)
	history := mocks.NewMockRankHistoryRepository(ctrl)
	alerts := mocks.NewMockRankAlertRepository(ctrl)
	imports := mocks.NewMockImportRepository(ctrl)
	watches := mocks.NewMockImposterWatchRepository(ctrl)
	schedules := mocks.NewMockRankScheduleRepository(ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(RouterServices{
		Auth:      f.auth,
		Brands:    service.NewBrandService(service.BrandServiceOptions{Repo: f.brands, Logger: logger}),
		Backlinks: service.NewBacklinkService(service.BacklinkServiceOptions{Repo: backlinks, Logger: logger}),
		Prospects: service.NewProspectService(service.ProspectServiceOptions{Repo: prospects, Logger: logger}),
		Keywords:  service.NewKeywordService(service.KeywordServiceOptions{Repo: keywords, Logger: logger}),
		Reconcile: service.NewReconcileService(service.ReconcileServiceOptions{
			Backlinks:   backlinks,
			Prospects:   prospects,
			LinkDomains: linkDomains,
			Logger:      logger,
		}),
		Imports: service.NewImportService(service.ImportServiceOptions{
			Brands:    f.brands,
			Backlinks: backlinks,
			Prospects: prospects,
			Imports:   imports,
			Logger:    logger,
		}),
		Ranks: service.NewRankService(service.RankServiceOptions{
			Keywords: keywords,
			History:  history,
			Logger:   logger,
		}),
		Movers: service.NewMoversService(service.MoversServiceOptions{
			Brands:   f.brands,
			Keywords: keywords,
			History:  history,
			Alerts:   alerts,
			Logger:   logger,
		}),
		Imposters: service.NewImposterService(service.ImposterServiceOptions{
			Watches:     watches,
			LinkDomains: linkDomains,
			Logger:      logger,
		}),
		Jobs: service.NewRankJobService(service.RankJobServiceOptions{
			Jobs:   f.jobs,
			Brands: f.brands,
			Logger: logger,
		}),
		Scheduler: service.NewSchedulerService(service.SchedulerServiceOptions{
			Schedules: schedules,
			Jobs:      f.jobs,
			Config: config.SchedulerConfig{
				Interval:               30 * time.Second,
				BatchSize:              25,
				DefaultIntervalMinutes: 1440,
			},
			Logger: logger,
		}),
		Logger: logger,
	})
	return router, f
}

func TestRouter_Healthz(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_HealthzHead(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodHead, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRouter_UnauthenticatedAPIRequest(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/brands", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication_required")
}

func TestRouter_WriterCannotMutate(t *testing.T) {
	router, f := newTestRouter(t)
	f.auth.addSession("writer-session", domainauth.RoleWriter)

	req := httptest.NewRequest(http.MethodPost, "/api/brands", sessionBody(`{"name":"Acme","site_url":"https://acme.io"}`))
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "writer-session"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient_permissions")
}

func TestRouter_SEOCannotDelete(t *testing.T) {
	router, f := newTestRouter(t)
	f.auth.addSession("seo-session", domainauth.RoleSEO)

	req := httptest.NewRequest(http.MethodDelete, "/api/brands/brand-1", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "seo-session"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_AdminCanEnqueueJob(t *testing.T) {
	router, f := newTestRouter(t)
	f.auth.addSession("admin-session", domainauth.RoleAdmin)

	f.brands.EXPECT().GetByID(gomock.Any(), "brand-1").Return(brandForTest("brand-1"), nil)
	f.jobs.EXPECT().Enqueue(gomock.Any(), "brand-1").Return(rankJobForTest("job-1", "brand-1"), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", sessionBody(`{"brand_id":"brand-1"}`))
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "admin-session"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), "job-1")
}

func TestRouter_UnknownPathIsJSON404(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestRouter_AuthStatusUnauthenticated(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())
}
