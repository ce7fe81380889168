package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/linkpilot/linkpilot-api/internal/domain/auth"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

// RouterServices groups the services required by the router.
type RouterServices struct {
	Auth      AuthServiceInterface
	Brands    *service.BrandService
	Backlinks *service.BacklinkService
	Prospects *service.ProspectService
	Keywords  *service.KeywordService
	Reconcile *service.ReconcileService
	Imports   *service.ImportService
	Ranks     *service.RankService
	Movers    *service.MoversService
	Imposters *service.ImposterService
	Jobs      *service.RankJobService
	Scheduler *service.SchedulerService

	CookieDomain string
	Logger       *slog.Logger
}

// middleware is the standard wrapper shape used throughout this package.
type middleware func(http.Handler) http.Handler

// crudRoutes describes a standard CRUD resource under Base. Read applies to
// GET endpoints, Write to POST/PUT, Admin to DELETE.
type crudRoutes struct {
	Base    string
	Create  http.HandlerFunc
	List    http.HandlerFunc
	GetByID http.HandlerFunc
	Update  http.HandlerFunc
	Delete  http.HandlerFunc

	Read  middleware
	Write middleware
	Admin middleware
}

// wrap applies a middleware to a handler func, tolerating a nil middleware.
func wrap(mw middleware, h http.HandlerFunc) http.Handler {
	if mw == nil {
		return h
	}
	return mw(h)
}

// registerCRUD mounts the five standard routes for a resource.
func registerCRUD(mux *http.ServeMux, c crudRoutes) {
	mux.Handle("POST "+c.Base, wrap(c.Write, c.Create))
	mux.Handle("GET "+c.Base, wrap(c.Read, c.List))
	mux.Handle("GET "+c.Base+"/{id}", wrap(c.Read, c.GetByID))
	mux.Handle("PUT "+c.Base+"/{id}", wrap(c.Write, c.Update))
	mux.Handle("DELETE "+c.Base+"/{id}", wrap(c.Admin, c.Delete))
}

// NewRouter builds the HTTP routing table for the API.
//
// Authorization tiers: any authenticated user can read, SEO-and-above can
// mutate campaign data, and destructive or queue-facing operations need admin.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	read := RequireAuth(services.Auth)
	write := RequireRole(services.Auth, domainauth.RoleSEO)
	admin := RequireRole(services.Auth, domainauth.RoleAdmin)

	// Health check (unauthenticated, for load balancers and probes)
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	// Auth flow
	authHandlers := &AuthHandlers{Svc: services.Auth, CookieDomain: services.CookieDomain, Logger: logger}
	mux.HandleFunc("GET /auth/login", authHandlers.Login)
	mux.HandleFunc("GET /auth/callback", authHandlers.Callback)
	mux.HandleFunc("POST /auth/logout", authHandlers.Logout)
	mux.HandleFunc("GET /auth/status", authHandlers.Status)

	// Brands
	brandHandlers := &BrandHandlers{Svc: services.Brands}
	registerCRUD(mux, crudRoutes{
		Base:    "/api/brands",
		Create:  brandHandlers.Create,
		List:    brandHandlers.List,
		GetByID: brandHandlers.GetByID,
		Update:  brandHandlers.Update,
		Delete:  brandHandlers.Delete,
		Read:    read,
		Write:   write,
		Admin:   admin,
	})

	// Backlinks
	backlinkHandlers := &BacklinkHandlers{Svc: services.Backlinks}
	registerCRUD(mux, crudRoutes{
		Base:    "/api/backlinks",
		Create:  backlinkHandlers.Create,
		List:    backlinkHandlers.List,
		GetByID: backlinkHandlers.GetByID,
		Update:  backlinkHandlers.Update,
		Delete:  backlinkHandlers.Delete,
		Read:    read,
		Write:   write,
		Admin:   admin,
	})

	// Outreach prospects
	prospectHandlers := &ProspectHandlers{Svc: services.Prospects}
	registerCRUD(mux, crudRoutes{
		Base:    "/api/prospects",
		Create:  prospectHandlers.Create,
		List:    prospectHandlers.List,
		GetByID: prospectHandlers.GetByID,
		Update:  prospectHandlers.Update,
		Delete:  prospectHandlers.Delete,
		Read:    read,
		Write:   write,
		Admin:   admin,
	})
	mux.Handle("GET /api/brands/{id}/prospect-stats", wrap(read, prospectHandlers.Stats))

	// Tracked keywords
	keywordHandlers := &KeywordHandlers{Svc: services.Keywords}
	registerCRUD(mux, crudRoutes{
		Base:    "/api/keywords",
		Create:  keywordHandlers.Create,
		List:    keywordHandlers.List,
		GetByID: keywordHandlers.GetByID,
		Update:  keywordHandlers.Update,
		Delete:  keywordHandlers.Delete,
		Read:    read,
		Write:   write,
		Admin:   admin,
	})

	// Imposter watches
	imposterHandlers := &ImposterHandlers{Svc: services.Imposters}
	registerCRUD(mux, crudRoutes{
		Base:    "/api/imposters",
		Create:  imposterHandlers.Create,
		List:    imposterHandlers.List,
		GetByID: imposterHandlers.GetByID,
		Update:  imposterHandlers.Update,
		Delete:  imposterHandlers.Delete,
		Read:    read,
		Write:   write,
		Admin:   admin,
	})
	mux.Handle("POST /api/brands/{id}/imposters/sweep", wrap(write, imposterHandlers.Sweep))

	// Domain reconciliation and the aggregate link domain view
	reconcileHandlers := &ReconcileHandlers{Svc: services.Reconcile}
	mux.Handle("POST /api/brands/{id}/reconcile", wrap(write, reconcileHandlers.Reconcile))
	mux.Handle("GET /api/link-domains", wrap(read, reconcileHandlers.ListDomains))
	mux.Handle("GET /api/brands/{id}/link-domains/{domain}", wrap(read, reconcileHandlers.GetDomain))

	// Competitive import classification
	importHandlers := &ImportHandlers{Svc: services.Imports}
	mux.Handle("POST /api/imports/classify", wrap(write, importHandlers.Classify))
	mux.Handle("GET /api/imports", wrap(read, importHandlers.ListBatches))
	mux.Handle("GET /api/imports/{id}", wrap(read, importHandlers.GetBatch))
	mux.Handle("GET /api/imports/{id}/rows", wrap(read, importHandlers.ListRows))

	// Rank observations and statistics
	rankHandlers := &RankHandlers{Svc: services.Ranks}
	mux.Handle("POST /api/ranks", wrap(write, rankHandlers.Record))
	mux.Handle("GET /api/keywords/{id}/history", wrap(read, rankHandlers.History))
	mux.Handle("GET /api/keywords/{id}/stats", wrap(read, rankHandlers.Stats))

	// Movement reports and alerts
	moversHandlers := &MoversHandlers{Svc: services.Movers}
	mux.Handle("GET /api/brands/{id}/movers", wrap(read, moversHandlers.Movers))
	mux.Handle("POST /api/brands/{id}/movers/detect", wrap(write, moversHandlers.Detect))
	mux.Handle("GET /api/alerts", wrap(read, moversHandlers.ListAlerts))

	// Rank fetch jobs and schedules
	jobHandlers := &JobHandlers{Jobs: services.Jobs, Scheduler: services.Scheduler}
	mux.Handle("POST /api/jobs", wrap(admin, jobHandlers.Enqueue))
	mux.Handle("GET /api/jobs/stats", wrap(read, jobHandlers.Stats))
	mux.Handle("GET /api/jobs/{id}", wrap(read, jobHandlers.GetByID))
	mux.Handle("PUT /api/brands/{id}/schedule", wrap(admin, jobHandlers.UpsertSchedule))
	mux.Handle("PUT /api/schedules/{id}/enabled", wrap(admin, jobHandlers.SetScheduleEnabled))
	mux.Handle("DELETE /api/schedules/{id}", wrap(admin, jobHandlers.DeleteSchedule))

	// Everything else is a JSON 404
	mux.HandleFunc("/", notFoundHandler)

	handler := Logging(logger)(mux)
	handler = Recover(logger)(handler)
	return handler
}

// notFoundHandler renders unmatched paths as JSON.
func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, ErrorParams{
		Code:    http.StatusNotFound,
		ErrCode: "not_found",
		Err:     errors.New("no such endpoint: " + r.URL.Path),
	})
}
