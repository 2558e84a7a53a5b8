// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/FelipeCupito/agrosynchro-platform/api/middleware"
	"github.com/FelipeCupito/agrosynchro-platform/api/resources"
	"github.com/gorilla/mux"
)

type Router struct {
	router    *mux.Router
	session   *middleware.SessionMiddleware
	resources *resources.Resources
}

func NewRouter(deps resources.Deps, sessionConfig middleware.SessionConfig) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		session:   middleware.NewSessionMiddleware(deps.Auth, sessionConfig),
		resources: resources.NewResources(deps),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// Every route runs inside a browser session.
	r.router.Use(r.session.EnsureSession)

	// Public routes
	r.router.HandleFunc("/healthz", resources.HealthCheck).Methods(http.MethodGet)
	r.router.HandleFunc("/", r.resources.Auth.Home).Methods(http.MethodGet)
	r.router.HandleFunc("/login", r.resources.Auth.Login).Methods(http.MethodGet)
	r.router.HandleFunc("/auth/callback", r.resources.Auth.Callback).Methods(http.MethodGet)
	r.router.HandleFunc("/auth/session", r.resources.Auth.Session).Methods(http.MethodPost)
	r.router.HandleFunc("/logout", r.resources.Auth.Logout).Methods(http.MethodGet)

	// Protected routes
	protected := r.router.PathPrefix("").Subrouter()
	protected.Use(r.session.RequireAuth)

	protected.HandleFunc("/dashboard", r.resources.Dashboard.Show).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard/parameters", r.resources.Dashboard.SaveParameters).Methods(http.MethodPost)
	protected.HandleFunc("/reports", r.resources.Reports.List).Methods(http.MethodGet)
	protected.HandleFunc("/reports/today", r.resources.Reports.Today).Methods(http.MethodPost)
	protected.HandleFunc("/drone-images", r.resources.Images.Show).Methods(http.MethodGet)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
