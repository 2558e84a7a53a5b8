// FilePath: api/resources/resources.go
package resources

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/FelipeCupito/agrosynchro-platform/internal/agroapi"
	"github.com/FelipeCupito/agrosynchro-platform/internal/auth"
	"github.com/FelipeCupito/agrosynchro-platform/internal/errors"
	"github.com/FelipeCupito/agrosynchro-platform/internal/models"
	"github.com/FelipeCupito/agrosynchro-platform/internal/monitoring"
	"github.com/FelipeCupito/agrosynchro-platform/internal/render"
	nuts "github.com/vaudience/go-nuts"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Auth      *AuthHandlers
	Dashboard *DashboardHandlers
	Reports   *ReportHandlers
	Images    *ImageHandlers
}

// Deps are the shared dependencies every handler group needs.
type Deps struct {
	Auth       *auth.Client
	API        *agroapi.Client
	Renderer   *render.Renderer
	Monitoring *monitoring.Service
}

// NewResources creates a new Resources instance
func NewResources(deps Deps) *Resources {
	return &Resources{
		Auth:      &AuthHandlers{deps: deps},
		Dashboard: &DashboardHandlers{deps: deps},
		Reports:   &ReportHandlers{deps: deps},
		Images:    &ImageHandlers{deps: deps},
	}
}

// HealthCheck returns a simple health check handler
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok","version":"` + nuts.GetVersion() + `"}`))
}

// pageBase is the data every page template shares with the layout.
type pageBase struct {
	Active string
	User   *models.Claims
	Error  string
}

// resolveUser runs the syncing-user lifecycle stage: identity claims from
// the session, then an upsert against the backend so the integer user id
// exists. Returns an auth error when the session holds no usable identity.
func (d *Deps) resolveUser(ctx context.Context) (*models.User, *models.Claims, error) {
	sessionID := auth.SessionIDFromContext(ctx)
	claims := d.Auth.UserClaims(ctx, sessionID)
	if claims == nil || claims.Email == "" {
		return nil, nil, errors.NewAuthError("no identity claims in session", nil)
	}

	user, err := d.API.SyncUser(ctx, claims.Sub, claims.Email, "")
	if err != nil {
		return nil, claims, err
	}
	return user, claims, nil
}

// renderPage renders a page template and logs (but otherwise swallows) any
// template failure — at that point nothing better can be sent.
func (d *Deps) renderPage(w http.ResponseWriter, status int, page string, data any) {
	if err := d.Renderer.Render(w, status, page, data); err != nil {
		nuts.L.Errorf("[View] %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// failPage handles an error raised while building a page. Auth errors
// discard the session and send the user back through login; everything else
// surfaces on the error page without touching session state.
func (d *Deps) failPage(w http.ResponseWriter, r *http.Request, err error) {
	requestID := nuts.NID("req", 12)

	if errors.IsAuth(err) {
		sessionID := auth.SessionIDFromContext(r.Context())
		d.Auth.Discard(r.Context(), sessionID)
		nuts.L.Infof("[View] Session %s discarded after auth failure: %v", sessionID, err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	nuts.L.Errorf("[View] %s: %v", requestID, err)
	status := http.StatusInternalServerError
	message := "No se pudieron cargar los datos. Volvé a intentarlo."
	if apiErr, ok := err.(*errors.APIError); ok {
		status = apiErr.Code
		message = apiErr.Message
	}
	d.renderPage(w, status, "error.html", pageBase{Error: message})
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
