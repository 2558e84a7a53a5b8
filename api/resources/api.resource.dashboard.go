// FilePath: api/resources/api.resource.dashboard.go
package resources

import (
	"net/http"

	"github.com/FelipeCupito/agrosynchro-platform/internal/alarms"
	"github.com/FelipeCupito/agrosynchro-platform/internal/errors"
	"github.com/FelipeCupito/agrosynchro-platform/internal/models"
	"github.com/gorilla/schema"
	nuts "github.com/vaudience/go-nuts"
)

// DashboardHandlers encapsulates the dashboard page and the alarm-threshold
// form handler
type DashboardHandlers struct {
	deps Deps
}

type dashboardPage struct {
	pageBase
	Parameters *models.AlarmParameters
	Summary    alarms.Summary
}

// Show renders the dashboard: per-measure averages, hourly alarm counts and
// the alarm event table. When the user has no alarm parameters yet the
// threshold setup form is shown instead of alarm data.
func (h *DashboardHandlers) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, claims, err := h.deps.resolveUser(ctx)
	if err != nil {
		h.deps.failPage(w, r, err)
		return
	}

	page := dashboardPage{pageBase: pageBase{Active: "dashboard", User: claims}}

	params, err := h.deps.API.GetParameters(ctx, user.UserID)
	if err != nil {
		h.deps.failPage(w, r, err)
		return
	}
	page.Parameters = params

	readings, err := h.deps.API.GetSensorData(ctx, user.UserID)
	if err != nil {
		// Sensor data being down should not hide the threshold form.
		nuts.L.Warnf("[Dashboard] Failed to load sensor data for user %d: %v", user.UserID, err)
		page.Error = "No se pudieron cargar los datos de sensores."
		h.deps.renderPage(w, http.StatusOK, "dashboard.html", page)
		return
	}

	page.Summary = alarms.Derive(readings, params)
	h.deps.renderPage(w, http.StatusOK, "dashboard.html", page)
}

var formDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// SaveParameters persists the alarm thresholds submitted from the setup
// form and returns to the dashboard.
func (h *DashboardHandlers) SaveParameters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := nuts.NID("req", 12)

	user, _, err := h.deps.resolveUser(ctx)
	if err != nil {
		h.deps.failPage(w, r, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, errors.NewValidationError("invalid form submission", err).WithRequestID(requestID))
		return
	}

	var params models.AlarmParameters
	if err := formDecoder.Decode(&params, r.PostForm); err != nil {
		respondWithError(w, errors.NewValidationError("invalid threshold values", err).WithRequestID(requestID))
		return
	}

	if err := h.deps.API.SaveParameters(ctx, user.UserID, &params); err != nil {
		h.deps.failPage(w, r, err)
		return
	}

	nuts.L.Infof("[Dashboard] Alarm parameters saved for user %d", user.UserID)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
