// FilePath: api/resources/api.resource.reports.go
package resources

import (
	"net/http"
	"strconv"
	"time"

	"github.com/FelipeCupito/agrosynchro-platform/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// ReportHandlers serves the daily field reports page and the on-demand
// report trigger.
type ReportHandlers struct {
	deps Deps
}

type reportsPage struct {
	pageBase
	Reports []models.Report
}

// List renders the report history for the current user, newest first as
// delivered by the backend.
func (h *ReportHandlers) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, claims, err := h.deps.resolveUser(ctx)
	if err != nil {
		h.deps.failPage(w, r, err)
		return
	}

	reports, err := h.deps.API.GetReports(ctx, user.UserID)
	if err != nil {
		h.deps.failPage(w, r, err)
		return
	}

	h.deps.renderPage(w, http.StatusOK, "reports.html", reportsPage{
		pageBase: pageBase{Active: "reports", User: claims},
		Reports:  reports,
	})
}

// Today asks the backend to generate a report for the current date and
// returns to the report list.
func (h *ReportHandlers) Today(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, _, err := h.deps.resolveUser(ctx)
	if err != nil {
		h.deps.failPage(w, r, err)
		return
	}

	date := time.Now().Format("2006-01-02")
	if err := h.deps.API.RequestReport(ctx, user.UserID, date); err != nil {
		h.deps.failPage(w, r, err)
		return
	}

	h.deps.Monitoring.RecordEvent("report_requested", map[string]string{
		"user_id": strconv.Itoa(user.UserID),
		"date":    date,
	})
	nuts.L.Infof("[Reports] Report for %s requested by user %d", date, user.UserID)
	http.Redirect(w, r, "/reports", http.StatusSeeOther)
}
