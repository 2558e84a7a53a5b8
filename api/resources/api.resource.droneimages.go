// FilePath: api/resources/api.resource.droneimages.go
package resources

import (
	"net/http"
	"strconv"

	"github.com/FelipeCupito/agrosynchro-platform/internal/models"
)

// ImageHandlers serves the drone image gallery.
type ImageHandlers struct {
	deps Deps
}

type imagesPage struct {
	pageBase
	Images []models.DroneImage
}

// Show renders the gallery of processed drone captures with their field
// status assessment. An optional limit query parameter caps the result.
func (h *ImageHandlers) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, claims, err := h.deps.resolveUser(ctx)
	if err != nil {
		h.deps.failPage(w, r, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	images, err := h.deps.API.GetDroneImages(ctx, user.UserID, limit)
	if err != nil {
		h.deps.failPage(w, r, err)
		return
	}

	h.deps.renderPage(w, http.StatusOK, "drone_images.html", imagesPage{
		pageBase: pageBase{Active: "images", User: claims},
		Images:   images,
	})
}
