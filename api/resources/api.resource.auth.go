// FilePath: api/resources/api.resource.auth.go
package resources

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/FelipeCupito/agrosynchro-platform/internal/auth"
	"github.com/FelipeCupito/agrosynchro-platform/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

// AuthHandlers encapsulates the login/logout/callback handlers
type AuthHandlers struct {
	deps Deps
}

// Home is the app shell: authenticated browsers go straight to the
// dashboard, everyone else gets the login prompt.
func (h *AuthHandlers) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := auth.SessionIDFromContext(ctx)

	if h.deps.Auth.IsAuthenticated(ctx, sessionID) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.deps.renderPage(w, http.StatusOK, "login.html", pageBase{})
}

// Login redirects the browser to the provider's hosted login page.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	loginURL, err := h.deps.Auth.LoginURL()
	if err != nil {
		h.deps.failPage(w, r, err)
		return
	}
	http.Redirect(w, r, loginURL, http.StatusFound)
}

// Callback serves the fragment-relay page. The provider delivers tokens in
// the URL fragment, which never reaches the server on the redirect itself;
// the page forwards it to POST /auth/session and then navigates on.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	h.deps.renderPage(w, http.StatusOK, "callback.html", pageBase{})
}

type sessionRequest struct {
	Fragment string `json:"fragment"`
}

type sessionResponse struct {
	Redirect string `json:"redirect"`
}

// Session consumes a relayed OAuth redirect fragment and tells the browser
// where to go next.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := auth.SessionIDFromContext(ctx)
	requestID := nuts.NID("req", 12)

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if _, err := h.deps.Auth.ProcessRedirect(ctx, sessionID, "/"+req.Fragment); err != nil {
		respondWithError(w, errors.NewInternalError("failed to process login", err).WithRequestID(requestID))
		return
	}

	redirect := "/"
	if h.deps.Auth.IsAuthenticated(ctx, sessionID) {
		redirect = "/dashboard"
	}
	respondWithJSON(w, http.StatusOK, sessionResponse{Redirect: redirect})
}

// Logout clears the session and sends the browser either to the provider's
// logout endpoint (loopback only) or back to the app root.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := auth.SessionIDFromContext(ctx)

	target := h.deps.Auth.LogoutURL(ctx, sessionID, requestHostname(r))
	http.Redirect(w, r, target, http.StatusFound)
}

func requestHostname(r *http.Request) string {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
