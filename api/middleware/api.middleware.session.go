// FilePath: api/middleware/api.middleware.session.go
package middleware

import (
	"net/http"

	"github.com/FelipeCupito/agrosynchro-platform/internal/auth"
	"github.com/FelipeCupito/agrosynchro-platform/internal/session"
	"github.com/gorilla/sessions"
	nuts "github.com/vaudience/go-nuts"
)

// SessionConfig configures the browser session cookie.
type SessionConfig struct {
	CookieName string
	HashKey    string
	MaxAge     int
}

// SessionMiddleware binds every request to a server-side session: it assigns
// a session id cookie on first contact and gates protected routes on
// authentication state, attempting one token refresh before giving up.
type SessionMiddleware struct {
	auth    *auth.Client
	cookies *sessions.CookieStore
	config  SessionConfig
}

// NewSessionMiddleware creates the middleware with a signed cookie store.
func NewSessionMiddleware(authClient *auth.Client, config SessionConfig) *SessionMiddleware {
	store := sessions.NewCookieStore([]byte(config.HashKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   config.MaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionMiddleware{
		auth:    authClient,
		cookies: store,
		config:  config,
	}
}

// EnsureSession assigns a session id to browsers that do not carry one yet
// and puts the id on the request context. It never rejects a request.
func (m *SessionMiddleware) EnsureSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, _ := m.cookies.Get(r, m.config.CookieName)

		id, ok := cookie.Values["sid"].(string)
		if !ok || id == "" {
			id = session.NewID()
			cookie.Values["sid"] = id
			if err := cookie.Save(r, w); err != nil {
				nuts.L.Warnf("[Session] Failed to set session cookie: %v", err)
			}
		}

		ctx := auth.ContextWithSessionID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth gates a route on a live session. An expired session with a
// refresh token gets one refresh attempt; anything else redirects to the
// app root, which shows the login prompt.
func (m *SessionMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := auth.SessionIDFromContext(ctx)

		if !m.auth.IsAuthenticated(ctx, sessionID) {
			if !m.auth.CanRefresh(ctx, sessionID) {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			if err := m.auth.Refresh(ctx, sessionID); err != nil {
				nuts.L.Infof("[Session] Refresh failed for %s, forcing re-login", sessionID)
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
		}

		// Expose the bearer credential to outbound backend calls.
		ctx = auth.ContextWithToken(ctx, m.auth.AccessToken(ctx, sessionID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
