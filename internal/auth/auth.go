// FilePath: internal/auth/auth.go
package auth

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/FelipeCupito/agrosynchro-platform/internal/config"
	"github.com/FelipeCupito/agrosynchro-platform/internal/errors"
	"github.com/FelipeCupito/agrosynchro-platform/internal/session"
	"github.com/go-resty/resty/v2"
	nuts "github.com/vaudience/go-nuts"
)

// Auth lifecycle events emitted through the client's event emitter.
const (
	EventSessionEstablished = "auth.session_established"
	EventRefreshed          = "auth.refreshed"
	EventRefreshFailed      = "auth.refresh_failed"
	EventLoggedOut          = "auth.logged_out"
)

// Client runs the OAuth client lifecycle against the hosted identity
// provider: it builds the hosted-UI redirect, consumes the implicit-flow
// redirect fragment, answers authentication-state queries, refreshes tokens
// and clears sessions on logout. It owns all writes to the session store.
type Client struct {
	cfg    config.CognitoConfig
	store  session.Store
	http   *resty.Client
	events *nuts.EventEmitter

	// now is replaceable for expiry tests.
	now func() time.Time
}

// New creates an auth client bound to a session store.
func New(cfg config.CognitoConfig, store session.Store) *Client {
	return &Client{
		cfg:    cfg,
		store:  store,
		http:   resty.New().SetTimeout(10 * time.Second),
		events: nuts.NewEventEmitter(),
		now:    time.Now,
	}
}

// providerBase returns the identity provider origin. The configured domain is
// normally a bare host (https is implied); an explicit scheme is honored so
// local setups can point at a plain-HTTP stub.
func (c *Client) providerBase() string {
	if strings.Contains(c.cfg.Domain, "://") {
		return strings.TrimSuffix(c.cfg.Domain, "/")
	}
	return "https://" + c.cfg.Domain
}

// LoginURL builds the hosted-UI login redirect. It fails when any of domain,
// client id or callback URL is missing from the configuration.
func (c *Client) LoginURL() (string, error) {
	if c.cfg.Domain == "" || c.cfg.ClientID == "" || c.cfg.CallbackURL == "" {
		return "", errors.NewValidationError(
			"missing Cognito configuration (COGNITO_DOMAIN, COGNITO_CLIENT_ID, CALLBACK_URL)", nil)
	}

	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("response_type", "code")
	q.Set("scope", c.cfg.Scope)
	q.Set("redirect_uri", c.cfg.CallbackURL)
	return c.providerBase() + "/login?" + q.Encode(), nil
}

// ProcessRedirect consumes the OAuth redirect fragment carried by rawURL and
// returns the URL with the fragment stripped. Safe to call on every page
// load: a URL without fragment is a no-op, and because the returned URL has
// no fragment a given fragment is consumed at most once.
//
// A fragment carrying an error parameter is logged and dropped without
// touching the session.
func (c *Client) ProcessRedirect(ctx context.Context, sessionID, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL, errors.NewValidationError("invalid redirect URL", err)
	}
	if u.Fragment == "" {
		return rawURL, nil
	}

	clean := *u
	clean.Fragment = ""

	params, err := url.ParseQuery(u.Fragment)
	if err != nil {
		nuts.L.Warnf("[Auth] Ignoring unparseable redirect fragment: %v", err)
		return clean.String(), nil
	}

	if oauthErr := params.Get("error"); oauthErr != "" {
		nuts.L.Errorf("[Auth] OAuth error from provider: %s (%s)",
			oauthErr, params.Get("error_description"))
		return clean.String(), nil
	}

	sess, err := c.store.Get(ctx, sessionID)
	if err != nil {
		return rawURL, errors.NewInternalError("failed to load session", err)
	}

	if v := params.Get("access_token"); v != "" {
		sess.AccessToken = v
	}
	if v := params.Get("id_token"); v != "" {
		sess.IdentityToken = v
	}
	if v := params.Get("refresh_token"); v != "" {
		sess.RefreshToken = v
	}
	if v := params.Get("expires_in"); v != "" {
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
			sess.ExpiresAt = c.now().UnixMilli() + secs*1000
		}
	}

	if err := c.store.Save(ctx, sessionID, sess); err != nil {
		return rawURL, errors.NewInternalError("failed to persist session", err)
	}

	nuts.L.Infof("[Auth] Session %s established from redirect fragment", sessionID)
	c.events.Emit(EventSessionEstablished, sessionID)
	return clean.String(), nil
}

// IsAuthenticated reports whether the session holds an access token that has
// not passed its recorded expiry. A session without expiry counts as valid.
func (c *Client) IsAuthenticated(ctx context.Context, sessionID string) bool {
	sess, err := c.store.Get(ctx, sessionID)
	if err != nil {
		nuts.L.Warnf("[Auth] Session lookup failed for %s: %v", sessionID, err)
		return false
	}
	if sess.AccessToken == "" {
		return false
	}
	return !sess.Expired(c.now())
}

// AccessToken returns the stored access token, or "" when none is present.
func (c *Client) AccessToken(ctx context.Context, sessionID string) string {
	sess, err := c.store.Get(ctx, sessionID)
	if err != nil {
		return ""
	}
	return sess.AccessToken
}

// CanRefresh reports whether the session holds a refresh token.
func (c *Client) CanRefresh(ctx context.Context, sessionID string) bool {
	sess, err := c.store.Get(ctx, sessionID)
	if err != nil {
		return false
	}
	return sess.RefreshToken != ""
}

// tokenResponse is the provider's /oauth2/token reply.
type tokenResponse struct {
	AccessToken   string `json:"access_token"`
	IdentityToken string `json:"id_token"`
	RefreshToken  string `json:"refresh_token"`
	ExpiresIn     int64  `json:"expires_in"`
}

// Refresh exchanges the stored refresh token for a new access/identity token
// pair. Any failure is terminal for the session: it is cleared and the caller
// must send the user back through login.
func (c *Client) Refresh(ctx context.Context, sessionID string) error {
	sess, err := c.store.Get(ctx, sessionID)
	if err != nil {
		return errors.NewInternalError("failed to load session", err)
	}
	if sess.RefreshToken == "" {
		c.clearSession(ctx, sessionID)
		return errors.NewAuthError("no refresh token stored", nil)
	}

	var tokens tokenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(map[string]string{
			"grant_type":    "refresh_token",
			"client_id":     c.cfg.ClientID,
			"refresh_token": sess.RefreshToken,
		}).
		SetResult(&tokens).
		Post(c.providerBase() + "/oauth2/token")
	if err != nil {
		c.clearSession(ctx, sessionID)
		c.events.Emit(EventRefreshFailed, sessionID)
		return errors.NewAuthError("token refresh request failed", err)
	}
	if !resp.IsSuccess() || tokens.AccessToken == "" {
		c.clearSession(ctx, sessionID)
		c.events.Emit(EventRefreshFailed, sessionID)
		return errors.NewAuthError(
			"token refresh rejected by provider", nil).WithDetails(resp.Status())
	}

	sess.AccessToken = tokens.AccessToken
	if tokens.IdentityToken != "" {
		sess.IdentityToken = tokens.IdentityToken
	}
	if tokens.RefreshToken != "" {
		sess.RefreshToken = tokens.RefreshToken
	}
	if tokens.ExpiresIn > 0 {
		sess.ExpiresAt = c.now().UnixMilli() + tokens.ExpiresIn*1000
	}

	if err := c.store.Save(ctx, sessionID, sess); err != nil {
		return errors.NewInternalError("failed to persist refreshed session", err)
	}

	nuts.L.Infof("[Auth] Session %s refreshed", sessionID)
	c.events.Emit(EventRefreshed, sessionID)
	return nil
}

// LogoutURL clears the session and returns where the browser should go next.
// The provider's logout endpoint requires a secure origin, which this
// deployment only has on loopback; everywhere else the user just lands back
// on the app root with the session gone.
func (c *Client) LogoutURL(ctx context.Context, sessionID, hostname string) string {
	c.clearSession(ctx, sessionID)
	c.events.Emit(EventLoggedOut, sessionID)

	if c.cfg.Domain != "" && c.cfg.ClientID != "" && isLoopback(hostname) {
		q := url.Values{}
		q.Set("client_id", c.cfg.ClientID)
		q.Set("logout_uri", "http://"+hostname+"/")
		return c.providerBase() + "/logout?" + q.Encode()
	}
	return "/"
}

// Discard drops the session without involving the provider. Used when the
// backend rejects the stored credential and the user must log in again.
func (c *Client) Discard(ctx context.Context, sessionID string) {
	c.clearSession(ctx, sessionID)
}

// OnAuthEvent registers a callback for auth lifecycle events.
func (c *Client) OnAuthEvent(event string, handler func(sessionID string)) {
	c.events.On(event, "auth_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(string); ok {
				handler(id)
			}
		}
	})
}

func (c *Client) clearSession(ctx context.Context, sessionID string) {
	if err := c.store.Clear(ctx, sessionID); err != nil {
		nuts.L.Warnf("[Auth] Failed to clear session %s: %v", sessionID, err)
	}
}

func isLoopback(hostname string) bool {
	return hostname == "localhost" || hostname == "127.0.0.1" || hostname == "::1"
}
