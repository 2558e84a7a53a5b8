// FilePath: internal/auth/context.go
package auth

import "context"

type contextKey string

const (
	sessionIDKey   contextKey = "session_id"
	accessTokenKey contextKey = "access_token"
)

// ContextWithSessionID attaches the browser's session id to the request
// context.
func ContextWithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext returns the session id, or "" when none is attached.
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithToken attaches the current access token so outbound clients can
// pick it up as a bearer credential.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey, token)
}

// TokenFromContext returns the access token, or "" when none is attached.
func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(accessTokenKey).(string); ok {
		return token
	}
	return ""
}
