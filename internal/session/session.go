// FilePath: internal/session/session.go
package session

import (
	"context"
	"time"

	"github.com/segmentio/ksuid"
)

// Session is the single mutable record the auth client maintains for one
// browser. All fields are optional; a zero Session means "nothing stored".
type Session struct {
	AccessToken   string `json:"access_token,omitempty"`
	IdentityToken string `json:"id_token,omitempty"`
	RefreshToken  string `json:"refresh_token,omitempty"`
	// ExpiresAt is epoch milliseconds; 0 means no expiry recorded.
	ExpiresAt int64 `json:"token_expiration,omitempty"`
}

// IsZero reports whether no field of the session is set.
func (s *Session) IsZero() bool {
	return s.AccessToken == "" && s.IdentityToken == "" &&
		s.RefreshToken == "" && s.ExpiresAt == 0
}

// Expired reports whether a recorded expiry lies strictly in the past.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != 0 && now.UnixMilli() > s.ExpiresAt
}

// Store persists Sessions keyed by session id. Components depend on this
// capability instead of any ambient storage, so tests can inject doubles.
//
// Get returns a zero Session (never nil) when the id is unknown.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, id string, sess *Session) error
	Clear(ctx context.Context, id string) error
}

// NewID generates a fresh session id for the cookie.
func NewID() string {
	return ksuid.New().String()
}
