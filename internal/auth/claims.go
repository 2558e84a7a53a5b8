// FilePath: internal/auth/claims.go
package auth

import (
	"context"

	"github.com/FelipeCupito/agrosynchro-platform/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// DecodeClaims extracts the payload of a JWT without verifying its
// signature. The token already arrived over a provider-validated channel;
// decoding is for display only, never for authorization. Anything malformed
// yields nil rather than an error.
func DecodeClaims(token string) *models.Claims {
	if token == "" {
		return nil
	}

	payload := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, payload); err != nil {
		return nil
	}

	claims := &models.Claims{}
	if sub, ok := payload["sub"].(string); ok {
		claims.Sub = sub
	}
	if email, ok := payload["email"].(string); ok {
		claims.Email = email
	}
	if verified, ok := payload["email_verified"].(bool); ok {
		claims.EmailVerified = verified
	}
	return claims
}

// UserClaims returns the identity claims for the session, or nil when no
// identity token is stored or it cannot be decoded.
func (c *Client) UserClaims(ctx context.Context, sessionID string) *models.Claims {
	sess, err := c.store.Get(ctx, sessionID)
	if err != nil {
		return nil
	}
	return DecodeClaims(sess.IdentityToken)
}
