// FilePath: internal/models/models.user.go
package models

// User is the backend-owned user record. The dashboard only ever holds the
// integer id once the record has been synced for the logged-in subject.
type User struct {
	UserID     int    `json:"userid"`
	Email      string `json:"email"`
	CognitoSub string `json:"cognito_sub,omitempty"`
	Name       string `json:"name,omitempty"`
}

// Claims are the identity-token payload fields the dashboard displays.
// They are decoded without signature verification and must never be used
// for authorization decisions.
type Claims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}
