package domain

import "time"

// Session is the signed-in identity extracted from the bearer token.
// It is created at sign-in, passed explicitly to every service that
// needs the viewer's identity, and torn down at sign-out.
type Session struct {
	// UserID is the signed-in user's id.
	UserID string

	// Name is the display name.
	Name string

	// Username is the login name.
	Username string

	// Role is the signed-in user's role.
	Role Role

	// Token is the raw bearer token attached to every request.
	Token string

	// ExpiresAt is when the token expires. Zero means the token
	// carries no expiry claim.
	ExpiresAt time.Time
}

// IsAdmin returns true for admin sessions.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Expired returns true if the token carries an expiry in the past.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
