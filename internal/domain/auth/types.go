// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.
package auth

import "time"

// Claims is the identity claim set carried by an access token.
// Tokens are stateless: claims are verified purely by signature and expiry.
type Claims struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session handle (a 128-bit random identifier).
// A live session always maps to exactly one {UserID, Token} pair; the
// embedded token is the same one the client received at login.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
