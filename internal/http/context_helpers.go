package httpx

import (
	"context"

	domainauth "github.com/William9701/user-service/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
type sessionKey struct{}

// claimsKey carries verified bearer token claims when no session exists.
type claimsKey struct{}

// SetSessionInContext returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the session from context and a boolean indicating presence.
func GetSessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	if session, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok && session != nil {
		return session, true
	}
	return nil, false
}

// SetClaimsInContext returns a child context carrying verified token claims.
func SetClaimsInContext(ctx context.Context, claims domainauth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaimsFromContext returns verified token claims and a boolean indicating presence.
func GetClaimsFromContext(ctx context.Context) (domainauth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(domainauth.Claims)
	return claims, ok
}

// CurrentUserID resolves the authenticated user's ID from either a session
// or bearer claims. Middleware guarantees one of the two is present on
// protected routes.
func CurrentUserID(ctx context.Context) (string, bool) {
	if session, ok := GetSessionFromContext(ctx); ok {
		return session.UserID, true
	}
	if claims, ok := GetClaimsFromContext(ctx); ok {
		return claims.UserID, true
	}
	return "", false
}
