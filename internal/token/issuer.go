// Package token issues and verifies the signed, stateless access tokens
// that accompany server-side sessions.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/William9701/user-service/internal/domain/auth"
)

var (
	// ErrExpired is returned when a token's validity window has elapsed.
	// Callers should treat this as "log in again".
	ErrExpired = errors.New("token expired")
	// ErrInvalidSignature is returned when a token fails signature
	// verification, i.e. it was not signed by this issuer.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrMalformed is returned for tokens that cannot be parsed at all.
	ErrMalformed = errors.New("malformed token")
)

// claims is the JWT claim set embedded in issued tokens.
type claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Issuer signs and verifies HS256 access tokens with a symmetric secret
// configured at process start. Tokens are not renewable; a fresh login
// issues a fresh token.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer. The secret is required; there is no
// hardcoded fallback.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token carrying the user's identity claims, valid for the
// configured lifetime.
func (i *Issuer) Issue(userID, email string) (string, error) {
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Email: email,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims. Expiry and
// signature failures are reported as distinct errors so callers can tell
// "log in again" apart from "tampered token".
func (i *Issuer) Verify(tokenStr string) (domainauth.Claims, error) {
	var c claims
	_, err := jwt.ParseWithClaims(tokenStr, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return domainauth.Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domainauth.Claims{}, ErrInvalidSignature
		default:
			return domainauth.Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	out := domainauth.Claims{
		UserID: c.Subject,
		Email:  c.Email,
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out, nil
}
