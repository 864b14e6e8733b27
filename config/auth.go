package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AuthConfig groups token signing, session, and password hashing configuration.
type AuthConfig struct {
	// JWTSecret is the symmetric secret used to sign access tokens.
	// It is required at startup and has no default.
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	// TokenTTL is the validity window of issued access tokens.
	// Tokens are not renewable; a fresh login issues a fresh token.
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"1h"`

	// SessionTTL is the lifetime of server-side sessions. The session-store
	// entry and the session cookie share this value.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"3600s"`

	// BcryptCost is the bcrypt work factor for password hashing.
	BcryptCost int `env:"AUTH_BCRYPT_COST" envDefault:"10"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.TokenTTL <= 0 {
		a.TokenTTL = time.Hour
	}
	if a.SessionTTL <= 0 {
		a.SessionTTL = time.Hour
	}
	if a.BcryptCost < bcrypt.MinCost {
		a.BcryptCost = bcrypt.DefaultCost
	}
	if a.BcryptCost > bcrypt.MaxCost {
		a.BcryptCost = bcrypt.MaxCost
	}
}
