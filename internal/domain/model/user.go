//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"net/mail"
	"strings"
	"time"
	"unicode"

	apperrors "github.com/William9701/user-service/internal/errors"
)

const (
	maxEmailLen      = 255
	minPasswordLen   = 8
	maxPasswordLen   = 72 // bcrypt input limit
	passwordGuidance = "Password too weak. Must contain at least 8 characters, a letter, a number, and a special character."
)

// User represents a registered account. PasswordHash is never serialized
// into API responses.
type User struct {
	ID           string    `json:"id"         db:"id"`
	Email        string    `json:"email"      db:"email"`
	PasswordHash string    `json:"-"          db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CreateUserRequest carries registration input.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration input shape: both fields present, the
// email syntactically valid, and the password meeting the strength policy.
func (r *CreateUserRequest) Validate() error {
	email := strings.TrimSpace(r.Email)
	if email == "" || r.Password == "" {
		return apperrors.Validation("Email and password are required")
	}
	if len(email) > maxEmailLen {
		return apperrors.ValidationField("email", "Email is too long")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return apperrors.ValidationField("email", "Invalid email format")
	}
	if err := validatePasswordStrength(r.Password); err != nil {
		return err
	}
	return nil
}

// validatePasswordStrength enforces the minimum strength policy:
// at least 8 characters including a letter, a digit, and a symbol.
func validatePasswordStrength(password string) error {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return apperrors.ValidationField("password", passwordGuidance)
	}

	var hasLetter, hasDigit, hasSymbol bool
	for _, c := range password {
		switch {
		case unicode.IsLetter(c):
			hasLetter = true
		case unicode.IsDigit(c):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if !hasLetter || !hasDigit || !hasSymbol {
		return apperrors.ValidationField("password", passwordGuidance)
	}
	return nil
}
