// Package password provides one-way hashing and verification of user
// secrets using bcrypt.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMismatch is returned when a password does not match its digest.
	ErrMismatch = errors.New("password does not match")
	// ErrInvalidDigest is returned when the stored digest is not a valid
	// bcrypt hash. Callers can tell a corrupt record apart from a plain
	// wrong password.
	ErrInvalidDigest = errors.New("invalid password digest")
)

// Hasher hashes and verifies passwords with a fixed bcrypt work factor.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher. Costs outside bcrypt's supported range fall
// back to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash generates a salted bcrypt digest of the given password.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Compare validates the given cleartext password against the stored digest.
// It returns ErrMismatch on a wrong password and ErrInvalidDigest when the
// digest itself is malformed.
func (h *Hasher) Compare(password, digest string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		// Every other bcrypt failure means the stored digest is unusable.
		return ErrInvalidDigest
	}
}
