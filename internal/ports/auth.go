// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters, internal/data, internal/password,
// and internal/token; orchestration in internal/service.
package ports

import (
	"context"

	domainauth "github.com/William9701/user-service/internal/domain/auth"
	"github.com/William9701/user-service/internal/domain/model"
)

// UserRepository is the user directory consumed by the auth service.
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// SessionStore persists and retrieves user sessions with per-key expiry.
// Delete is idempotent: deleting an absent or expired session reports zero
// affected entries, not an error.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// TokenIssuer signs and verifies compact, time-limited access tokens.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
	Verify(token string) (domainauth.Claims, error)
}

// PasswordHasher hashes and verifies plaintext secrets against stored digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(password, digest string) error
}

// WelcomePublisher enqueues a welcome-notification job onto a durable queue.
type WelcomePublisher interface {
	Publish(ctx context.Context, email string) error
}

// WelcomeSender performs one delivery attempt of a welcome notification.
type WelcomeSender interface {
	Send(ctx context.Context, email string) error
}
