package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/William9701/user-service/internal/domain/auth"
	"github.com/William9701/user-service/internal/domain/model"
	apperrors "github.com/William9701/user-service/internal/errors"
	"github.com/William9701/user-service/internal/observability/statsd"
	"github.com/William9701/user-service/internal/password"
	"github.com/William9701/user-service/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users     ports.UserRepository
	Sessions  ports.SessionStore
	Tokens    ports.TokenIssuer
	Passwords ports.PasswordHasher
	Welcome   ports.WelcomePublisher

	// SessionTTL fixes the lifetime of new sessions. Sessions are never
	// renewed; activity does not slide expiration.
	SessionTTL time.Duration

	Logger  *slog.Logger
	Metrics statsd.Sink

	// Now is the clock used for session timestamps. Defaults to time.Now.
	Now func() time.Time
}

// AuthService orchestrates registration, login, session lifecycle, and
// token verification.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionStore
	tokens     ports.TokenIssuer
	passwords  ports.PasswordHasher
	welcome    ports.WelcomePublisher
	sessionTTL time.Duration
	logger     *slog.Logger
	metrics    statsd.Sink
	now        func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &AuthService{
		users:      opts.Users,
		sessions:   opts.Sessions,
		tokens:     opts.Tokens,
		passwords:  opts.Passwords,
		welcome:    opts.Welcome,
		sessionTTL: opts.SessionTTL,
		logger:     opts.Logger,
		metrics:    opts.Metrics,
		now:        opts.Now,
	}
}

// RegisterResult contains the result of a successful registration.
type RegisterResult struct {
	User    *model.User
	Message string
}

// Register validates the request, persists the user, and enqueues a welcome
// notification. The enqueue is best effort: a queue outage is logged and
// never fails the registration.
func (s *AuthService) Register(ctx context.Context, req model.CreateUserRequest) (*RegisterResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	digest, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "hash password")
	}

	user, err := s.users.Create(ctx, req.Email, digest)
	if err != nil {
		return nil, err
	}

	if s.welcome != nil {
		if pubErr := s.welcome.Publish(ctx, user.Email); pubErr != nil {
			s.logger.Warn("failed to enqueue welcome notification",
				"email", user.Email,
				"error", pubErr,
			)
		}
	}

	s.count("user.register.success")
	return &RegisterResult{
		User:    user,
		Message: "User registered successfully",
	}, nil
}

// LoginResult contains the credentials minted by a successful login.
type LoginResult struct {
	Session domainauth.Session
	Token   string
	TTL     time.Duration
}

// Login authenticates a user and mints a session plus access token. A login
// only succeeds once the session is persisted; a store failure surfaces as
// an internal error and leaves the caller unauthenticated.
func (s *AuthService) Login(ctx context.Context, email, plaintext string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if compareErr := s.passwords.Compare(plaintext, user.PasswordHash); compareErr != nil {
		if errors.Is(compareErr, password.ErrMismatch) {
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		return nil, apperrors.Wrap(compareErr, apperrors.ErrCodeInternal, "verify password")
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "issue token")
	}

	now := s.now()
	session := domainauth.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, apperrors.Wrap(saveErr, apperrors.ErrCodeInternal, "persist session")
	}

	s.count("user.login.success")
	return &LoginResult{
		Session: session,
		Token:   token,
		TTL:     s.sessionTTL,
	}, nil
}

// GetSession retrieves a live session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, apperrors.Unauthorized("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &session, nil
}

// Authenticate verifies a bearer token and returns its claims.
func (s *AuthService) Authenticate(_ context.Context, token string) (domainauth.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return domainauth.Claims{}, apperrors.Unauthorized("invalid token")
	}
	return claims, nil
}

// Logout removes a session. It is idempotent: logging out an absent or
// already-expired session succeeds.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	deleted, err := s.sessions.Delete(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if deleted == 0 {
		s.logger.Debug("logout of absent session", "session_id", sessionID)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.Validation("user ID is required")
	}
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) count(name string) {
	if s.metrics == nil {
		return
	}
	s.metrics.Count(name, 1, nil)
}
