package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/William9701/user-service/internal/domain/auth"
	"github.com/William9701/user-service/internal/domain/model"
	"github.com/William9701/user-service/internal/service"
)

// AuthService is the slice of the auth service the transport layer needs.
type AuthService interface {
	Register(ctx context.Context, req model.CreateUserRequest) (*service.RegisterResult, error)
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Authenticate(ctx context.Context, token string) (domainauth.Claims, error)
	Logout(ctx context.Context, sessionID string) error
	GetUser(ctx context.Context, id string) (*model.User, error)
}

// SessionCookieName is the cookie carrying the session handle.
const SessionCookieName = "session_id"

// Logging returns a middleware that logs each request with method, path, status, and duration.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns a middleware that admits a request carrying either a
// live session cookie or a valid bearer token. A session is resolved first;
// the Authorization header is only consulted when no cookie is present.
// Admission never extends a session's lifetime.
func RequireAuth(authSvc AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				session, getErr := authSvc.GetSession(r.Context(), cookie.Value)
				if getErr != nil {
					writeUnauthorized(w, "session invalid")
					return
				}
				// Downstream handlers see the session's token as if the
				// client had sent it directly.
				r.Header.Set("Authorization", "Bearer "+session.Token)
				next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), session)))
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				writeUnauthorized(w, "no credential presented")
				return
			}
			claims, err := authSvc.Authenticate(r.Context(), token)
			if err != nil {
				writeUnauthorized(w, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(SetClaimsInContext(r.Context(), claims)))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "unauthorized",
		Err:     errors.New(message),
	})
}
