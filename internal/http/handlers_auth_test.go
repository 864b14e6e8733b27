package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/William9701/user-service/internal/domain/auth"
	"github.com/William9701/user-service/internal/domain/model"
	apperrors "github.com/William9701/user-service/internal/errors"
	"github.com/William9701/user-service/internal/service"
)

type mockAuthService struct {
	registerFn     func(ctx context.Context, req model.CreateUserRequest) (*service.RegisterResult, error)
	loginFn        func(ctx context.Context, email, password string) (*service.LoginResult, error)
	getSessionFn   func(ctx context.Context, sessionID string) (*domainauth.Session, error)
	authenticateFn func(ctx context.Context, token string) (domainauth.Claims, error)
	logoutFn       func(ctx context.Context, sessionID string) error
	getUserFn      func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, req model.CreateUserRequest) (*service.RegisterResult, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	return m.getSessionFn(ctx, sessionID)
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (domainauth.Claims, error) {
	return m.authenticateFn(ctx, token)
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	return m.logoutFn(ctx, sessionID)
}

func (m *mockAuthService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return m.getUserFn(ctx, id)
}

func newTestRouter(svc AuthService) http.Handler {
	return NewRouter(RouterServices{Auth: svc, SecureCookies: false})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRegisterHandler_Success(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(_ context.Context, req model.CreateUserRequest) (*service.RegisterResult, error) {
			assert.Equal(t, "user@example.com", req.Email)
			return &service.RegisterResult{Message: "User registered successfully"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/users/register",
		strings.NewReader(`{"email":"user@example.com","password":"S3cret!pass"}`))
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "User registered successfully", decodeBody(t, rec)["message"])
}

func TestRegisterHandler_Conflict(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(context.Context, model.CreateUserRequest) (*service.RegisterResult, error) {
			return nil, apperrors.Conflict("email already registered")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/users/register",
		strings.NewReader(`{"email":"user@example.com","password":"S3cret!pass"}`))
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "conflict", body["error"])
	assert.Equal(t, "email already registered", body["message"])
}

func TestRegisterHandler_ValidationFieldError(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(context.Context, model.CreateUserRequest) (*service.RegisterResult, error) {
			return nil, apperrors.ValidationField("password", "password must contain a symbol")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/users/register",
		strings.NewReader(`{"email":"user@example.com","password":"weakpass1"}`))
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "password", body["field"])
}

func TestRegisterHandler_MalformedJSON(t *testing.T) {
	svc := &mockAuthService{}

	req := httptest.NewRequest(http.MethodPost, "/users/register", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", decodeBody(t, rec)["error"])
}

func TestLoginHandler_SetsCookieAndReturnsToken(t *testing.T) {
	now := time.Now()
	svc := &mockAuthService{
		loginFn: func(_ context.Context, email, password string) (*service.LoginResult, error) {
			assert.Equal(t, "user@example.com", email)
			assert.Equal(t, "S3cret!pass", password)
			return &service.LoginResult{
				Session: domainauth.Session{
					ID:        "handle-1",
					UserID:    "user-1",
					Email:     email,
					Token:     "signed.jwt.token",
					CreatedAt: now,
					ExpiresAt: now.Add(time.Hour),
				},
				Token: "signed.jwt.token",
				TTL:   time.Hour,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/users/login",
		strings.NewReader(`{"email":"user@example.com","password":"S3cret!pass"}`))
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "signed.jwt.token", decodeBody(t, rec)["token"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.Equal(t, "handle-1", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.InDelta(t, 3600, cookie.MaxAge, 5)
}

func TestLoginHandler_UnknownUser(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(context.Context, string, string) (*service.LoginResult, error) {
			return nil, apperrors.NotFound("user not found")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/users/login",
		strings.NewReader(`{"email":"ghost@example.com","password":"S3cret!pass"}`))
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(context.Context, string, string) (*service.LoginResult, error) {
			return nil, apperrors.Unauthorized("invalid credentials")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/users/login",
		strings.NewReader(`{"email":"user@example.com","password":"wrong"}`))
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginHandler_MissingFields(t *testing.T) {
	svc := &mockAuthService{}

	req := httptest.NewRequest(http.MethodPost, "/users/login",
		strings.NewReader(`{"email":"user@example.com"}`))
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutHandler_ClearsCookie(t *testing.T) {
	var loggedOut string
	svc := &mockAuthService{
		logoutFn: func(_ context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/users/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "handle-1"})
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "handle-1", loggedOut)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestLogoutHandler_NoCookieStillSucceeds(t *testing.T) {
	svc := &mockAuthService{
		logoutFn: func(_ context.Context, sessionID string) error {
			assert.Empty(t, sessionID)
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/users/logout", nil)
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileHandler_ViaSession(t *testing.T) {
	svc := &mockAuthService{
		getSessionFn: func(_ context.Context, sessionID string) (*domainauth.Session, error) {
			require.Equal(t, "handle-1", sessionID)
			return &domainauth.Session{ID: sessionID, UserID: "user-1", Email: "user@example.com"}, nil
		},
		getUserFn: func(_ context.Context, id string) (*model.User, error) {
			require.Equal(t, "user-1", id)
			return &model.User{ID: id, Email: "user@example.com"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "handle-1"})
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "user-1", body["id"])
	assert.Equal(t, "user@example.com", body["email"])
}

func TestProfileHandler_ViaBearerToken(t *testing.T) {
	svc := &mockAuthService{
		authenticateFn: func(_ context.Context, token string) (domainauth.Claims, error) {
			require.Equal(t, "signed.jwt.token", token)
			return domainauth.Claims{UserID: "user-1", Email: "user@example.com"}, nil
		},
		getUserFn: func(_ context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Email: "user@example.com"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	req.Header.Set("Authorization", "Bearer signed.jwt.token")
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	newTestRouter(&mockAuthService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
