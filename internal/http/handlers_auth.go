package httpx

import (
	"errors"
	"net/http"
	"time"

	domainauth "github.com/William9701/user-service/internal/domain/auth"
	"github.com/William9701/user-service/internal/domain/model"
)

// AuthHandlers serves registration, login, logout, and profile endpoints.
type AuthHandlers struct {
	Auth          AuthService
	CookieDomain  string
	SecureCookies bool
}

// Register handles POST /users/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Auth.Register(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{"message": result.Message})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /users/login. On success it sets the session cookie
// and returns the access token in the body.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation",
			Err:     errors.New("email and password are required"),
		})
		return
	}

	result, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.setSessionCookie(w, result.Session)
	WriteJSON(w, http.StatusOK, map[string]string{"token": result.Token})
}

// Logout handles POST /users/logout. It is idempotent: an absent or expired
// session still yields a success response, and the cookie is always cleared.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	var sessionID string
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		sessionID = cookie.Value
	}

	if err := h.Auth.Logout(r.Context(), sessionID); err != nil {
		WriteAppError(w, err)
		return
	}

	h.clearSessionCookie(w)
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Profile handles GET /users/profile. Middleware has already admitted the
// request via session or bearer token.
func (h *AuthHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := CurrentUserID(r.Context())
	if !ok {
		writeUnauthorized(w, "no credential presented")
		return
	}

	user, err := h.Auth.GetUser(r.Context(), userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"id":         user.ID,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	})
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, s domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

func (h *AuthHandlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
	})
}
