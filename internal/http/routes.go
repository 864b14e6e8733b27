// Package httpx wires HTTP handlers, middleware, and routes.
package httpx

import "net/http"

// RouterServices groups the dependencies the router needs.
type RouterServices struct {
	Auth          AuthService
	CookieDomain  string
	SecureCookies bool
}

// NewRouter builds the HTTP handler tree. Registration, login, and logout
// are public; profile requires a session cookie or bearer token.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	h := &AuthHandlers{
		Auth:          services.Auth,
		CookieDomain:  services.CookieDomain,
		SecureCookies: services.SecureCookies,
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	mux.HandleFunc("POST /users/register", h.Register)
	mux.HandleFunc("POST /users/login", h.Login)
	mux.HandleFunc("POST /users/logout", h.Logout)

	requireAuth := RequireAuth(services.Auth)
	mux.Handle("GET /users/profile", requireAuth(http.HandlerFunc(h.Profile)))

	return mux
}
