// Package web implements the HTTP adapter for the application.
package web

import (
	"net/http"

	"libris/internal/app"

	"github.com/gorilla/sessions"
)

const sessionCookie = "session"

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth    *app.AuthService
	catalog *app.CatalogService
	flash   *sessions.CookieStore
}

// New creates a Server wired to the given application services. secret signs
// the flash-message cookie store.
func New(auth *app.AuthService, catalog *app.CatalogService, secret []byte) *Server {
	return &Server{
		auth:    auth,
		catalog: catalog,
		flash:   sessions.NewCookieStore(secret),
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/register", s.handleRegister)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/add_book", s.handleAddBook)
	mux.HandleFunc("/delete_book/", s.handleDeleteBook)

	return s.loggingMiddleware(s.sessionMiddleware(mux))
}
