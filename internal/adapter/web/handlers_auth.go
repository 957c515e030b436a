package web

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"libris/internal/app"
	"libris/internal/domain"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	books, err := s.catalog.List(r.Context())
	if err != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	data := map[string]any{
		"Books":      books,
		"User":       currentUser(r.Context()),
		"Flashes":    s.takeFlashes(w, r),
		"CopiesMode": s.catalog.Mode() == app.ModeCopies,
	}
	if err := tplIndex.Execute(w, data); err != nil {
		log.Printf("render index: %v", err)
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		data := map[string]any{"Flashes": s.takeFlashes(w, r)}
		if err := tplRegister.Execute(w, data); err != nil {
			log.Printf("render register: %v", err)
		}
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	// The email field is accepted and ignored.
	confirm := r.FormValue("confirm_password")

	if username == "" || password == "" {
		s.addFlash(w, r, "Username and password are required.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	if confirm != "" && confirm != password {
		s.addFlash(w, r, "Passwords do not match.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	_, err := s.auth.Register(r.Context(), username, password)
	if errors.Is(err, domain.ErrDuplicateUsername) {
		s.addFlash(w, r, "Username already taken. Please choose another one.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	if err != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	s.addFlash(w, r, "Registration successful! Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		// Already signed in: straight back to the catalog.
		if currentUser(r.Context()) != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		data := map[string]any{"Flashes": s.takeFlashes(w, r)}
		if err := tplLogin.Execute(w, data); err != nil {
			log.Printf("render login: %v", err)
		}
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	token, err := s.auth.Login(r.Context(), username, password)
	if errors.Is(err, app.ErrInvalidCredentials) {
		// One message for unknown user and wrong password alike.
		s.addFlash(w, r, "Invalid credentials!")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   86400,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err == nil {
		_ = s.auth.Logout(r.Context(), cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
