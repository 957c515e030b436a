package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"libris/internal/app"
	"libris/internal/domain"
)

func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	in := app.BookInput{
		Title:  strings.TrimSpace(r.FormValue("title")),
		Author: strings.TrimSpace(r.FormValue("author")),
	}
	switch s.catalog.Mode() {
	case app.ModeCopies:
		copies, err := strconv.Atoi(r.FormValue("copies"))
		if err != nil {
			s.addFlash(w, r, "Copies must be a number.")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		in.Copies = copies
	case app.ModeStatus:
		in.Status = domain.Availability(r.FormValue("status"))
	}

	_, err := s.catalog.Add(r.Context(), currentUser(r.Context()), in)
	switch {
	case errors.Is(err, app.ErrNotAuthenticated):
		s.addFlash(w, r, "Please log in to add books.")
	case errors.Is(err, app.ErrInsufficientRole):
		s.addFlash(w, r, "Only admins can add books!")
	case err != nil:
		s.addFlash(w, r, "Could not add book: "+err.Error())
	default:
		s.addFlash(w, r, "Book added successfully!")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/delete_book/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Deleting an absent id is a silent no-op; only authentication failures
	// get a message.
	err = s.catalog.Delete(r.Context(), currentUser(r.Context()), id)
	switch {
	case errors.Is(err, app.ErrNotAuthenticated):
		s.addFlash(w, r, "Please log in to delete books.")
	case err != nil:
		s.addFlash(w, r, "Could not delete book.")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
