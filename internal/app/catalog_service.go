package app

import (
	"context"
	"errors"
	"fmt"

	"libris/internal/domain"
)

// AddBookPolicy selects which role the add-book operation requires.
// The deployment picks one; the two source variants are never merged.
type AddBookPolicy string

// The supported policies.
const (
	// PolicyAdminOnly gates add-book on the admin role.
	PolicyAdminOnly AddBookPolicy = "admin"
	// PolicyAnyAuthenticated lets any logged-in user add books.
	PolicyAnyAuthenticated AddBookPolicy = "any"
)

// ParseAddBookPolicy validates a policy value from configuration.
func ParseAddBookPolicy(s string) (AddBookPolicy, error) {
	switch AddBookPolicy(s) {
	case PolicyAdminOnly, PolicyAnyAuthenticated:
		return AddBookPolicy(s), nil
	}
	return "", fmt.Errorf("unknown add-book policy %q", s)
}

// InventoryMode selects how book inventory is represented.
type InventoryMode string

// The supported modes.
const (
	// ModeCopies tracks a copy count; availability is derived from it.
	ModeCopies InventoryMode = "copies"
	// ModeStatus tracks an explicit available/unavailable status.
	ModeStatus InventoryMode = "status"
)

// ParseInventoryMode validates a mode value from configuration.
func ParseInventoryMode(s string) (InventoryMode, error) {
	switch InventoryMode(s) {
	case ModeCopies, ModeStatus:
		return InventoryMode(s), nil
	}
	return "", fmt.Errorf("unknown inventory mode %q", s)
}

// BookInput carries the add-book form fields. In copies mode Copies is read
// and Status ignored; in status mode the reverse.
type BookInput struct {
	Title  string
	Author string
	Copies int
	Status domain.Availability
}

// CatalogService encapsulates the book catalog use cases.
type CatalogService struct {
	books  domain.BookRepository
	policy AddBookPolicy
	mode   InventoryMode
}

// NewCatalogService creates a CatalogService with the deployment's policy
// and inventory mode.
func NewCatalogService(books domain.BookRepository, policy AddBookPolicy, mode InventoryMode) *CatalogService {
	return &CatalogService{books: books, policy: policy, mode: mode}
}

// Mode reports the configured inventory representation.
func (s *CatalogService) Mode() InventoryMode { return s.mode }

// List returns the full catalog. Listing is public.
func (s *CatalogService) List(ctx context.Context) ([]domain.Book, error) {
	return s.books.ListBooks(ctx)
}

// Add validates the actor against the deployment policy and stores a book.
// A denied add performs no writes.
func (s *CatalogService) Add(ctx context.Context, actor *domain.User, in BookInput) (*domain.Book, error) {
	required := domain.RoleUser
	if s.policy == PolicyAdminOnly {
		required = domain.RoleAdmin
	}
	if err := Authorize(actor, required); err != nil {
		return nil, err
	}

	if in.Title == "" || in.Author == "" {
		return nil, errors.New("title and author are required")
	}

	copies := 0
	status := domain.Unavailable
	switch s.mode {
	case ModeCopies:
		if in.Copies < 0 {
			return nil, errors.New("copies must not be negative")
		}
		copies = in.Copies
		if copies > 0 {
			status = domain.Available
		}
	case ModeStatus:
		parsed, err := domain.ParseAvailability(string(in.Status))
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	return s.books.AddBook(ctx, in.Title, in.Author, copies, status)
}

// Delete removes a book by id. Any authenticated user may delete; deleting
// an absent id succeeds silently.
func (s *CatalogService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if err := Authorize(actor, domain.RoleUser); err != nil {
		return err
	}
	return s.books.DeleteBook(ctx, id)
}
