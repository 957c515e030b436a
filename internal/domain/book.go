package domain

import (
	"context"
	"fmt"
	"time"
)

// Availability is the status-enum representation of book inventory.
type Availability string

// The closed set of availability states.
const (
	Available   Availability = "available"
	Unavailable Availability = "unavailable"
)

// ParseAvailability validates an availability value read from storage or a form.
func ParseAvailability(s string) (Availability, error) {
	switch Availability(s) {
	case Available, Unavailable:
		return Availability(s), nil
	}
	return "", fmt.Errorf("unknown availability %q", s)
}

// Book represents a catalog record. Copies and Status are both persisted;
// which one is authoritative is a deployment choice (see app.InventoryMode).
type Book struct {
	ID        int64
	Title     string
	Author    string
	Copies    int
	Status    Availability
	CreatedAt time.Time
}

// BookRepository defines the port for catalog persistence operations.
//
// DeleteBook is idempotent: deleting an absent id is not an error.
type BookRepository interface {
	AddBook(ctx context.Context, title, author string, copies int, status Availability) (*Book, error)
	ListBooks(ctx context.Context) ([]Book, error)
	DeleteBook(ctx context.Context, id int64) error
}
