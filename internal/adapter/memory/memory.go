// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"sync"
	"time"

	"libris/internal/domain"
)

// DB implements every repository port against in-process state.
type DB struct {
	mu       sync.Mutex
	users    []*domain.User
	books    []domain.Book
	sessions map[string]*domain.Session

	userIDCounter int64
	bookIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.BookRepository = (*DB)(nil)
var _ domain.SessionRepository = (*DB)(nil)

// --- UserRepository ---

// CreateUser creates a user. The uniqueness check and the insert run under
// one lock, so concurrent registrations of a name cannot both succeed.
func (db *DB) CreateUser(ctx context.Context, username, passwordHash string, role domain.Role) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, domain.ErrDuplicateUsername
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// GetUserByUsername retrieves a user by username, nil when absent.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetUserByID retrieves a user by ID, nil when absent.
func (db *DB) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// --- BookRepository ---

// AddBook adds a book to the catalog.
func (db *DB) AddBook(ctx context.Context, title, author string, copies int, status domain.Availability) (*domain.Book, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.bookIDCounter++
	b := domain.Book{
		ID:        db.bookIDCounter,
		Title:     title,
		Author:    author,
		Copies:    copies,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	db.books = append(db.books, b)
	return &b, nil
}

// ListBooks returns a copy of the full catalog.
func (db *DB) ListBooks(ctx context.Context) ([]domain.Book, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Book, len(db.books))
	copy(result, db.books)
	return result, nil
}

// DeleteBook removes a book by id; absent ids are a no-op.
func (db *DB) DeleteBook(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, b := range db.books {
		if b.ID == id {
			db.books = append(db.books[:i], db.books[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- SessionRepository ---

// CreateSession records a session token.
func (db *DB) CreateSession(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetSession retrieves a session by token, nil when absent or expired.
func (db *DB) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if s, ok := db.sessions[token]; ok {
		if time.Now().After(s.ExpiresAt) {
			delete(db.sessions, token)
			return nil, nil
		}
		return s, nil
	}
	return nil, nil
}

// DeleteSession removes a session; unknown tokens are a no-op.
func (db *DB) DeleteSession(ctx context.Context, token string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.sessions, token)
	return nil
}

// DeleteExpiredSessions removes all expired sessions.
func (db *DB) DeleteExpiredSessions(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	now := time.Now()
	for k, v := range db.sessions {
		if now.After(v.ExpiresAt) {
			delete(db.sessions, k)
		}
	}
	return nil
}
