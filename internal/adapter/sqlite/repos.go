package sqlite

import (
	"context"
	"database/sql"
	"time"

	"libris/internal/domain"

	"github.com/mattn/go-sqlite3"
)

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.BookRepository = (*DB)(nil)
var _ domain.SessionRepository = (*DB)(nil)

// CreateUser inserts a user; the UNIQUE index on username serializes
// concurrent registrations.
func (d *DB) CreateUser(ctx context.Context, username, passwordHash string, role domain.Role) (*domain.User, error) {
	now := time.Now()
	res, err := d.sql.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, role, created_at) VALUES (?, ?, ?, ?)",
		username, passwordHash, string(role), now,
	)
	if err != nil {
		if e, ok := err.(sqlite3.Error); ok && e.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: id, Username: username, PasswordHash: passwordHash, Role: role, CreatedAt: now}, nil
}

// GetUserByUsername retrieves a user by username, nil when absent.
func (d *DB) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT id, username, password_hash, role, created_at FROM users WHERE username = ?",
		username,
	))
}

// GetUserByID retrieves a user by ID, nil when absent.
func (d *DB) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT id, username, password_hash, role, created_at FROM users WHERE id = ?",
		id,
	))
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var roleStr string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &roleStr, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Role, err = domain.ParseRole(roleStr)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AddBook inserts a catalog record.
func (d *DB) AddBook(ctx context.Context, title, author string, copies int, status domain.Availability) (*domain.Book, error) {
	now := time.Now()
	res, err := d.sql.ExecContext(ctx,
		"INSERT INTO books (title, author, copies, status, created_at) VALUES (?, ?, ?, ?, ?)",
		title, author, copies, string(status), now,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.Book{ID: id, Title: title, Author: author, Copies: copies, Status: status, CreatedAt: now}, nil
}

// ListBooks returns the full catalog.
func (d *DB) ListBooks(ctx context.Context) ([]domain.Book, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, title, author, copies, status, created_at FROM books",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		var statusStr string
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Copies, &statusStr, &b.CreatedAt); err != nil {
			return nil, err
		}
		if b.Status, err = domain.ParseAvailability(statusStr); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// DeleteBook deletes by id; absent ids delete zero rows.
func (d *DB) DeleteBook(ctx context.Context, id int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	return err
}

// CreateSession records a session token.
func (d *DB) CreateSession(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)",
		token, userID, expiresAt, time.Now(),
	)
	return err
}

// GetSession retrieves a session by token, nil when absent.
func (d *DB) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := d.sql.QueryRowContext(ctx,
		"SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = ?",
		token,
	).Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSession deletes a session by token; absent tokens are a no-op.
func (d *DB) DeleteSession(ctx context.Context, token string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
	return err
}

// DeleteExpiredSessions deletes all expired sessions.
func (d *DB) DeleteExpiredSessions(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < ?", time.Now())
	return err
}
