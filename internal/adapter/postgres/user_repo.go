package postgres

import (
	"context"
	"database/sql"
	"time"

	"libris/internal/domain"

	"github.com/lib/pq"
)

// CreateUser inserts a user. The UNIQUE constraint on username serializes
// concurrent registrations; violations map to domain.ErrDuplicateUsername.
func (d *DB) CreateUser(ctx context.Context, username, passwordHash string, role domain.Role) (*domain.User, error) {
	var u domain.User
	var roleStr string
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO users (username, password_hash, role, created_at) VALUES ($1, $2, $3, $4) RETURNING id, username, password_hash, role, created_at",
		username, passwordHash, string(role), time.Now(),
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &roleStr, &u.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, err
	}
	u.Role, err = domain.ParseRole(roleStr)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByUsername retrieves a user by username, nil when absent.
func (d *DB) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return d.scanUser(d.sql.QueryRowContext(ctx,
		"SELECT id, username, password_hash, role, created_at FROM users WHERE username = $1",
		username,
	))
}

// GetUserByID retrieves a user by ID, nil when absent.
func (d *DB) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return d.scanUser(d.sql.QueryRowContext(ctx,
		"SELECT id, username, password_hash, role, created_at FROM users WHERE id = $1",
		id,
	))
}

func (d *DB) scanUser(row *sql.Row) (*domain.User, error) {
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
