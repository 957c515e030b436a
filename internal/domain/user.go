// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrDuplicateUsername indicates that the username is already taken.
// Repositories return it from CreateUser when the uniqueness constraint fires.
var ErrDuplicateUsername = errors.New("username already taken")

// Role is the authorization tier attached to a user.
type Role string

// The closed set of roles.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole validates a role read from storage or configuration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User represents a registered account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// UserRepository defines the port for user persistence operations.
//
// CreateUser must serialize the uniqueness check with the insert: of two
// concurrent calls with the same username, at most one succeeds and the
// other receives ErrDuplicateUsername.
type UserRepository interface {
	CreateUser(ctx context.Context, username, passwordHash string, role Role) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
}
