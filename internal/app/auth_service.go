// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	"libris/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password; callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNotAuthenticated indicates a request with no valid session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInsufficientRole indicates an authenticated user lacking the
	// required role.
	ErrInsufficientRole = errors.New("insufficient role")
)

const sessionTTL = 24 * time.Hour

// AuthService handles registration, login and session management.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
	}
}

// Register creates a new account with the default user role. The password is
// hashed before it reaches the repository; the plaintext is never stored.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, username, string(hash), domain.RoleUser)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateAdmin creates an account with the admin role. It is not reachable
// from the HTTP surface; only the CLI calls it.
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.users.CreateUser(ctx, username, string(hash), domain.RoleAdmin)
}

// Login authenticates a user and starts a session, returning the token to be
// delivered to the client.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		log.Printf("login failed: unknown user %q", username)
		return "", ErrInvalidCredentials
	}

	// A malformed stored hash also fails comparison, it never panics.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Printf("login failed: bad password for %q", username)
		return "", ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(sessionTTL)
	if err := s.sessions.CreateSession(ctx, user.ID, token, expiresAt); err != nil {
		return "", err
	}

	return token, nil
}

// Logout destroys the session. Ending a nonexistent session is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, token)
}

// CurrentUser resolves a session token to its user. Unknown and expired
// tokens both yield ErrNotAuthenticated; expired sessions are deleted when
// seen.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotAuthenticated
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.DeleteSession(ctx, token)
		return nil, ErrNotAuthenticated
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotAuthenticated
	}

	return user, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
