package app

import "libris/internal/domain"

// Authorize is the authorization gate applied before protected operations.
// It is a pure decision over an already-resolved identity: nil for allow,
// ErrNotAuthenticated when there is no user, ErrInsufficientRole when the
// role does not satisfy the requirement. Admins satisfy a user requirement.
func Authorize(u *domain.User, required domain.Role) error {
	if u == nil {
		return ErrNotAuthenticated
	}

	switch required {
	case domain.RoleUser:
		return nil
	case domain.RoleAdmin:
		if u.Role == domain.RoleAdmin {
			return nil
		}
		return ErrInsufficientRole
	}
	return ErrInsufficientRole
}
