package auth

import "context"

// UserStore describes persistence operations required by the auth subsystem.
type UserStore interface {
	// FindUserByEmail returns ErrNotFound when no user has the email.
	FindUserByEmail(ctx context.Context, email string) (User, error)
	// CreateUser inserts a user and returns ErrAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, u User) (User, error)
	// ListUsersByRole returns users with the role, newest first.
	ListUsersByRole(ctx context.Context, role RoleName) ([]User, error)
}
