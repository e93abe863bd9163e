package user

import "context"

// UserRepository defines data access methods for user accounts.
type UserRepository interface {
	// Create creates a new user account
	Create(ctx context.Context, u User) (User, error)

	// GetByID retrieves a user by ID; returns ErrUserNotFound when absent
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email; returns ErrUserNotFound when absent
	GetByEmail(ctx context.Context, email string) (User, error)

	// GetFallback retrieves the well-known anonymous account
	GetFallback(ctx context.Context) (User, error)

	// UpdateStatus sets the account status
	UpdateStatus(ctx context.Context, id string, status Status) error

	// List retrieves all users ordered by name
	List(ctx context.Context) ([]User, error)
}
