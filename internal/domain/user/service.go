package user

import "context"

// AccountService covers the admin-facing account operations.
type AccountService interface {
	// List returns every account, for the collaborator picker.
	List(ctx context.Context) ([]UserResponse, error)

	// UpdateStatus deactivates or reactivates an account and marks its
	// notifications read, atomically.
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (UserResponse, error)
}
