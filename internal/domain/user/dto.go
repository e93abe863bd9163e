package user

import (
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/pkg/validator"
)

type UserResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// MapUserToResponse converts a User entity to UserResponse
func MapUserToResponse(u User) UserResponse {
	return UserResponse{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   string(u.Role),
		Status: string(u.Status),
	}
}

// UpdateStatusRequest deactivates or reactivates an account.
type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	validStatuses := []string{string(StatusActive), string(StatusDeactivated)}
	if !validator.IsInSlice(r.Status, validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: active, deactivated",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
