package response

import (
	"errors"
	"net/http"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/activity"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/auth"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/event"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/user"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrAccountDeactivated):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, err.Error())

	// Tracking domain errors. Policy rejections are conflicts with the
	// current clocking state, the message tells the user how to recover.
	case errors.Is(err, event.ErrUserIsOnBreak),
		errors.Is(err, event.ErrNoCheckInYet),
		errors.Is(err, event.ErrNotOnBreak),
		errors.Is(err, event.ErrNoCheckInToday):
		Conflict(w, err.Error())
	case errors.Is(err, event.ErrEventNotFound):
		NotFound(w, err.Error())

	// Activity domain errors
	case errors.Is(err, activity.ErrCannotDrill),
		errors.Is(err, activity.ErrInvalidGranularity):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
