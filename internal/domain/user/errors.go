package user

import "errors"

// User domain errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrNoFallbackAccount  = errors.New("fallback account is not provisioned")

	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
