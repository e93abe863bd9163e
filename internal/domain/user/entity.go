package user

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type Status string

const (
	StatusActive      Status = "active"
	StatusDeactivated Status = "deactivated"
)

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Status       Status

	// IsFallback marks the well-known anonymous account substituted when
	// a stale identity reference cannot be resolved mid-operation.
	IsFallback bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
