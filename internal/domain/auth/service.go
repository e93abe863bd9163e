package auth

import "context"

// AuthService is the compact identity surface attendance requests need:
// it only exists so tracking and analytics calls carry a user.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
}
