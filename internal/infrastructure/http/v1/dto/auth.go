package dto

import (
	"millstock/internal/domain/auth"
)

// RegisterUserRequest registers a new user account.
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name,omitempty"`
}

// ToDomain converts to the auth service request.
func (r *RegisterUserRequest) ToDomain() auth.RegisterRequest {
	return auth.RegisterRequest{
		Email:    r.Email,
		Password: r.Password,
		Name:     r.Name,
	}
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ToDomain converts to the auth credentials.
func (r *LoginRequest) ToDomain() auth.Credentials {
	return auth.Credentials{Email: r.Email, Password: r.Password}
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token *auth.AccessToken `json:"token"`
	User  *auth.User        `json:"user"`
}

// ChangePasswordRequest rotates the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// SetUserActiveRequest enables or disables an account.
type SetUserActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}
