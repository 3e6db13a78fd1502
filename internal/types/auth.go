// Package types provides the request, response and domain types shared by the job portal API and its clients.
package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Roles a portal account can hold.
const (
	RoleJobseeker = "jobseeker"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "Admin"
)

// SignupRequest represents the request to create a new account.
// Passwords are capped at 12 characters, matching the signup form.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=12"`
	Role     string `json:"role" validate:"required,oneof=jobseeker recruiter Admin"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserSummary is the public view of an account returned on login.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

// LoginResponse carries the signed token and the account it was issued for.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// MessageResponse is the body shape used by the auth routes.
type MessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Validate validates the SignupRequest using the validator.
func (r *SignupRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
