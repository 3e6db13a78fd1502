// Package server provides the HTTP API of the job portal.
package server

import (
	"fmt"
	"net/http"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrUserNotFound indicates no account uses the email
type ErrUserNotFound struct {
	Email string
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.Email)
}

// ErrInvalidCredentials indicates a wrong password
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ErrConflict indicates the resource already exists
type ErrConflict struct {
	Resource string
}

func (e *ErrConflict) Error() string {
	return fmt.Sprintf("%s already exists", e.Resource)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Account errors map to 400, which is what the auth clients expect.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists, *ErrUserNotFound, *ErrInvalidCredentials, *ErrValidation:
		return http.StatusBadRequest
	case *ErrNotFound:
		return http.StatusNotFound
	case *ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
