package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/job-portal/internal/config"
	"github.com/jonathan/job-portal/internal/db"
	"github.com/jonathan/job-portal/internal/types"
)

// UserService provides business logic for user authentication operations
type UserService struct {
	store          Store
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store Store, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// Signup creates an account and returns its ID.
func (s *UserService) Signup(ctx context.Context, req *types.SignupRequest) (uuid.UUID, error) {
	exists, err := s.store.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return uuid.Nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.store.CreateUser(ctx, req.Username, req.Email, passwordHash, req.Role)
	if err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, db.ErrEmailExists) {
			return uuid.Nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return userID, nil
}

// Login checks the credentials and returns the account.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*db.User, error) {
	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if user == nil {
		return nil, &ErrUserNotFound{Email: req.Email}
	}

	if !s.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return user, nil
}
