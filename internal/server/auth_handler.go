package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/job-portal/internal/types"
)

// Messages returned by the auth routes.
const (
	msgSignedUp           = "User signed up successfully"
	msgUserExists         = "User already exists"
	msgUserNotFound       = "User does not exist"
	msgInvalidCredentials = "Invalid credentials"
	msgInvalidRequest     = "Invalid request"
	msgServerError        = "Server error"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Signup handles account creation requests.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req types.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.message(w, http.StatusBadRequest, types.MessageResponse{Message: msgInvalidRequest, Error: "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		h.message(w, http.StatusBadRequest, types.MessageResponse{Message: msgInvalidRequest, Error: extractValidationErrors(err)})
		return
	}

	userID, err := h.userService.Signup(r.Context(), &req)
	if err != nil {
		h.failure(w, err)
		return
	}

	h.logger.Info("user signed up", zap.String("user_id", userID.String()), zap.String("role", req.Role))
	h.message(w, http.StatusCreated, types.MessageResponse{Message: msgSignedUp})
}

// Login handles login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.message(w, http.StatusBadRequest, types.MessageResponse{Message: msgInvalidRequest, Error: "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		h.message(w, http.StatusBadRequest, types.MessageResponse{Message: msgInvalidRequest, Error: extractValidationErrors(err)})
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		h.failure(w, err)
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		h.failure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.LoginResponse{
		Token: token,
		User:  types.UserSummary{ID: user.ID, Username: user.Username, Role: user.Role},
	}, h.logger)
}

// failure writes the message matching err.
func (h *AuthHandler) failure(w http.ResponseWriter, err error) {
	var msg string
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		msg = msgUserExists
	case *ErrUserNotFound:
		msg = msgUserNotFound
	case *ErrInvalidCredentials:
		msg = msgInvalidCredentials
	default:
		h.logger.Error("auth request failed", zap.Error(err))
		msg = msgServerError
	}
	h.message(w, HTTPStatus(err), types.MessageResponse{Message: msg})
}

func (h *AuthHandler) message(w http.ResponseWriter, status int, body types.MessageResponse) {
	writeJSON(w, status, body, h.logger)
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		// Return first validation error for simplicity
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
