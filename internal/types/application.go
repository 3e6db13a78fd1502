package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ApplyRequest is the quick-apply body sent for a job posting.
type ApplyRequest struct {
	JobseekerEmail string `json:"jobseekerEmail" validate:"required,email"`
	RecruiterEmail string `json:"recruiterEmail" validate:"required,email"`
	JobTitle       string `json:"jobTitle" validate:"required"`
}

// Application is a stored job application.
type Application struct {
	ID             uuid.UUID `json:"_id"`
	JobseekerEmail string    `json:"jobseekerEmail"`
	RecruiterEmail string    `json:"recruiterEmail"`
	JobTitle       string    `json:"jobTitle"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Validate validates the ApplyRequest using the validator.
func (r *ApplyRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
