package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Job types offered by the job type filter.
const (
	JobTypeFullTime = "Full-Time"
	JobTypePartTime = "Part-Time"
	JobTypeRemote   = "Remote"
	JobTypeContract = "Contract"
)

// JobPosting is a job advertised by a recruiter.
type JobPosting struct {
	ID             uuid.UUID `json:"_id"`
	Title          string    `json:"jobTitle"`
	Company        string    `json:"companyName"`
	Location       string    `json:"location"`
	JobType        string    `json:"jobType"`
	Salary         int       `json:"salary"`
	Description    string    `json:"description"`
	ProjectDetails string    `json:"projectDetails,omitempty"`
	SkillsRequired string    `json:"skillsRequired"`
	RecruiterEmail string    `json:"email"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CreateJobPostingRequest is the body of POST /api/jobs.
type CreateJobPostingRequest struct {
	Title          string `json:"jobTitle" validate:"required"`
	Company        string `json:"companyName" validate:"required"`
	Location       string `json:"location" validate:"required"`
	JobType        string `json:"jobType" validate:"required,oneof=Full-Time Part-Time Remote Contract"`
	Salary         int    `json:"salary" validate:"gte=0"`
	Description    string `json:"description" validate:"required"`
	ProjectDetails string `json:"projectDetails"`
	SkillsRequired string `json:"skillsRequired"`
	RecruiterEmail string `json:"email" validate:"required,email"`
}

// Validate validates the CreateJobPostingRequest using the validator.
func (r *CreateJobPostingRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
