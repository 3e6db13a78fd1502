package types

import (
	"time"

	"github.com/google/uuid"
)

// Education is the single education entry of a resume.
type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	GraduationYear string `json:"graduationYear"`
}

// Experience is one employment entry of a resume.
type Experience struct {
	CompanyName string `json:"companyName"`
	JobTitle    string `json:"jobTitle"`
	Duration    string `json:"duration"`
}

// Resume is a jobseeker's resume, keyed by email.
// Skills is free text, comma separated.
type Resume struct {
	ID             uuid.UUID    `json:"_id,omitempty"`
	FullName       string       `json:"fullName"`
	Email          string       `json:"email"`
	PhoneNumber    string       `json:"phoneNumber"`
	LinkedIn       string       `json:"linkedin,omitempty"`
	Education      Education    `json:"education"`
	Skills         string       `json:"skills"`
	Experience     []Experience `json:"experience"`
	Certifications string       `json:"certifications,omitempty"`
	Hobbies        string       `json:"hobbies,omitempty"`
	CreatedAt      time.Time    `json:"createdAt,omitempty"`
	UpdatedAt      time.Time    `json:"updatedAt,omitempty"`
}
