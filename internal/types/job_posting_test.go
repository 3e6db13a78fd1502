package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobPosting_DecodesFrontendFieldNames(t *testing.T) {
	body := `{
		"_id": "6a1f8c9e-3b0c-4b8e-9a41-1f1b7f2d9c10",
		"jobTitle": "Frontend Developer",
		"companyName": "Acme",
		"location": "Berlin",
		"jobType": "Full-Time",
		"salary": 75000,
		"description": "Build UIs",
		"skillsRequired": "JavaScript, React",
		"email": "hr@acme.test",
		"createdAt": "2026-10-01T12:00:00Z"
	}`

	var job JobPosting
	require.NoError(t, json.Unmarshal([]byte(body), &job))
	assert.Equal(t, "Frontend Developer", job.Title)
	assert.Equal(t, "Acme", job.Company)
	assert.Equal(t, 75000, job.Salary)
	assert.Equal(t, "JavaScript, React", job.SkillsRequired)
	assert.Equal(t, "hr@acme.test", job.RecruiterEmail)
	assert.True(t, job.CreatedAt.Equal(time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)))
}

func TestCreateJobPostingRequest_Validation(t *testing.T) {
	valid := CreateJobPostingRequest{
		Title:          "Backend Engineer",
		Company:        "Acme",
		Location:       "Remote",
		JobType:        JobTypeRemote,
		Salary:         120000,
		Description:    "APIs",
		RecruiterEmail: "hr@acme.test",
	}
	assert.NoError(t, valid.Validate())

	badType := valid
	badType.JobType = "Internship"
	assert.Error(t, badType.Validate())

	negative := valid
	negative.Salary = -1
	assert.Error(t, negative.Validate())

	noEmail := valid
	noEmail.RecruiterEmail = ""
	assert.Error(t, noEmail.Validate())
}

func TestApplyRequest_Validation(t *testing.T) {
	req := ApplyRequest{JobseekerEmail: "jane@example.com", RecruiterEmail: "hr@acme.test", JobTitle: "Dev"}
	assert.NoError(t, req.Validate())

	req.JobTitle = ""
	assert.Error(t, req.Validate())
}
