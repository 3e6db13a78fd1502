package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/jonathan/job-portal/internal/types"
)

// NormalizePosting cleans the free-text fields of a job posting request in
// place.
func NormalizePosting(req *types.CreateJobPostingRequest) error {
	desc, err := HTMLToText(req.Description)
	if err != nil {
		return fmt.Errorf("failed to clean description: %w", err)
	}
	details, err := HTMLToText(req.ProjectDetails)
	if err != nil {
		return fmt.Errorf("failed to clean project details: %w", err)
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Company = strings.TrimSpace(req.Company)
	req.Location = strings.TrimSpace(req.Location)
	req.Description = desc
	req.ProjectDetails = details
	req.SkillsRequired = NormalizeSkills(req.SkillsRequired)
	req.RecruiterEmail = strings.ToLower(strings.TrimSpace(req.RecruiterEmail))
	return nil
}

// Fingerprint identifies a posting by recruiter, title, company and
// location. Reposting the same job yields the same fingerprint; the same
// job in another city does not.
func Fingerprint(req *types.CreateJobPostingRequest) string {
	h := sha256.New()
	for _, part := range []string{req.RecruiterEmail, req.Title, req.Company, req.Location} {
		h.Write([]byte(strings.ToLower(part)))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
