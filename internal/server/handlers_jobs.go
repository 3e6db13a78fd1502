package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/job-portal/internal/db"
	"github.com/jonathan/job-portal/internal/ingestion"
	"github.com/jonathan/job-portal/internal/ranking"
	"github.com/jonathan/job-portal/internal/schemas"
	"github.com/jonathan/job-portal/internal/types"
)

// handleListJobs returns all postings, newest first.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.store.ListJobPostings(r.Context())
	if err != nil {
		s.failure(w, err, "failed to list jobs")
		return
	}
	s.jsonResponse(w, http.StatusOK, jobs)
}

// handleCreateJob stores a posting from a recruiter. Reposting identical
// content is rejected with 409.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readValidated(w, r, schemas.JobPosting)
	if !ok {
		return
	}

	var req types.CreateJobPostingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if err := ingestion.NormalizePosting(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	posting, err := s.store.CreateJobPosting(r.Context(), &req, ingestion.Fingerprint(&req))
	if err != nil {
		if errors.Is(err, db.ErrDuplicatePosting) {
			err = &ErrConflict{Resource: "job posting"}
		}
		s.failure(w, err, "failed to create job posting")
		return
	}

	s.logger.Info("job posted",
		zap.String("job_id", posting.ID.String()),
		zap.String("title", posting.Title),
		zap.String("recruiter", posting.RecruiterEmail))
	s.jsonResponse(w, http.StatusCreated, posting)
}

// handleJobViews computes the weekly, monthly and yearly ranked views. When
// email is given the jobs are ranked against that resume's skills; without
// it they are ordered by date only.
func (s *Server) handleJobViews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := ranking.Criteria{
		Search:      q.Get("search"),
		JobType:     q.Get("jobType"),
		Location:    q.Get("location"),
		SalaryRange: q.Get("salaryRange"),
	}

	jobs, err := s.store.ListJobPostings(r.Context())
	if err != nil {
		s.failure(w, err, "failed to list jobs")
		return
	}

	var skills ranking.SkillSet
	if email := q.Get("email"); email != "" {
		resume, err := s.store.GetResumeByEmail(r.Context(), email)
		if err != nil {
			s.failure(w, err, "failed to get resume")
			return
		}
		if resume == nil {
			s.failure(w, &ErrNotFound{Resource: "resume"}, "")
			return
		}
		skills = ranking.ParseSkills(resume.Skills)
	}

	s.jsonResponse(w, http.StatusOK, ranking.BuildViews(jobs, skills, criteria, s.now()))
}
