package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/job-portal/internal/metrics"
	"github.com/jonathan/job-portal/internal/types"
)

// handleApply records a quick application to a posting.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req types.ApplyRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	app, err := s.store.CreateApplication(r.Context(), &req)
	if err != nil {
		s.failure(w, err, "failed to submit application")
		return
	}

	metrics.ApplicationsTotal.Inc()
	s.logger.Info("application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("job_title", app.JobTitle))
	s.jsonResponse(w, http.StatusCreated, app)
}

// handleListApplications lists the applications sent to a recruiter.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	recruiter := r.URL.Query().Get("recruiterEmail")
	if recruiter == "" {
		s.failure(w, &ErrValidation{Field: "recruiterEmail", Message: "required"}, "")
		return
	}

	apps, err := s.store.ListApplicationsByRecruiter(r.Context(), recruiter)
	if err != nil {
		s.failure(w, err, "failed to list applications")
		return
	}
	s.jsonResponse(w, http.StatusOK, apps)
}
