package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/job-portal/internal/schemas"
	"github.com/jonathan/job-portal/internal/types"
)

// handleCreateResume stores the resume for its email, replacing any earlier
// one.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readValidated(w, r, schemas.Resume)
	if !ok {
		return
	}

	var resume types.Resume
	if err := json.Unmarshal(body, &resume); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	saved, err := s.store.UpsertResume(r.Context(), &resume)
	if err != nil {
		s.failure(w, err, "failed to save resume")
		return
	}

	s.logger.Info("resume saved", zap.String("resume_id", saved.ID.String()))
	s.jsonResponse(w, http.StatusCreated, saved)
}

func (s *Server) handleGetResumeByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		s.errorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	resume, err := s.store.GetResumeByEmail(r.Context(), email)
	if err != nil {
		s.failure(w, err, "failed to get resume")
		return
	}
	if resume == nil {
		s.failure(w, &ErrNotFound{Resource: "resume"}, "")
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}
