package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/job-portal/internal/types"
)

// handlePredict completes the word being typed in a form field.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req types.PredictRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	suggestion, err := s.predictor.Predict(r.Context(), req.Field, req.Text)
	if err != nil {
		s.logger.Warn("prediction failed", zap.String("field", req.Field), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "prediction failed")
		return
	}
	s.jsonResponse(w, http.StatusOK, types.PredictResponse{Suggestion: suggestion})
}
