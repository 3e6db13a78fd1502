package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/job-portal/internal/schemas"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// handleHealth reports whether the database and the prediction cache are
// reachable. Only a database outage fails the check; without the cache
// predictions are still served.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unreachable"})
		return
	}
	if err := s.cache.Ping(ctx); err != nil {
		s.logger.Warn("prediction cache unreachable", zap.Error(err))
		s.jsonResponse(w, http.StatusOK, map[string]string{"status": "degraded", "cache": "unreachable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data, s.logger)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure maps err to a status, logging unexpected errors.
func (s *Server) failure(w http.ResponseWriter, err error, msg string) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(msg, zap.Error(err))
		s.errorResponse(w, status, msg)
		return
	}
	s.errorResponse(w, status, err.Error())
}

// schemaFailure writes a 400 listing the offending fields.
func (s *Server) schemaFailure(w http.ResponseWriter, err *schemas.ValidationError) {
	s.jsonResponse(w, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": err.Errors,
	})
}

// readValidated reads the body and validates it against the named schema.
// It writes the error response and returns false on failure.
func (s *Server) readValidated(w http.ResponseWriter, r *http.Request, schema string) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	if err := schemas.Validate(schema, body); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			s.schemaFailure(w, validationErr)
			return nil, false
		}
		var loadErr *schemas.SchemaLoadError
		if errors.As(err, &loadErr) {
			s.logger.Error("schema unavailable", zap.Error(err))
			s.errorResponse(w, http.StatusInternalServerError, "schema unavailable")
			return nil, false
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return body, true
}

// decodeJSON decodes a JSON body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}
