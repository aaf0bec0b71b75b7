package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fintrack/backend/internal/service"
	"github.com/fintrack/backend/internal/store"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// writeServiceError maps service-layer failures onto the HTTP taxonomy:
// validation 400, unknown credentials 400, missing records 404, anything
// else 500 with a generic message. Raw error text is logged, not returned.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case service.IsValidation(err):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondMessage(w, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, store.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "Not found")
	default:
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		respondMessage(w, http.StatusInternalServerError, "Server error")
	}
}

// decodeBody decodes a JSON request body into v, rejecting malformed JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
