package server

import (
	"net/http"

	"github.com/fintrack/backend/internal/auth"
)

func (s *Server) handleAnomalies(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	anomalies, err := s.finance.GetAnomalies(r.Context(), claims.UID, r.URL.Query().Get("month"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, anomalies)
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	prediction, err := s.finance.GetPrediction(r.Context(), claims.UID, r.URL.Query().Get("month"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, prediction)
}

func (s *Server) handleHealthScore(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	score, err := s.finance.GetHealthScore(r.Context(), claims.UID, r.URL.Query().Get("month"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, score)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	recommendation, err := s.finance.GetRecommendation(r.Context(), claims.UID, r.URL.Query().Get("month"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, recommendation)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	overview, err := s.finance.GetAnalytics(r.Context(), claims.UID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}
