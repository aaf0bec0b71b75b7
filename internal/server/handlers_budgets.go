package server

import (
	"net/http"

	"github.com/fintrack/backend/internal/auth"
	"github.com/fintrack/backend/internal/service"
)

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var in service.SetBudgetInput
	if !decodeBody(w, r, &in) {
		return
	}

	budget, err := s.finance.SetBudget(r.Context(), claims.UID, in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Budget set successfully",
		"budget":  budget,
	})
}

func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	results, err := s.finance.GetBudgetStatus(r.Context(), claims.UID, r.URL.Query().Get("month"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	alerts, err := s.finance.ListAlerts(r.Context(), claims.UID, r.URL.Query().Get("month"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, alerts)
}
