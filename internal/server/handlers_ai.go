package server

import (
	"net/http"

	"github.com/fintrack/backend/internal/auth"
)

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	insight, err := s.insights.GetInsights(r.Context(), claims.UID, r.URL.Query().Get("month"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, insight)
}

func (s *Server) handleStrategy(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	strategy, err := s.insights.GetStrategy(r.Context(), claims.UID, r.URL.Query().Get("month"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"strategy": strategy})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var in struct {
		Message string `json:"message"`
	}
	if !decodeBody(w, r, &in) {
		return
	}

	reply, err := s.insights.Chat(r.Context(), claims.UID, in.Message)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
