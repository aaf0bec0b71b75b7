package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fintrack/backend/internal/auth"
	"github.com/fintrack/backend/internal/service"
)

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var in service.CreateTransactionInput
	if !decodeBody(w, r, &in) {
		return
	}

	txn, err := s.finance.CreateTransaction(r.Context(), claims.UID, in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, txn)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	transactions, err := s.finance.ListTransactions(r.Context(), claims.UID, r.URL.Query().Get("month"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	if err := s.finance.DeleteTransaction(r.Context(), claims.UID, mux.Vars(r)["id"]); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Transaction deleted successfully")
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	summary, err := s.finance.GetSummary(r.Context(), claims.UID, r.URL.Query().Get("month"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleCategorySummary(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	rows, err := s.finance.GetCategorySummary(r.Context(), claims.UID, r.URL.Query().Get("month"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}
