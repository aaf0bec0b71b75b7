// Package server wires the REST surface of the finance tracker.
package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/fintrack/backend/internal/auth"
	"github.com/fintrack/backend/internal/service"
)

// Server holds the services behind the REST API.
type Server struct {
	users    *service.UserService
	finance  *service.FinanceService
	insights *service.InsightService
	tokens   *auth.TokenAuth
	logger   zerolog.Logger
}

// New creates a Server.
func New(users *service.UserService, finance *service.FinanceService, insights *service.InsightService, tokens *auth.TokenAuth, logger zerolog.Logger) *Server {
	return &Server{
		users:    users,
		finance:  finance,
		insights: insights,
		tokens:   tokens,
		logger:   logger,
	}
}

// Router builds the route table. Everything under /api except signup and
// login requires a bearer token.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestLogger)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users/signup", s.handleSignup).Methods(http.MethodPost)
	api.HandleFunc("/users/login", s.handleLogin).Methods(http.MethodPost)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Middleware(s.tokens, s.logger))

	protected.HandleFunc("/users/me", s.handleMe).Methods(http.MethodGet)

	protected.HandleFunc("/transactions", s.handleCreateTransaction).Methods(http.MethodPost)
	protected.HandleFunc("/transactions", s.handleListTransactions).Methods(http.MethodGet)
	protected.HandleFunc("/transactions/summary", s.handleSummary).Methods(http.MethodGet)
	protected.HandleFunc("/transactions/category-summary", s.handleCategorySummary).Methods(http.MethodGet)
	protected.HandleFunc("/transactions/{id}", s.handleDeleteTransaction).Methods(http.MethodDelete)

	protected.HandleFunc("/budgets", s.handleSetBudget).Methods(http.MethodPost)
	protected.HandleFunc("/budgets/status", s.handleBudgetStatus).Methods(http.MethodGet)
	protected.HandleFunc("/alerts", s.handleListAlerts).Methods(http.MethodGet)

	protected.HandleFunc("/anomalies", s.handleAnomalies).Methods(http.MethodGet)
	protected.HandleFunc("/predict", s.handlePredict).Methods(http.MethodGet)
	protected.HandleFunc("/health-score", s.handleHealthScore).Methods(http.MethodGet)
	protected.HandleFunc("/recommendations", s.handleRecommendations).Methods(http.MethodGet)
	protected.HandleFunc("/analytics", s.handleAnalytics).Methods(http.MethodGet)

	protected.HandleFunc("/insights", s.handleInsights).Methods(http.MethodGet)
	protected.HandleFunc("/strategy", s.handleStrategy).Methods(http.MethodGet)
	protected.HandleFunc("/ai/chat", s.handleChat).Methods(http.MethodPost)

	return r
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
