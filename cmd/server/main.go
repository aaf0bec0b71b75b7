package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"google.golang.org/api/option"

	"github.com/fintrack/backend/internal/auth"
	"github.com/fintrack/backend/internal/config"
	"github.com/fintrack/backend/internal/llm"
	"github.com/fintrack/backend/internal/server"
	"github.com/fintrack/backend/internal/service"
	"github.com/fintrack/backend/internal/store"
)

func main() {
	// Load .env for local dev; absent in deployed environments.
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	var storeImpl store.Store
	switch cfg.StoreBackend {
	case "firestore":
		opts := []option.ClientOption{}
		if cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create Firestore client")
		}
		defer client.Close()
		storeImpl = store.NewFirestoreStore(client)
		logger.Info().Str("project", cfg.ProjectID).Msg("using Firestore store")
	default:
		storeImpl = store.NewMemoryStore()
		logger.Info().Msg("using in-memory store for local development")
	}

	tokens, err := auth.NewTokenAuth(cfg.JWTSecret)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize token auth")
	}

	financeService := service.NewFinanceService(storeImpl)
	userService := service.NewUserService(storeImpl, tokens)

	advisor := llm.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel)
	var insightsBackend llm.Generator
	if cfg.OpenAIAPIKey != "" {
		insightsBackend = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		// Without an OpenAI key the local model answers insights too.
		insightsBackend = advisor
		logger.Warn().Msg("OPENAI_API_KEY not set, routing insights to the local model")
	}
	insightService := service.NewInsightService(financeService, insightsBackend, advisor)

	srv := server.New(userService, financeService, insightService, tokens, logger)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"User-Agent",
		},
		AllowCredentials: true,
	})
	handler := c.Handler(srv.Router())

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := httpSrv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
