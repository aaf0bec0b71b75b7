// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all runtime configuration for the server.
type Config struct {
	// HTTP server
	Port string

	// Store backend: "firestore" or "memory"
	StoreBackend string
	// Google Cloud project for the Firestore backend
	ProjectID string
	// Optional service account credentials file for local Firestore access
	CredentialsFile string

	// Shared secret for signing session tokens
	JWTSecret string

	// LLM backends
	OllamaURL    string
	OllamaModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	// Allowed CORS origins, comma separated
	CORSOrigins []string
}

// Load reads configuration from the environment with local-dev defaults.
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "5000"),
		StoreBackend:    getEnv("STORE_BACKEND", "memory"),
		ProjectID:       getEnv("GOOGLE_CLOUD_PROJECT", ""),
		CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		OllamaURL:       getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:     getEnv("OLLAMA_MODEL", "llama3"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}
}

// Validate checks that required settings are present for the selected
// backends.
func (c *Config) Validate() error {
	var errs []string

	if c.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}
	if c.StoreBackend != "memory" && c.StoreBackend != "firestore" {
		errs = append(errs, fmt.Sprintf("STORE_BACKEND must be memory or firestore, got %q", c.StoreBackend))
	}
	if c.StoreBackend == "firestore" && c.ProjectID == "" {
		errs = append(errs, "GOOGLE_CLOUD_PROJECT is required for the firestore backend")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
