package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, "http://localhost:11434", cfg.OllamaURL)
	assert.Equal(t, "llama3", cfg.OllamaModel)
	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAIModel)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_BACKEND", "firestore")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "my-project")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "firestore", cfg.StoreBackend)
	assert.Equal(t, "my-project", cfg.ProjectID)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.CORSOrigins)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := &Config{StoreBackend: "memory"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg = &Config{JWTSecret: "s", StoreBackend: "postgres"}
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_BACKEND")

	cfg = &Config{JWTSecret: "s", StoreBackend: "firestore"}
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_CLOUD_PROJECT")

	cfg = &Config{JWTSecret: "s", StoreBackend: "firestore", ProjectID: "p"}
	assert.NoError(t, cfg.Validate())
}
