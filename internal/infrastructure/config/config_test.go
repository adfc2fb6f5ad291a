package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default configuration", func(t *testing.T) {
		cfg, err := Load()

		assert.NoError(t, err)
		assert.NotNil(t, cfg)

		// Check server defaults
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.Mode)

		// Check database defaults
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "fakenews", cfg.Database.User)
		assert.Equal(t, "fakenews", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)

		// Check redis defaults
		assert.False(t, cfg.Redis.Enabled)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())

		// Check log defaults
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)

		// Check upstream defaults
		assert.Equal(t, ClassifierHuggingFace, cfg.Classifier.Backend)
		assert.Equal(t, "hamzab/roberta-fake-news-classification", cfg.Classifier.Model)
		assert.Equal(t, HuggingFaceBaseURL, cfg.Classifier.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.Classifier.Timeout)
		assert.Equal(t, ExplainerGroq, cfg.Explainer.Provider)
		assert.Equal(t, "llama-3.3-70b-versatile", cfg.Explainer.Model)
		assert.Equal(t, 200, cfg.Explainer.MaxTokens)
		assert.InDelta(t, 0.7, cfg.Explainer.Temperature, 0.0001)

		assert.Equal(t, AuthModeJWT, cfg.Auth.Mode)
		assert.Equal(t, 10*time.Second, cfg.Persistence.WriteTimeout)
	})

	t.Run("reads from environment variables", func(t *testing.T) {
		t.Setenv("FAKENEWS_SERVER_PORT", "9090")
		t.Setenv("FAKENEWS_DATABASE_HOST", "db.example.com")
		t.Setenv("FAKENEWS_LOG_LEVEL", "debug")
		t.Setenv("FAKENEWS_CLASSIFIER_TIMEOUT", "5s")

		cfg, err := Load()

		assert.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "db.example.com", cfg.Database.Host)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 5*time.Second, cfg.Classifier.Timeout)
	})

	t.Run("reads well-known deployment variables", func(t *testing.T) {
		t.Setenv("HUGGING_FACE_API_KEY", "hf-key")
		t.Setenv("GROQ_API_KEY", "groq-key")
		t.Setenv("SUPABASE_URL", "https://project.supabase.co")
		t.Setenv("SUPABASE_ANON_KEY", "anon")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "hf-key", cfg.Classifier.APIKey)
		assert.Equal(t, "groq-key", cfg.Explainer.APIKey)
		assert.Equal(t, "https://project.supabase.co", cfg.Auth.SupabaseURL)
		assert.Equal(t, "anon", cfg.Auth.SupabaseAnonKey)
	})

	t.Run("prefixed variable wins over well-known name", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "groq-key")
		t.Setenv("FAKENEWS_EXPLAINER_API_KEY", "explicit")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "explicit", cfg.Explainer.APIKey)
	})

	t.Run("gemini provider takes the gemini key and model", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "groq-key")
		t.Setenv("GEMINI_API_KEY", "gemini-key")
		t.Setenv("FAKENEWS_EXPLAINER_PROVIDER", "gemini")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "gemini-key", cfg.Explainer.APIKey)
		assert.Equal(t, GeminiModel, cfg.Explainer.Model)
		assert.Empty(t, cfg.Explainer.BaseURL)
		assert.Equal(t, "GEMINI_API_KEY", cfg.Explainer.APIKeyName())
	})

	t.Run("groq provider ignores the gemini key", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "")
		t.Setenv("GEMINI_API_KEY", "gemini-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Empty(t, cfg.Explainer.APIKey)
		assert.Equal(t, GroqBaseURL, cfg.Explainer.BaseURL)
		assert.Equal(t, GroqModel, cfg.Explainer.Model)
	})

	t.Run("llm backend defaults to groq", func(t *testing.T) {
		t.Setenv("HUGGING_FACE_API_KEY", "hf-key")
		t.Setenv("GROQ_API_KEY", "groq-key")
		t.Setenv("FAKENEWS_CLASSIFIER_BACKEND", "llm")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, GroqBaseURL, cfg.Classifier.BaseURL)
		assert.Equal(t, GroqModel, cfg.Classifier.Model)
		assert.Equal(t, "groq-key", cfg.Classifier.APIKey)
		assert.Equal(t, "GROQ_API_KEY", cfg.Classifier.APIKeyName())
	})

	t.Run("explicit model survives backend defaults", func(t *testing.T) {
		t.Setenv("FAKENEWS_CLASSIFIER_BACKEND", "llm")
		t.Setenv("FAKENEWS_CLASSIFIER_MODEL", "mixtral-8x7b")
		t.Setenv("FAKENEWS_CLASSIFIER_API_KEY", "explicit")
		t.Setenv("GROQ_API_KEY", "groq-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "mixtral-8x7b", cfg.Classifier.Model)
		assert.Equal(t, "explicit", cfg.Classifier.APIKey)
	})

	t.Run("rejects unknown classifier backend", func(t *testing.T) {
		t.Setenv("FAKENEWS_CLASSIFIER_BACKEND", "oracle")

		_, err := Load()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "classifier.backend")
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("reads yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := []byte(`
server:
  port: 7070
classifier:
  backend: llm
  base_url: https://api.groq.com/openai/v1
  model: llama-3.3-70b-versatile
auth:
  mode: gotrue
`)
		require.NoError(t, os.WriteFile(path, content, 0o600))

		cfg, err := LoadFile(path)

		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, ClassifierLLM, cfg.Classifier.Backend)
		assert.Equal(t, AuthModeGoTrue, cfg.Auth.Mode)
	})

	t.Run("explicit missing file is an error", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Error(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("url takes precedence", func(t *testing.T) {
		cfg := DatabaseConfig{URL: "postgres://u:p@h:5432/db", Host: "ignored"}
		assert.Equal(t, "postgres://u:p@h:5432/db", cfg.DSN())
	})

	t.Run("builds from fields", func(t *testing.T) {
		cfg := DatabaseConfig{Host: "h", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
		assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", cfg.DSN())
	})
}

func TestSetDefaults(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify sensible defaults
	assert.Greater(t, cfg.Server.Port, 0)
	assert.Greater(t, cfg.Database.Port, 0)
	assert.Greater(t, cfg.Redis.Port, 0)
	assert.Greater(t, cfg.Explainer.Timeout, time.Duration(0))
}
