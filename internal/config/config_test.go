package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, "http://localhost:11434", cfg.LLM.ServerURL)
	assert.Equal(t, 2000, cfg.Ingest.MaxTokens)
	assert.Equal(t, 1, cfg.Ingest.NumParts)
	assert.Equal(t, 2, cfg.Ingest.QuizConcurrency)
	assert.Equal(t, 24*time.Hour, cfg.Redis.ResponseTTL)
	assert.Equal(t, time.Duration(0), cfg.LLM.Timeout)
	assert.Equal(t, 8090, cfg.Server.Port)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("INGEST_MAX_TOKENS", "500")
	t.Setenv("INGEST_NUM_PARTS", "3")
	t.Setenv("LLM_TIMEOUT", "45")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, 500, cfg.Ingest.MaxTokens)
	assert.Equal(t, 3, cfg.Ingest.NumParts)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
}

func TestLoadConfig_MissingAPIKey(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("LLM_API_KEY", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.api_key")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			LLM:    LLMConfig{Provider: ProviderOllama, ServerURL: "http://localhost:11434", Model: "llama3"},
			Ingest: IngestConfig{MaxTokens: 2000},
		}
	}

	t.Run("fills worker defaults", func(t *testing.T) {
		cfg := valid()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, 1, cfg.Ingest.QuizConcurrency)
		assert.Equal(t, 1, cfg.Ingest.NumParts)
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := valid()
		cfg.LLM.Provider = "watson"
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive budget", func(t *testing.T) {
		cfg := valid()
		cfg.Ingest.MaxTokens = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative max chunks", func(t *testing.T) {
		cfg := valid()
		cfg.Ingest.MaxChunks = -1
		assert.Error(t, cfg.Validate())
	})
}

func TestLoadConfig_OpenAIKeepsHostedEndpoint(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "k")
	t.Setenv("LLM_SERVER_URL", "")
	t.Setenv("LLM_MODEL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Empty(t, cfg.LLM.ServerURL)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
}

func TestLoadConfig_OllamaDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("LLM_SERVER_URL", "")
	t.Setenv("LLM_MODEL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultOllamaURL, cfg.LLM.ServerURL)
	assert.Equal(t, "llama3", cfg.LLM.Model)
}

func TestLoadConfig_RecordsConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("ingest:\n  max_tokens: 321\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("LLM_PROVIDER", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "config.yaml"), cfg.File)
	assert.Equal(t, 321, cfg.Ingest.MaxTokens)
}

func TestApplyProviderDefaults(t *testing.T) {
	tests := []struct {
		provider string
		url      string
		model    string
	}{
		{provider: ProviderOllama, url: DefaultOllamaURL, model: "llama3"},
		{provider: ProviderOpenAI, url: "", model: "gpt-4o-mini"},
		{provider: ProviderGemini, url: "", model: "gemini-1.5-flash"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			c := LLMConfig{Provider: tt.provider}
			c.applyProviderDefaults()
			assert.Equal(t, tt.url, c.ServerURL)
			assert.Equal(t, tt.model, c.Model)
		})
	}

	c := LLMConfig{Provider: ProviderOpenAI, ServerURL: "https://proxy.local/v1", Model: "gpt-4o"}
	c.applyProviderDefaults()
	assert.Equal(t, "https://proxy.local/v1", c.ServerURL)
	assert.Equal(t, "gpt-4o", c.Model)
}
