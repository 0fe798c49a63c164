package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	Ingest IngestConfig
	Redis  RedisConfig
	Logger LoggerConfig
	// File is the absolute path of the config file read, empty when none was found.
	File string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// BodyLimit caps upload size in bytes.
	BodyLimit int
}

// LLMConfig selects and tunes the language model provider.
type LLMConfig struct {
	Provider    string
	ServerURL   string
	Model       string
	APIKey      string
	Temperature float64
	// Timeout bounds a single model call; zero means no timeout.
	Timeout time.Duration
}

type IngestConfig struct {
	MaxTokens       int
	MaxChunks       int
	NumParts        int
	QuizConcurrency int
	TempDir         string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	// ResponseTTL is how long cached model responses live; zero disables the cache.
	ResponseTTL time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
	// Output is "stdout" or "stderr".
	Output string
}

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultOllamaURL = "http://localhost:11434"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 300)
	v.SetDefault("server.body_limit", 50*1024*1024)

	v.SetDefault("llm.provider", ProviderOllama)
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.timeout", 0)

	v.SetDefault("ingest.max_tokens", 2000)
	v.SetDefault("ingest.max_chunks", 0)
	v.SetDefault("ingest.num_parts", 1)
	v.SetDefault("ingest.quiz_concurrency", 2)

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.response_ttl", 24*60*60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.output", "stdout")
}

// LoadConfig reads .env (when present), then config.yaml (when present), then
// environment variables such as LLM_PROVIDER or INGEST_MAX_TOKENS.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := fromViper(v)
	if configFile := v.ConfigFileUsed(); configFile != "" {
		cfg.File, _ = filepath.Abs(configFile)
	}

	// Provider keys are commonly exported without the llm_ prefix.
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case ProviderOpenAI:
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case ProviderGemini:
			cfg.LLM.APIKey = os.Getenv("GOOGLE_API_KEY")
		}
	}

	cfg.LLM.applyProviderDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultModels is the model used when llm.model is unset.
var defaultModels = map[string]string{
	ProviderOllama: "llama3",
	ProviderOpenAI: "gpt-4o-mini",
	ProviderGemini: "gemini-1.5-flash",
}

// applyProviderDefaults fills the server URL and model for the selected
// provider. Only ollama gets a default URL; an empty URL keeps the hosted
// endpoint of the other providers.
func (c *LLMConfig) applyProviderDefaults() {
	if c.Provider == ProviderOllama && c.ServerURL == "" {
		c.ServerURL = DefaultOllamaURL
	}
	if c.Model == "" {
		c.Model = defaultModels[c.Provider]
	}
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: v.GetDuration("server.write_timeout") * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			ServerURL:   v.GetString("llm.server_url"),
			Model:       v.GetString("llm.model"),
			APIKey:      v.GetString("llm.api_key"),
			Temperature: v.GetFloat64("llm.temperature"),
			Timeout:     v.GetDuration("llm.timeout") * time.Second,
		},
		Ingest: IngestConfig{
			MaxTokens:       v.GetInt("ingest.max_tokens"),
			MaxChunks:       v.GetInt("ingest.max_chunks"),
			NumParts:        v.GetInt("ingest.num_parts"),
			QuizConcurrency: v.GetInt("ingest.quiz_concurrency"),
			TempDir:         v.GetString("ingest.temp_dir"),
		},
		Redis: RedisConfig{
			Address:     v.GetString("redis.address"),
			Password:    v.GetString("redis.password"),
			DB:          v.GetInt("redis.db"),
			ResponseTTL: v.GetDuration("redis.response_ttl") * time.Second,
		},
		Logger: LoggerConfig{
			Level:  v.GetString("logger.level"),
			Env:    v.GetString("logger.env"),
			Output: v.GetString("logger.output"),
		},
	}
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOllama:
		if c.LLM.ServerURL == "" {
			return fmt.Errorf("llm.server_url is required for provider %q", c.LLM.Provider)
		}
	case ProviderOpenAI, ProviderGemini:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("llm.api_key is required for provider %q", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("unknown llm.provider %q", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model is required")
	}
	if c.Ingest.MaxTokens <= 0 {
		return fmt.Errorf("ingest.max_tokens must be positive, got %d", c.Ingest.MaxTokens)
	}
	if c.Ingest.MaxChunks < 0 {
		return fmt.Errorf("ingest.max_chunks must not be negative, got %d", c.Ingest.MaxChunks)
	}
	if c.Ingest.QuizConcurrency <= 0 {
		c.Ingest.QuizConcurrency = 1
	}
	if c.Ingest.NumParts <= 0 {
		c.Ingest.NumParts = 1
	}
	return nil
}
