// Package llm builds the language model the pipeline talks to.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"curriculum-forge/internal/config"
	"curriculum-forge/internal/domain"

	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// New returns the configured provider, wrapped in a CachedModel when
// responseCache is set and ttl is positive. The returned close function
// releases provider resources.
func New(ctx context.Context, cfg config.LLMConfig, responseCache domain.Cache, ttl time.Duration, logger *zap.Logger) (domain.LanguageModel, func() error, error) {
	var (
		model   domain.LanguageModel
		closeFn = func() error { return nil }
	)

	switch cfg.Provider {
	case config.ProviderOllama:
		client, err := ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(&http.Client{}),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		model = NewLangchainModel(client, config.ProviderOllama+"/"+cfg.Model, cfg.Temperature, cfg.Timeout, logger)
	case config.ProviderOpenAI:
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		}
		if cfg.ServerURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
		}
		client, err := openai.New(opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		model = NewLangchainModel(client, config.ProviderOpenAI+"/"+cfg.Model, cfg.Temperature, cfg.Timeout, logger)
	case config.ProviderGemini:
		gemini, err := NewGeminiModel(ctx, cfg.APIKey, cfg.Model, cfg.Temperature, cfg.Timeout, logger)
		if err != nil {
			return nil, nil, err
		}
		model = gemini
		closeFn = gemini.Close
	default:
		return nil, nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}

	logger.Info("Language model ready",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.Duration("timeout", cfg.Timeout))

	if responseCache != nil && ttl > 0 {
		model = NewCachedModel(model, responseCache, cfg.Provider+"/"+cfg.Model, ttl, logger)
		logger.Info("Model response cache enabled", zap.Duration("ttl", ttl))
	}
	return model, closeFn, nil
}
