package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"curriculum-forge/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// LangchainModel adapts a langchaingo model (ollama, openai) to domain.LanguageModel.
type LangchainModel struct {
	llm         llms.Model
	name        string
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

// NewLangchainModel creates a new LangchainModel. A zero timeout leaves the
// caller's context as the only deadline.
func NewLangchainModel(model llms.Model, name string, temperature float64, timeout time.Duration, logger *zap.Logger) *LangchainModel {
	return &LangchainModel{
		llm:         model,
		name:        name,
		temperature: temperature,
		timeout:     timeout,
		logger:      logger,
	}
}

// Invoke sends a single prompt and returns the reply with any <think> block removed.
func (m *LangchainModel) Invoke(ctx context.Context, prompt string) (string, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := llms.GenerateFromSinglePrompt(ctx, m.llm, prompt, llms.WithTemperature(m.temperature))
	if err != nil {
		m.logger.Error("Model call failed",
			zap.String("model", m.name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", fmt.Errorf("%s generate: %w", m.name, err)
	}

	m.logger.Debug("Model call finished",
		zap.String("model", m.name),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("response_chars", len(resp)),
		zap.Duration("elapsed", time.Since(start)))
	return stripThinking(resp), nil
}

// stripThinking drops a reasoning model's <think>...</think> preamble.
func stripThinking(resp string) string {
	cleaned := strings.TrimSpace(resp)
	thinkStart := strings.Index(cleaned, "<think>")
	if thinkStart == -1 {
		return cleaned
	}
	thinkEnd := strings.Index(cleaned, "</think>")
	if thinkEnd == -1 || thinkEnd < thinkStart {
		return cleaned
	}
	return strings.TrimSpace(cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):])
}

var _ domain.LanguageModel = (*LangchainModel)(nil)
