package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"curriculum-forge/internal/domain"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiModel calls Google's Gemini API through generative-ai-go.
type GeminiModel struct {
	client      *genai.Client
	modelName   string
	temperature float32
	timeout     time.Duration
	logger      *zap.Logger
}

func NewGeminiModel(ctx context.Context, apiKey, modelName string, temperature float64, timeout time.Duration, logger *zap.Logger) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	logger.Info("Initializing Gemini model", zap.String("model", modelName))
	return &GeminiModel{
		client:      client,
		modelName:   modelName,
		temperature: float32(temperature),
		timeout:     timeout,
		logger:      logger,
	}, nil
}

func (g *GeminiModel) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Invoke concatenates the text parts of the first candidate.
func (g *GeminiModel) Invoke(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	m := g.client.GenerativeModel(g.modelName)
	m.SetTemperature(g.temperature)

	start := time.Now()
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		g.logger.Error("Gemini call failed", zap.String("model", g.modelName), zap.Error(err))
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		g.logger.Warn("Gemini returned no candidates", zap.String("model", g.modelName))
		return "", nil
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	g.logger.Debug("Gemini call finished",
		zap.String("model", g.modelName),
		zap.Int("response_chars", b.Len()),
		zap.Duration("elapsed", time.Since(start)))
	return b.String(), nil
}

var _ domain.LanguageModel = (*GeminiModel)(nil)
