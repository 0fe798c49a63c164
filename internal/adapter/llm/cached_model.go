package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"curriculum-forge/internal/cache"
	"curriculum-forge/internal/domain"
	"curriculum-forge/internal/repair"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedModel serves repeated prompts from a response cache. Concurrent
// misses on the same prompt share one upstream call.
type CachedModel struct {
	next    domain.LanguageModel
	cache   domain.Cache
	model   string
	ttl     time.Duration
	sfGroup singleflight.Group
	logger  *zap.Logger
}

// NewCachedModel wraps next. model namespaces the keys so that switching
// providers or models never returns another model's answers.
func NewCachedModel(next domain.LanguageModel, c domain.Cache, model string, ttl time.Duration, logger *zap.Logger) *CachedModel {
	return &CachedModel{next: next, cache: c, model: model, ttl: ttl, logger: logger}
}

func (m *CachedModel) Invoke(ctx context.Context, prompt string) (string, error) {
	key := cache.GenerateCacheKey("llm", "response", hashPrompt(prompt), m.model)

	cached, err := m.cache.Get(ctx, key)
	switch {
	case err == nil:
		m.logger.Debug("Model response cache hit", zap.String("key", key))
		return cached, nil
	case !errors.Is(err, domain.ErrCacheMiss):
		m.logger.Warn("Model response cache read failed", zap.String("key", key), zap.Error(err))
	}

	res, err, shared := m.sfGroup.Do(key, func() (interface{}, error) {
		out, err := m.next.Invoke(ctx, prompt)
		if err != nil {
			return "", err
		}
		// Only replies that repair into JSON are kept, so blank or broken
		// replies are asked again on the next run.
		if _, parseErr := repair.Parse(out); parseErr != nil {
			m.logger.Debug("Model response not cached", zap.String("key", key), zap.Error(parseErr))
			return out, nil
		}
		if setErr := m.cache.Set(ctx, key, out, m.ttl); setErr != nil {
			m.logger.Warn("Model response cache write failed", zap.String("key", key), zap.Error(setErr))
		}
		return out, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		m.logger.Debug("Model response shared with concurrent caller", zap.String("key", key))
	}
	return res.(string), nil
}

func hashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

var _ domain.LanguageModel = (*CachedModel)(nil)
