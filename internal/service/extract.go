package service

import (
	"context"
	"math"
	"strconv"
	"strings"

	"curriculum-forge/internal/domain"
	"curriculum-forge/internal/repair"

	"go.uber.org/zap"
)

// roundTrip sends one prompt and parses the reply. It never returns an error:
// failures are described by the outcome so the caller can move on.
func roundTrip(ctx context.Context, model domain.LanguageModel, prompt string, index int) ([]map[string]any, domain.ChunkOutcome) {
	outcome := domain.ChunkOutcome{Index: index}

	if err := ctx.Err(); err != nil {
		outcome.Status = domain.OutcomeGenerationFailed
		outcome.Err = domain.NewGenerationFailureError(index, err)
		return nil, outcome
	}

	raw, err := model.Invoke(ctx, prompt)
	if err != nil {
		outcome.Status = domain.OutcomeGenerationFailed
		outcome.Err = domain.NewGenerationFailureError(index, err)
		return nil, outcome
	}
	if strings.TrimSpace(raw) == "" {
		outcome.Status = domain.OutcomeEmpty
		return nil, outcome
	}

	items, err := repair.Parse(raw)
	if err != nil {
		outcome.Status = domain.OutcomeRepairFailed
		outcome.Err = err
		return nil, outcome
	}
	outcome.Status = domain.OutcomeOK
	return items, outcome
}

// settle records how many items a chunk contributed.
func settle(outcome domain.ChunkOutcome, accepted int) domain.ChunkOutcome {
	outcome.Items = accepted
	if outcome.Status == domain.OutcomeOK && accepted == 0 {
		outcome.Status = domain.OutcomeEmpty
	}
	return outcome
}

func logOutcome(logger *zap.Logger, kind string, total int, outcome domain.ChunkOutcome, fields ...zap.Field) {
	fields = append(fields,
		zap.String("kind", kind),
		zap.Int("chunk", outcome.Index),
		zap.Int("total_chunks", total),
		zap.String("status", string(outcome.Status)),
		zap.Int("items", outcome.Items),
	)
	switch outcome.Status {
	case domain.OutcomeGenerationFailed, domain.OutcomeRepairFailed:
		logger.Warn("Chunk contributed nothing", append(fields, zap.Error(outcome.Err))...)
	case domain.OutcomeEmpty:
		logger.Info("Chunk produced no records", fields...)
	default:
		logger.Debug("Chunk processed", fields...)
	}
}

// stringField returns the trimmed value only when it is a JSON string.
func stringField(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// asString also renders numbers and booleans.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// asStringSlice accepts a list or a single string and keeps non-empty entries.
func asStringSlice(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, el := range t {
			if s := asString(el); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
	}
	return nil
}

func asFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
