package service

import (
	"context"

	"curriculum-forge/internal/domain"

	"go.uber.org/zap"
)

// ModuleExtraction is the merged result of one extraction call.
type ModuleExtraction struct {
	Modules []domain.Module
	Report  domain.Report
}

// ModuleExtractor turns chunks into modules, one model call per chunk.
type ModuleExtractor struct {
	model  domain.LanguageModel
	logger *zap.Logger
}

// NewModuleExtractor creates a new ModuleExtractor instance
func NewModuleExtractor(model domain.LanguageModel, logger *zap.Logger) *ModuleExtractor {
	return &ModuleExtractor{model: model, logger: logger}
}

// Extract processes chunks in order. A chunk whose call or parse fails adds
// nothing and is recorded in the report; the remaining chunks still run.
func (e *ModuleExtractor) Extract(ctx context.Context, chunks []string) ModuleExtraction {
	var (
		collected []domain.Module
		report    domain.Report
	)

	for i, chunk := range chunks {
		index := i + 1
		items, outcome := roundTrip(ctx, e.model, buildModulePrompt(chunk, index, len(chunks)), index)

		accepted := 0
		for _, item := range items {
			mod, ok := moduleFromItem(item)
			if !ok {
				e.logger.Debug("Dropping module without name or content", zap.Int("chunk", index))
				continue
			}
			collected = append(collected, mod)
			accepted++
		}

		outcome = settle(outcome, accepted)
		report.Add(outcome)
		logOutcome(e.logger, "module", len(chunks), outcome)
	}

	merged := domain.MergeModules(collected)
	e.logger.Info("Module extraction finished",
		zap.Int("chunks", len(chunks)),
		zap.Int("failed_chunks", report.Failed()),
		zap.Int("raw_modules", len(collected)),
		zap.Int("modules", len(merged)))

	return ModuleExtraction{Modules: merged, Report: report}
}

func moduleFromItem(item map[string]any) (domain.Module, bool) {
	mod := domain.Module{
		Name:          stringField(item["name"]),
		Summary:       stringField(item["summary"]),
		Content:       stringField(item["content"]),
		Prerequisites: asStringSlice(item["prerequisites"]),
	}
	if mod.Prerequisites == nil {
		mod.Prerequisites = []string{}
	}
	if err := mod.Validate(); err != nil {
		return domain.Module{}, false
	}
	return mod, true
}
