package service

import (
	"context"
	"fmt"
	"strings"

	"curriculum-forge/internal/domain"

	"go.uber.org/zap"
)

const (
	easyDifficultyCeiling = 0.4
	hardDifficultyFloor   = 0.7
)

// WeakTopics returns the topics, in the given order, on which the student has
// attempts and scores below domain.WeakTopicThreshold.
func WeakTopics(profile domain.StudentProfile, topics []string) []string {
	var weak []string
	for _, topic := range topics {
		if profile.Performance[topic].IsWeak() {
			weak = append(weak, topic)
		}
	}
	return weak
}

// ModuleTopics is the module's topics, or its name when it has none.
func ModuleTopics(module domain.Module) []string {
	if len(module.Topics) > 0 {
		return module.Topics
	}
	return []string{module.Name}
}

// Instruction builds the tailoring line appended to quiz prompts.
func Instruction(profile domain.StudentProfile, module domain.Module) string {
	var parts []string

	switch level := profile.Preferences.Difficulty(); {
	case level <= easyDifficultyCeiling:
		parts = append(parts, "Generate easier questions suitable for beginners")
	case level >= hardDifficultyFloor:
		parts = append(parts, "Generate more challenging questions")
	}

	if types := profile.Preferences.PreferredQuestionTypes; len(types) > 0 {
		parts = append(parts, fmt.Sprintf("Prefer these question types: %s", strings.Join(types, ", ")))
	}

	if weak := WeakTopics(profile, ModuleTopics(module)); len(weak) > 0 {
		parts = append(parts, fmt.Sprintf("Focus on these challenging topics: %s", strings.Join(weak, ", ")))
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ". ") + "."
}

// WeakModules keeps the modules having at least one weak topic, in order.
func WeakModules(profile domain.StudentProfile, modules []domain.Module) []domain.Module {
	var weak []domain.Module
	for _, m := range modules {
		if len(WeakTopics(profile, ModuleTopics(m))) > 0 {
			weak = append(weak, m)
		}
	}
	return weak
}

type adaptiveQuizService struct {
	quizzes *QuizExtractor
	logger  *zap.Logger
}

// NewAdaptiveQuizService creates a new instance of adaptiveQuizService.
func NewAdaptiveQuizService(quizzes *QuizExtractor, logger *zap.Logger) domain.AdaptiveQuizService {
	return &adaptiveQuizService{quizzes: quizzes, logger: logger}
}

// Generate runs quiz extraction steered by the student's profile.
func (s *adaptiveQuizService) Generate(ctx context.Context, profile domain.StudentProfile, module domain.Module) domain.ModuleQuiz {
	instruction := Instruction(profile, module)
	s.logger.Info("Generating adaptive quiz",
		zap.String("student_id", profile.StudentID),
		zap.String("module", module.Name),
		zap.String("instruction", instruction))

	extraction := s.quizzes.Extract(ctx, module, instruction)
	return domain.ModuleQuiz{
		ModuleName: module.Name,
		Questions:  extraction.Questions,
		Report:     extraction.Report,
	}
}

// GenerateForWeakModules quizzes only the modules the student is weak on.
func (s *adaptiveQuizService) GenerateForWeakModules(ctx context.Context, profile domain.StudentProfile, modules []domain.Module) []domain.ModuleQuiz {
	weak := WeakModules(profile, modules)
	s.logger.Info("Selected weak modules",
		zap.String("student_id", profile.StudentID),
		zap.Int("modules", len(modules)),
		zap.Int("weak_modules", len(weak)))

	quizzes := make([]domain.ModuleQuiz, 0, len(weak))
	for _, m := range weak {
		quizzes = append(quizzes, s.Generate(ctx, profile, m))
	}
	return quizzes
}
