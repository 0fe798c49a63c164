package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"curriculum-forge/internal/chunker"
	"curriculum-forge/internal/domain"

	"go.uber.org/zap"
)

// QuizExtraction is the deduplicated result for one module.
type QuizExtraction struct {
	Questions []domain.Question
	Report    domain.Report
}

// QuizExtractor generates questions for a module, re-chunking oversized content.
type QuizExtractor struct {
	model   domain.LanguageModel
	chunker *chunker.Chunker
	logger  *zap.Logger
}

// NewQuizExtractor creates a new QuizExtractor instance
func NewQuizExtractor(model domain.LanguageModel, c *chunker.Chunker, logger *zap.Logger) *QuizExtractor {
	if c == nil {
		c = chunker.New(chunker.DefaultMaxTokens)
	}
	return &QuizExtractor{model: model, chunker: c, logger: logger}
}

// Extract asks for questions over each content part in order and keeps the
// first question for every normalized text. Failed parts add nothing.
func (e *QuizExtractor) Extract(ctx context.Context, module domain.Module, extraInstruction string) QuizExtraction {
	parts := e.chunker.Chunk(module.Content, 0)

	var (
		collected []domain.Question
		report    domain.Report
	)
	for i, part := range parts {
		index := i + 1
		prompt := buildQuizPrompt(module, part, index, len(parts), extraInstruction)
		items, outcome := roundTrip(ctx, e.model, prompt, index)

		accepted := 0
		for j, item := range items {
			q, ok := questionFromItem(item, module.Name, fmt.Sprintf("q%d_%d", index, j+1))
			if !ok {
				continue
			}
			collected = append(collected, q)
			accepted++
		}

		outcome = settle(outcome, accepted)
		report.Add(outcome)
		logOutcome(e.logger, "quiz", len(parts), outcome, zap.String("module", module.Name))
	}

	questions := domain.DedupQuestions(collected)
	e.logger.Info("Quiz generation finished",
		zap.String("module", module.Name),
		zap.Int("parts", len(parts)),
		zap.Int("failed_parts", report.Failed()),
		zap.Int("questions", len(questions)))

	return QuizExtraction{Questions: questions, Report: report}
}

func questionFromItem(item map[string]any, moduleName, id string) (domain.Question, bool) {
	q := domain.Question{
		ID:         id,
		Question:   stringField(item["question"]),
		Options:    asStringSlice(item["options"]),
		Difficulty: domain.DefaultDifficulty,
		Topics:     asStringSlice(item["topics"]),
	}
	q.Answer = resolveAnswer(asString(item["answer"]), q.Options)
	if d, ok := asFloat(item["difficulty"]); ok {
		q.Difficulty = domain.ClampDifficulty(d)
	}
	if len(q.Topics) == 0 {
		q.Topics = []string{moduleName}
	}
	if err := q.Validate(); err != nil {
		return domain.Question{}, false
	}
	return q, true
}

var (
	answerLabelRe   = regexp.MustCompile(`^\(?([A-Za-z]|\d{1,2})[\).:]?$`)
	labeledAnswerRe = regexp.MustCompile(`^\(?([A-Za-z])[\).:]\s+(.+)$`)
)

// resolveAnswer rewrites an option letter ("B", "b)") or 1-based index into
// the option text. Answers that already name an option, or that do not
// resolve, are returned unchanged.
func resolveAnswer(answer string, options []string) string {
	if answer == "" || len(options) == 0 {
		return answer
	}
	for _, opt := range options {
		if strings.EqualFold(opt, answer) {
			return opt
		}
	}

	if m := labeledAnswerRe.FindStringSubmatch(answer); m != nil {
		for _, opt := range options {
			if strings.EqualFold(opt, strings.TrimSpace(m[2])) {
				return opt
			}
		}
	}

	m := answerLabelRe.FindStringSubmatch(answer)
	if m == nil {
		return answer
	}
	label := m[1]
	var idx int
	if n, err := strconv.Atoi(label); err == nil {
		idx = n - 1
	} else {
		idx = int(strings.ToLower(label)[0] - 'a')
	}
	if idx >= 0 && idx < len(options) {
		return options[idx]
	}
	return answer
}
