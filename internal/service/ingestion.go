package service

import (
	"context"
	"io"
	"strings"
	"unicode/utf8"

	"curriculum-forge/internal/chunker"
	"curriculum-forge/internal/config"
	"curriculum-forge/internal/domain"
	"curriculum-forge/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DocumentParser extracts normalized text from a document.
type DocumentParser interface {
	Parse(ctx context.Context, path string) (string, error)
	ParseUpload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// ingestionService implements the domain.IngestionService interface.
type ingestionService struct {
	parser  DocumentParser
	chunker *chunker.Chunker
	modules *ModuleExtractor
	quizzes *QuizExtractor
	cfg     config.IngestConfig
	logger  *zap.Logger
}

// NewIngestionService creates a new instance of ingestionService.
func NewIngestionService(
	parser DocumentParser,
	c *chunker.Chunker,
	modules *ModuleExtractor,
	quizzes *QuizExtractor,
	cfg config.IngestConfig,
	logger *zap.Logger,
) domain.IngestionService {
	return &ingestionService{
		parser:  parser,
		chunker: c,
		modules: modules,
		quizzes: quizzes,
		cfg:     cfg,
		logger:  logger,
	}
}

// Process parses the document at path, then extracts modules. Parse errors are
// returned before any model call.
func (s *ingestionService) Process(ctx context.Context, path string, numParts int) (*domain.IngestionResult, error) {
	text, err := s.parser.Parse(ctx, path)
	if err != nil {
		s.logger.Error("Failed to parse document", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	return s.ProcessText(ctx, text, numParts)
}

// ProcessUpload is Process for a streamed upload.
func (s *ingestionService) ProcessUpload(ctx context.Context, filename string, r io.Reader, numParts int) (*domain.IngestionResult, error) {
	text, err := s.parser.ParseUpload(ctx, filename, r)
	if err != nil {
		s.logger.Error("Failed to parse upload", zap.String("filename", filename), zap.Error(err))
		return nil, err
	}
	return s.ProcessText(ctx, text, numParts)
}

// ProcessText chunks and extracts text, part by part in order. Once the text
// is non-empty it always returns a result; chunk failures live in the reports.
func (s *ingestionService) ProcessText(ctx context.Context, text string, numParts int) (*domain.IngestionResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewEmptyDocumentError()
	}

	result := &domain.IngestionResult{RunID: util.NewULID()}
	logger := s.logger.With(zap.String("run_id", result.RunID))

	parts := []string{text}
	if numParts > 1 {
		parts = SplitDocument(text, numParts)
	}
	logger.Info("Starting ingestion", zap.Int("chars", utf8.RuneCountInString(text)), zap.Int("parts", len(parts)))

	var all []domain.Module
	for i, part := range parts {
		chunks := s.chunker.Chunk(part, s.cfg.MaxChunks)
		extraction := s.modules.Extract(ctx, chunks)
		all = append(all, extraction.Modules...)
		result.Parts = append(result.Parts, domain.PartReport{
			Index:  i + 1,
			Chars:  utf8.RuneCountInString(part),
			Chunks: len(chunks),
			Report: extraction.Report,
		})
		logger.Info("Part processed",
			zap.Int("part", i+1),
			zap.Int("chunks", len(chunks)),
			zap.Int("modules", len(extraction.Modules)))
	}

	result.Modules = domain.MergeModules(all)
	logger.Info("Ingestion finished",
		zap.Int("modules", len(result.Modules)),
		zap.Int("failed_chunks", result.FailedChunks()))
	return result, nil
}

// SplitDocument cuts text into n contiguous parts of len/n runes each; the
// last part takes the remainder. Cuts ignore word and paragraph boundaries.
func SplitDocument(text string, n int) []string {
	runes := []rune(text)
	if n <= 1 || len(runes) < n {
		return []string{text}
	}

	size := len(runes) / n
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		start := i * size
		end := start + size
		if i == n-1 {
			end = len(runes)
		}
		parts = append(parts, string(runes[start:end]))
	}
	return parts
}

// GenerateQuizzes runs the quiz extractor for each module with at most
// cfg.QuizConcurrency modules in flight. Results keep the input order.
func (s *ingestionService) GenerateQuizzes(ctx context.Context, modules []domain.Module, extraInstruction string) []domain.ModuleQuiz {
	quizzes := make([]domain.ModuleQuiz, len(modules))

	limit := s.cfg.QuizConcurrency
	if limit <= 0 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, m := range modules {
		g.Go(func() error {
			extraction := s.quizzes.Extract(ctx, m, extraInstruction)
			quizzes[i] = domain.ModuleQuiz{
				ModuleName: m.Name,
				Questions:  extraction.Questions,
				Report:     extraction.Report,
			}
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Info("Quiz generation completed", zap.Int("modules", len(modules)))
	return quizzes
}
