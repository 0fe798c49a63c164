package domain

import (
	"context"
	"io"
)

// IngestionService turns documents into modules and modules into quizzes.
type IngestionService interface {
	// Process parses the document at path and extracts modules.
	Process(ctx context.Context, path string, numParts int) (*IngestionResult, error)

	// ProcessUpload buffers r to a scoped temporary file named after filename and processes it.
	ProcessUpload(ctx context.Context, filename string, r io.Reader, numParts int) (*IngestionResult, error)

	// ProcessText runs extraction over already extracted document text.
	ProcessText(ctx context.Context, text string, numParts int) (*IngestionResult, error)

	// GenerateQuizzes runs quiz generation for every module, keeping input order.
	GenerateQuizzes(ctx context.Context, modules []Module, extraInstruction string) []ModuleQuiz
}

// AdaptiveQuizService tailors quizzes to a student's history.
type AdaptiveQuizService interface {
	Generate(ctx context.Context, profile StudentProfile, module Module) ModuleQuiz
	GenerateForWeakModules(ctx context.Context, profile StudentProfile, modules []Module) []ModuleQuiz
}
