package service

import (
	"context"
	"io"
	"strings"

	"github.com/stretchr/testify/mock"
)

// --- MockLanguageModel ---
type MockLanguageModel struct {
	mock.Mock
}

func (m *MockLanguageModel) Invoke(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// promptContains matches prompts holding the given fragment.
func promptContains(fragment string) interface{} {
	return mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, fragment)
	})
}

// --- mockParser ---
type mockParser struct {
	ParseFunc       func(ctx context.Context, path string) (string, error)
	ParseUploadFunc func(ctx context.Context, filename string, r io.Reader) (string, error)
}

func (m *mockParser) Parse(ctx context.Context, path string) (string, error) {
	return m.ParseFunc(ctx, path)
}

func (m *mockParser) ParseUpload(ctx context.Context, filename string, r io.Reader) (string, error) {
	return m.ParseUploadFunc(ctx, filename, r)
}
