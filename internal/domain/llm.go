package domain

import "context"

// LanguageModel is the single model primitive the pipeline depends on.
// Output carries no schema guarantee.
type LanguageModel interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}
