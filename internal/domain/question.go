package domain

import "strings"

const (
	MinDifficulty     = 1.0
	MaxDifficulty     = 5.0
	DefaultDifficulty = 3.0
)

// Question is one generated quiz item.
type Question struct {
	ID         string   `json:"id"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Answer     string   `json:"answer"`
	Difficulty float64  `json:"difficulty"`
	Topics     []string `json:"topics"`
}

// Validate checks the fields every emitted question must carry.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return NewInvalidInputError("question text is required")
	}
	if len(q.Options) == 0 {
		return NewInvalidInputError("at least one option is required")
	}
	if strings.TrimSpace(q.Answer) == "" {
		return NewInvalidInputError("answer is required")
	}
	return nil
}

// ClampDifficulty keeps a difficulty inside [MinDifficulty, MaxDifficulty].
func ClampDifficulty(d float64) float64 {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}

// DedupQuestions keeps the first question for each lower-cased, trimmed text.
func DedupQuestions(questions []Question) []Question {
	seen := make(map[string]struct{}, len(questions))
	unique := make([]Question, 0, len(questions))
	for _, q := range questions {
		key := strings.ToLower(strings.TrimSpace(q.Question))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, q)
	}
	return unique
}

// ModuleQuiz groups the questions generated for one module.
type ModuleQuiz struct {
	ModuleName string     `json:"module_name"`
	Questions  []Question `json:"questions"`
	Report     Report     `json:"report"`
}
