package domain

// WeakTopicThreshold is the accuracy below which a topic counts as weak.
const WeakTopicThreshold = 0.6

// DefaultDifficultyLevel applies when a profile carries no preference.
const DefaultDifficultyLevel = 0.5

// TopicPerformance holds a student's history on one topic.
type TopicPerformance struct {
	TotalAttempts   int    `json:"total_attempts"`
	CorrectAttempts int    `json:"correct_attempts"`
	LastAttempted   string `json:"last_attempted,omitempty"`
}

// Accuracy returns correct/total, and false when there is no attempt.
func (p TopicPerformance) Accuracy() (float64, bool) {
	if p.TotalAttempts <= 0 {
		return 0, false
	}
	return float64(p.CorrectAttempts) / float64(p.TotalAttempts), true
}

// IsWeak reports whether the topic has attempts and falls below WeakTopicThreshold.
func (p TopicPerformance) IsWeak() bool {
	acc, ok := p.Accuracy()
	return ok && acc < WeakTopicThreshold
}

// Preferences steer the generated quiz.
type Preferences struct {
	// DifficultyLevel is on a 0-1 scale; nil means DefaultDifficultyLevel.
	DifficultyLevel        *float64 `json:"difficulty_level,omitempty"`
	PreferredQuestionTypes []string `json:"preferred_question_types,omitempty"`
}

func (p Preferences) Difficulty() float64 {
	if p.DifficultyLevel == nil {
		return DefaultDifficultyLevel
	}
	return *p.DifficultyLevel
}

// StudentProfile is the per-student input of adaptive quiz generation.
type StudentProfile struct {
	StudentID   string                      `json:"student_id"`
	Performance map[string]TopicPerformance `json:"performance"`
	Preferences Preferences                 `json:"preferences"`
}
