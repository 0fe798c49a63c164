package dto

import "curriculum-forge/internal/domain"

// QuizRequest asks for quizzes over already extracted modules
// @Description Request body for quiz generation
type QuizRequest struct {
	Modules          []domain.Module `json:"modules"`
	ExtraInstruction string          `json:"extra_instruction,omitempty"`
}

// AdaptiveQuizRequest asks for quizzes tailored to one student
// @Description Request body for adaptive quiz generation
type AdaptiveQuizRequest struct {
	Student domain.StudentProfile `json:"student"`
	Modules []domain.Module       `json:"modules"`
	// WeakOnly restricts generation to modules touching a weak topic.
	WeakOnly bool `json:"weak_only"`
}

// QuizResponse carries one quiz per module, in request order
type QuizResponse struct {
	Quizzes      []domain.ModuleQuiz `json:"quizzes"`
	Questions    int                 `json:"questions"`
	FailedChunks int                 `json:"failed_chunks"`
}

// NewQuizResponse totals questions and failed chunks over quizzes.
func NewQuizResponse(quizzes []domain.ModuleQuiz) QuizResponse {
	resp := QuizResponse{Quizzes: quizzes}
	if resp.Quizzes == nil {
		resp.Quizzes = []domain.ModuleQuiz{}
	}
	for _, q := range quizzes {
		resp.Questions += len(q.Questions)
		resp.FailedChunks += q.Report.Failed()
	}
	return resp
}
