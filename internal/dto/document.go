package dto

import "curriculum-forge/internal/domain"

// DocumentResponse is the result of one document ingestion
// @Description Extracted modules with per part reports
type DocumentResponse struct {
	RunID        string              `json:"run_id"`
	Modules      []domain.Module     `json:"modules"`
	Parts        []domain.PartReport `json:"parts"`
	FailedChunks int                 `json:"failed_chunks"`
	Quizzes      []domain.ModuleQuiz `json:"quizzes,omitempty"`
}

// NewDocumentResponse flattens an ingestion result.
func NewDocumentResponse(result *domain.IngestionResult) DocumentResponse {
	resp := DocumentResponse{
		RunID:        result.RunID,
		Modules:      result.Modules,
		Parts:        result.Parts,
		FailedChunks: result.FailedChunks(),
	}
	if resp.Modules == nil {
		resp.Modules = []domain.Module{}
	}
	return resp
}

// HealthResponse reports service liveness
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache,omitempty"`
}
