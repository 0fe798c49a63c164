package domain

// PartReport describes one contiguous document part processed independently.
type PartReport struct {
	Index  int    `json:"index"`
	Chars  int    `json:"chars"`
	Chunks int    `json:"chunks"`
	Report Report `json:"report"`
}

// IngestionResult is the outcome of one document ingestion.
type IngestionResult struct {
	RunID   string       `json:"run_id"`
	Modules []Module     `json:"modules"`
	Parts   []PartReport `json:"parts"`
}

// FailedChunks sums failed chunks over all parts.
func (r *IngestionResult) FailedChunks() int {
	n := 0
	for _, p := range r.Parts {
		n += p.Report.Failed()
	}
	return n
}
