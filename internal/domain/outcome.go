package domain

// OutcomeStatus is the result class of one chunk's model round trip.
type OutcomeStatus string

const (
	OutcomeOK               OutcomeStatus = "ok"
	OutcomeEmpty            OutcomeStatus = "empty"
	OutcomeGenerationFailed OutcomeStatus = "generation_failed"
	OutcomeRepairFailed     OutcomeStatus = "repair_failed"
)

// ChunkOutcome records what happened to a single chunk.
type ChunkOutcome struct {
	Index  int           `json:"index"`
	Status OutcomeStatus `json:"status"`
	Items  int           `json:"items"`
	Err    error         `json:"-"`
	Reason string        `json:"reason,omitempty"`
}

// Report accumulates chunk outcomes for one extraction call.
type Report struct {
	Outcomes []ChunkOutcome `json:"outcomes"`
}

func (r *Report) Add(o ChunkOutcome) {
	if o.Err != nil && o.Reason == "" {
		o.Reason = o.Err.Error()
	}
	r.Outcomes = append(r.Outcomes, o)
}

// Merge appends another report's outcomes.
func (r *Report) Merge(other Report) {
	r.Outcomes = append(r.Outcomes, other.Outcomes...)
}

func (r Report) Total() int {
	return len(r.Outcomes)
}

// Failed counts chunks that produced an error (generation or repair).
func (r Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == OutcomeGenerationFailed || o.Status == OutcomeRepairFailed {
			n++
		}
	}
	return n
}

func (r Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == OutcomeOK {
			n++
		}
	}
	return n
}

// Items is the number of records accepted before deduplication.
func (r Report) Items() int {
	n := 0
	for _, o := range r.Outcomes {
		n += o.Items
	}
	return n
}
