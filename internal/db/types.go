package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents one enhancement run: a set of uploaded documents pushed
// through extraction, the two model calls, and normalization.
type Run struct {
	ID            uuid.UUID  `json:"id"`
	CandidateName string     `json:"candidate_name"`
	Language      string     `json:"language"`
	Tone          string     `json:"tone"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// Run status values.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Artifact step constants for the stages an enhancement run moves through.
const (
	StepConsolidatedText = "consolidated_text"
	StepExtracted        = "extracted"
	StepRewritten        = "rewritten"
	StepRecord           = "record"
)
