package model

import (
	"scholarmatch/domain/applicant"
	"scholarmatch/domain/core"
)

// DecisionStatus is the terminal (or not) state of a historical application.
type DecisionStatus string

const (
	StatusApproved  DecisionStatus = "approved"
	StatusRejected  DecisionStatus = "rejected"
	StatusPending   DecisionStatus = "pending"
	StatusWithdrawn DecisionStatus = "withdrawn"
)

// IsTerminal reports whether the status represents a final admin decision.
// Only terminal decisions become training samples.
func (s DecisionStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// DecisionRecord is one historical application outcome supplied by the
// persistence collaborator. The profile is the snapshot taken at decision
// time, not the applicant's current state.
type DecisionRecord struct {
	DecisionID core.DecisionID   `json:"decision_id"`
	OfferingID core.OfferingID   `json:"offering_id"`
	Profile    applicant.Profile `json:"profile"`
	Status     DecisionStatus    `json:"status"`
	DecidedAt  core.Timestamp    `json:"decided_at"`
}

// TrainingSample is one labeled (feature vector, outcome) pair.
type TrainingSample struct {
	Features map[string]float64 `json:"features"`
	Label    float64            `json:"label"` // approved=1, rejected=0
}
