package ports

import (
	"context"

	"scholarmatch/domain/core"
	"scholarmatch/domain/criteria"
	"scholarmatch/domain/model"
)

// DecisionRepository supplies historical application outcomes for training.
// Snapshot semantics matter: the slice a call returns is a point-in-time
// copy that later label updates must not mutate, so a training run never
// races concurrent decision edits.
type DecisionRepository interface {
	// ListDecisions returns every recorded decision for one offering.
	ListDecisions(ctx context.Context, offeringID core.OfferingID) ([]model.DecisionRecord, error)

	// ListAllDecisions returns the full corpus across offerings, for the
	// global model.
	ListAllDecisions(ctx context.Context) ([]model.DecisionRecord, error)

	// ListOfferings enumerates offerings that have at least one decision.
	ListOfferings(ctx context.Context) ([]core.OfferingID, error)
}

// CriteriaRepository resolves the rule set for an offering. Training needs
// the criteria snapshot to rebuild feature vectors from decision records.
type CriteriaRepository interface {
	GetCriteria(ctx context.Context, offeringID core.OfferingID) (*criteria.Criteria, error)
}
