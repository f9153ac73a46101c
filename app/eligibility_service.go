package app

import (
	"context"
	"fmt"

	"scholarmatch/domain/applicant"
	"scholarmatch/domain/core"
	"scholarmatch/domain/eligibility"
	rules "scholarmatch/internal/eligibility"
	"scholarmatch/ports"
)

// EligibilityService resolves an offering's rule set and runs the evaluator
// against an applicant profile. The service holds no mutable state; one
// instance serves concurrent evaluations.
type EligibilityService struct {
	criteria  ports.CriteriaRepository
	evaluator *rules.Evaluator
}

// NewEligibilityService creates the evaluation orchestrator.
func NewEligibilityService(criteria ports.CriteriaRepository) *EligibilityService {
	return &EligibilityService{
		criteria:  criteria,
		evaluator: rules.NewEvaluator(),
	}
}

// Evaluate produces the full eligibility report for one applicant against one
// offering's criteria.
func (s *EligibilityService) Evaluate(ctx context.Context, profile *applicant.Profile, offeringID core.OfferingID) (*eligibility.Result, error) {
	crit, err := s.criteria.GetCriteria(ctx, offeringID)
	if err != nil {
		return nil, fmt.Errorf("loading criteria for offering %s: %w", offeringID, err)
	}
	return s.evaluator.Evaluate(profile, crit), nil
}
