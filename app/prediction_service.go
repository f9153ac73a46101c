package app

import (
	"context"
	"fmt"

	"scholarmatch/domain/applicant"
	"scholarmatch/domain/core"
	"scholarmatch/domain/criteria"
	"scholarmatch/domain/eligibility"
	"scholarmatch/domain/model"
	rules "scholarmatch/internal/eligibility"
	"scholarmatch/internal/features"
	"scholarmatch/internal/prediction"
	"scholarmatch/ports"
)

// PredictionService turns a profile and an offering's criteria into an
// explainable approval-likelihood assessment. Model resolution is
// hierarchical: the offering's own model first, the pooled global model
// second, and the documented domain-knowledge fallback vector last.
type PredictionService struct {
	store     ports.ModelStore
	evaluator *rules.Evaluator
	extractor *features.Extractor
	engine    *prediction.Engine
}

// NewPredictionService creates the prediction orchestrator.
func NewPredictionService(store ports.ModelStore) *PredictionService {
	return &PredictionService{
		store:     store,
		evaluator: rules.NewEvaluator(),
		extractor: features.NewExtractor(),
		engine:    prediction.NewEngine(),
	}
}

// Assessment pairs the eligibility report with the likelihood prediction so
// callers get the rule verdict and the score from one pass.
type Assessment struct {
	Eligibility *eligibility.Result     `json:"eligibility"`
	Prediction  *model.PredictionResult `json:"prediction"`
}

// Predict evaluates eligibility, extracts the feature vector, resolves the
// best available model for the criteria's offering, and scores the applicant.
// A store miss is not an error; deeper failures are.
func (s *PredictionService) Predict(ctx context.Context, profile *applicant.Profile, crit *criteria.Criteria) (*Assessment, error) {
	result := s.evaluator.Evaluate(profile, crit)
	vector := s.extractor.Extract(profile, crit, result)

	weights, err := s.resolveWeights(ctx, crit.OfferingID)
	if err != nil {
		return nil, err
	}

	return &Assessment{
		Eligibility: result,
		Prediction:  s.engine.Predict(vector, weights),
	}, nil
}

// resolveWeights walks the model hierarchy. Only genuine store failures
// propagate; absence at every level resolves to the fallback vector.
func (s *PredictionService) resolveWeights(ctx context.Context, offeringID core.OfferingID) (*model.Weights, error) {
	if !offeringID.IsEmpty() {
		weights, err := s.store.GetOffering(ctx, offeringID)
		if err == nil {
			return weights, nil
		}
		if !core.IsNotFoundError(err) {
			return nil, fmt.Errorf("loading offering model %s: %w", offeringID, err)
		}
	}

	weights, err := s.store.GetGlobal(ctx)
	if err == nil {
		return weights, nil
	}
	if !core.IsNotFoundError(err) {
		return nil, fmt.Errorf("loading global model: %w", err)
	}

	return model.FallbackWeights(), nil
}
