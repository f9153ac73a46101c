package model

import (
	"math"

	"scholarmatch/domain/core"
)

// Scope records which corpus a weight vector was trained on.
type Scope string

const (
	// ScopeOffering means the model was trained on one offering's decisions.
	ScopeOffering Scope = "offering"
	// ScopeGlobal means the model pooled decisions across all offerings.
	ScopeGlobal Scope = "global"
)

// FeatureSummary holds per-feature corpus statistics recorded at training
// time, for drift inspection and debugging.
type FeatureSummary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Weights is an immutable trained logistic-regression model. A retrain
// produces a new instance that atomically replaces the old one in the model
// store; nothing ever mutates a published Weights value.
type Weights struct {
	Intercept    float64                   `json:"intercept"`
	Weights      map[string]float64        `json:"weights"`
	FeatureOrder []string                  `json:"feature_order"`
	FeatureStats map[string]FeatureSummary `json:"feature_stats,omitempty"`
	TrainingSize int                       `json:"training_size"`
	Metrics      ValidationMetrics         `json:"metrics"`
	TrainedAt    core.Timestamp            `json:"trained_at"`
	Scope        Scope                     `json:"scope"`
	OfferingID   core.OfferingID           `json:"offering_id,omitempty"`
	Version      int                       `json:"version"`
	// Fallback marks the documented domain-knowledge vector, which carries
	// no validation metrics because it was never fitted.
	Fallback bool `json:"fallback,omitempty"`
}

// Score computes the pre-sigmoid linear combination for a feature vector.
// Missing features contribute zero; unknown features in the vector are
// ignored, matching the fixed training-time order contract.
func (w *Weights) Score(features map[string]float64) float64 {
	z := w.Intercept
	for name, weight := range w.Weights {
		z += weight * features[name]
	}
	return z
}

// zClip bounds the exponent fed to math.Exp. Beyond ±500 the sigmoid is
// saturated well past float64 resolution and Exp would overflow to +Inf.
const zClip = 500.0

// Sigmoid is the numerically stabilized logistic function.
func Sigmoid(z float64) float64 {
	if z > zClip {
		z = zClip
	} else if z < -zClip {
		z = -zClip
	}
	return 1.0 / (1.0 + math.Exp(-z))
}

// FeatureOrderV1 is the fixed feature order for version-1 models. Adding a
// feature requires a new order constant and a model version bump, never a
// silent schema change.
var FeatureOrderV1 = []string{
	FeatureGWAScore,
	FeatureIncomeScore,
	FeatureYearLevelMatch,
	FeatureAffiliationMatch,
	FeatureCompletenessScore,
	FeatureEligibilityPct,
}

// Feature names shared by the extractor, trainer, and prediction engine.
const (
	FeatureGWAScore          = "gwa_score"
	FeatureIncomeScore       = "income_score"
	FeatureYearLevelMatch    = "year_level_match"
	FeatureAffiliationMatch  = "affiliation_match"
	FeatureCompletenessScore = "completeness_score"
	FeatureEligibilityPct    = "eligibility_percentage"
)

// FallbackWeights returns the documented domain-knowledge weight vector used
// when no trained model qualifies. The values encode reviewer priors: GWA
// dominates, eligibility coverage and income follow, match flags nudge.
func FallbackWeights() *Weights {
	return &Weights{
		Intercept: -1.0,
		Weights: map[string]float64{
			FeatureGWAScore:          2.0,
			FeatureIncomeScore:       1.0,
			FeatureYearLevelMatch:    0.5,
			FeatureAffiliationMatch:  0.5,
			FeatureCompletenessScore: 1.0,
			FeatureEligibilityPct:    1.5,
		},
		FeatureOrder: FeatureOrderV1,
		Scope:        ScopeGlobal,
		Version:      1,
		Fallback:     true,
	}
}
