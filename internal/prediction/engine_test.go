package prediction

import (
	"math"
	"reflect"
	"testing"

	"scholarmatch/domain/model"
)

func trainedWeights() *model.Weights {
	return &model.Weights{
		Intercept: -1.0,
		Weights: map[string]float64{
			model.FeatureGWAScore:          2.2,
			model.FeatureIncomeScore:       0.8,
			model.FeatureYearLevelMatch:    0.4,
			model.FeatureAffiliationMatch:  -0.6,
			model.FeatureCompletenessScore: 1.1,
			model.FeatureEligibilityPct:    1.5,
		},
		FeatureOrder: model.FeatureOrderV1,
		Scope:        model.ScopeOffering,
		OfferingID:   "offering-1",
		Version:      3,
	}
}

func fullVector() map[string]float64 {
	return map[string]float64{
		model.FeatureGWAScore:          0.9,
		model.FeatureIncomeScore:       0.6,
		model.FeatureYearLevelMatch:    1.0,
		model.FeatureAffiliationMatch:  1.0,
		model.FeatureCompletenessScore: 0.75,
		model.FeatureEligibilityPct:    1.0,
	}
}

// TestContributionAdditivity verifies the attribution decomposes the linear
// score exactly: z = intercept + sum of factor contributions
func TestContributionAdditivity(t *testing.T) {
	result := NewEngine().Predict(fullVector(), trainedWeights())

	sum := result.Intercept
	for _, f := range result.Factors {
		sum += f.Contribution
	}
	if math.Abs(sum-result.ZScore) > 1e-12 {
		t.Errorf("intercept + contributions = %f, z-score = %f", sum, result.ZScore)
	}

	groupSum := result.Intercept
	for _, g := range result.Groups {
		groupSum += g.Contribution
	}
	if math.Abs(groupSum-result.ZScore) > 1e-12 {
		t.Errorf("intercept + group contributions = %f, z-score = %f", groupSum, result.ZScore)
	}
}

// TestDocumentedProbability covers the worked example: z = 0.65 maps to a
// probability near 0.657
func TestDocumentedProbability(t *testing.T) {
	weights := &model.Weights{
		Intercept:    0.15,
		Weights:      map[string]float64{model.FeatureGWAScore: 1.0},
		FeatureOrder: []string{model.FeatureGWAScore},
		Scope:        model.ScopeGlobal,
		Version:      1,
	}
	features := map[string]float64{model.FeatureGWAScore: 0.5}

	result := NewEngine().Predict(features, weights)
	if math.Abs(result.ZScore-0.65) > 1e-12 {
		t.Fatalf("z-score = %f, want 0.65", result.ZScore)
	}
	if math.Abs(result.Probability-0.657) > 0.001 {
		t.Errorf("probability = %f, want ~0.657", result.Probability)
	}
}

// TestConfidenceBands verifies the probability banding on trained weights
func TestConfidenceBands(t *testing.T) {
	cases := []struct {
		z    float64
		want model.Confidence
	}{
		{3.0, model.ConfidenceHigh},   // p ~ 0.95
		{-3.0, model.ConfidenceHigh},  // p ~ 0.05
		{0.0, model.ConfidenceMedium}, // p = 0.5
	}
	for _, tc := range cases {
		weights := &model.Weights{
			Intercept:    tc.z,
			Weights:      map[string]float64{},
			FeatureOrder: nil,
			Scope:        model.ScopeGlobal,
			Version:      1,
		}
		result := NewEngine().Predict(map[string]float64{}, weights)
		if result.Confidence != tc.want {
			t.Errorf("z=%f: confidence = %s, want %s", tc.z, result.Confidence, tc.want)
		}
	}
}

// TestFallbackForcesLowConfidence verifies fallback-weight predictions are
// always reported low confidence, even at extreme probabilities
func TestFallbackForcesLowConfidence(t *testing.T) {
	features := map[string]float64{
		model.FeatureGWAScore:          1.0,
		model.FeatureIncomeScore:       1.0,
		model.FeatureYearLevelMatch:    1.0,
		model.FeatureAffiliationMatch:  1.0,
		model.FeatureCompletenessScore: 1.0,
		model.FeatureEligibilityPct:    1.0,
	}
	result := NewEngine().Predict(features, model.FallbackWeights())
	if result.Probability < 0.7 {
		t.Fatalf("perfect vector under fallback weights should band high on probability alone, got %f", result.Probability)
	}
	if result.Confidence != model.ConfidenceLow {
		t.Errorf("fallback prediction confidence = %s, want low", result.Confidence)
	}
	if result.ModelScope != model.ScopeGlobal {
		t.Errorf("fallback scope = %s, want global", result.ModelScope)
	}
}

// TestFactorsRankedByMagnitude verifies the factor list is ordered strongest
// contribution first, regardless of sign
func TestFactorsRankedByMagnitude(t *testing.T) {
	result := NewEngine().Predict(fullVector(), trainedWeights())
	if len(result.Factors) != len(model.FeatureOrderV1) {
		t.Fatalf("expected %d factors, got %d", len(model.FeatureOrderV1), len(result.Factors))
	}
	for i := 1; i < len(result.Factors); i++ {
		prev := math.Abs(result.Factors[i-1].Contribution)
		cur := math.Abs(result.Factors[i].Contribution)
		if cur > prev {
			t.Errorf("factors not ranked: |%f| after |%f|", cur, prev)
		}
	}
	// gwa 0.9*2.2 = 1.98 dominates this vector
	if result.Factors[0].Name != "GWA standing" {
		t.Errorf("dominant factor = %q, want GWA standing", result.Factors[0].Name)
	}
}

// TestGroupRollup verifies the category rollup sums its sub-factors and
// classifies the net direction
func TestGroupRollup(t *testing.T) {
	result := NewEngine().Predict(fullVector(), trainedWeights())

	wantOrder := []string{"Academic", "Financial", "Program Fit", "Application Quality", "Eligibility"}
	var gotOrder []string
	for _, g := range result.Groups {
		gotOrder = append(gotOrder, g.Name)
	}
	if !reflect.DeepEqual(gotOrder, wantOrder) {
		t.Fatalf("group order = %v, want %v", gotOrder, wantOrder)
	}

	for _, g := range result.Groups {
		sum := 0.0
		for _, f := range g.SubFactors {
			sum += f.Contribution
		}
		if math.Abs(sum-g.Contribution) > 1e-12 {
			t.Errorf("group %s contribution %f != sub-factor sum %f", g.Name, g.Contribution, sum)
		}
		if g.Direction != model.Classify(g.Contribution) {
			t.Errorf("group %s direction %s does not match its net contribution", g.Name, g.Direction)
		}
	}

	// year 1.0*0.4 + affiliation 1.0*-0.6 = -0.2 net
	fit := result.Groups[2]
	if len(fit.SubFactors) != 2 {
		t.Fatalf("Program Fit should carry two sub-factors, got %d", len(fit.SubFactors))
	}
	if math.Abs(fit.Contribution-(-0.2)) > 1e-12 {
		t.Errorf("Program Fit net contribution = %f, want -0.2", fit.Contribution)
	}
	if fit.Direction != model.DirectionNegative {
		t.Errorf("Program Fit direction = %s, want negative", fit.Direction)
	}
}

// TestRecommendationIsDeterministic verifies identical inputs produce
// identical advisory text, keyed by the dominant negative factor
func TestRecommendationIsDeterministic(t *testing.T) {
	engine := NewEngine()

	first := engine.Predict(fullVector(), trainedWeights())
	second := engine.Predict(fullVector(), trainedWeights())
	if first.Recommendation != second.Recommendation {
		t.Error("same input produced different recommendations")
	}
	// affiliation_match is the only negative contribution in this vector
	if first.Recommendation != recommendations[model.FeatureAffiliationMatch] {
		t.Errorf("recommendation = %q, want the affiliation advisory", first.Recommendation)
	}
}

// TestRecommendationCleanWhenNoNegative verifies the all-positive vector gets
// the no-drag advisory
func TestRecommendationCleanWhenNoNegative(t *testing.T) {
	weights := trainedWeights()
	weights.Weights[model.FeatureAffiliationMatch] = 0.6

	result := NewEngine().Predict(fullVector(), weights)
	if result.Recommendation != recommendationClean {
		t.Errorf("recommendation = %q, want the clean advisory", result.Recommendation)
	}
}

// TestNeutralContribution verifies contributions inside the epsilon band are
// reported neutral and do not drive the recommendation
func TestNeutralContribution(t *testing.T) {
	weights := &model.Weights{
		Intercept: 0,
		Weights: map[string]float64{
			model.FeatureGWAScore:    -0.005,
			model.FeatureIncomeScore: 0.5,
		},
		FeatureOrder: []string{model.FeatureGWAScore, model.FeatureIncomeScore},
		Scope:        model.ScopeGlobal,
		Version:      1,
	}
	features := map[string]float64{
		model.FeatureGWAScore:    1.0,
		model.FeatureIncomeScore: 1.0,
	}

	result := NewEngine().Predict(features, weights)
	for _, f := range result.Factors {
		if f.Name == "GWA standing" && f.Direction != model.DirectionNeutral {
			t.Errorf("contribution -0.005 should classify neutral, got %s", f.Direction)
		}
	}
	if result.Recommendation != recommendationClean {
		t.Errorf("neutral drag must not drive the recommendation, got %q", result.Recommendation)
	}
}

// TestModelProvenanceCarried verifies scope and version flow through to the
// result untouched
func TestModelProvenanceCarried(t *testing.T) {
	result := NewEngine().Predict(fullVector(), trainedWeights())
	if result.ModelScope != model.ScopeOffering {
		t.Errorf("scope = %s, want offering", result.ModelScope)
	}
	if result.ModelVersion != 3 {
		t.Errorf("version = %d, want 3", result.ModelVersion)
	}
}
