package features

import (
	"math"
	"testing"

	"scholarmatch/domain/applicant"
	"scholarmatch/domain/criteria"
	"scholarmatch/domain/model"
	intelig "scholarmatch/internal/eligibility"
)

func extract(t *testing.T, p *applicant.Profile, crit *criteria.Criteria) map[string]float64 {
	t.Helper()
	result := intelig.NewEvaluator().Evaluate(p, crit)
	return NewExtractor().Extract(p, crit, result)
}

func approxEq(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %f, want %f", name, got, want)
	}
}

// TestGWAScoreScaling verifies (ceiling - gwa) / (ceiling - 1.0) with clamping
func TestGWAScoreScaling(t *testing.T) {
	crit := &criteria.Criteria{MaxGWA: applicant.Float(2.0)}

	cases := []struct {
		gwa  float64
		want float64
	}{
		{1.0, 1.0},  // best grade saturates
		{1.5, 0.5},  // midpoint of [1.0, 2.0]
		{2.0, 0.0},  // at the ceiling
		{3.0, 0.0},  // beyond the ceiling clamps to 0
	}
	for _, tc := range cases {
		p := &applicant.Profile{GWA: applicant.Float(tc.gwa)}
		fv := extract(t, p, crit)
		approxEq(t, "gwa_score", fv[model.FeatureGWAScore], tc.want)
	}

	// no ceiling: rescale against the scale's worst grade
	open := &criteria.Criteria{}
	fv := extract(t, &applicant.Profile{GWA: applicant.Float(3.0)}, open)
	approxEq(t, "gwa_score (open)", fv[model.FeatureGWAScore], (5.0-3.0)/4.0)

	// absent GWA scores zero
	fv = extract(t, &applicant.Profile{}, crit)
	approxEq(t, "gwa_score (absent)", fv[model.FeatureGWAScore], 0)
}

// TestIncomeScore verifies the ceiling-relative income feature
func TestIncomeScore(t *testing.T) {
	crit := &criteria.Criteria{MaxIncome: applicant.Float(400000)}

	fv := extract(t, &applicant.Profile{AnnualIncome: applicant.Float(100000)}, crit)
	approxEq(t, "income_score", fv[model.FeatureIncomeScore], 0.75)

	fv = extract(t, &applicant.Profile{AnnualIncome: applicant.Float(500000)}, crit)
	approxEq(t, "income_score (over)", fv[model.FeatureIncomeScore], 0)

	// no ceiling defined: unconstrained scores 1 whatever the income
	fv = extract(t, &applicant.Profile{AnnualIncome: applicant.Float(9e9)}, &criteria.Criteria{})
	approxEq(t, "income_score (no ceiling)", fv[model.FeatureIncomeScore], 1)

	// absent income against a defined ceiling scores 0
	fv = extract(t, &applicant.Profile{}, crit)
	approxEq(t, "income_score (absent)", fv[model.FeatureIncomeScore], 0)
}

// TestMatchFeatures verifies wildcard and membership for the binary features
func TestMatchFeatures(t *testing.T) {
	p := &applicant.Profile{
		Classification: "3",
		College:        "Engineering",
		Program:        "BS CS",
	}

	wildcard := extract(t, p, &criteria.Criteria{})
	approxEq(t, "year_level_match (wildcard)", wildcard[model.FeatureYearLevelMatch], 1)
	approxEq(t, "affiliation_match (wildcard)", wildcard[model.FeatureAffiliationMatch], 1)

	restricted := &criteria.Criteria{
		EligibleClassifications: []string{"4", "5"},
		EligibleColleges:        []string{"Engineering"},
		EligiblePrograms:        []string{"BS Math"},
	}
	fv := extract(t, p, restricted)
	approxEq(t, "year_level_match", fv[model.FeatureYearLevelMatch], 0)
	// college matches but program does not: affiliation requires both
	approxEq(t, "affiliation_match", fv[model.FeatureAffiliationMatch], 0)

	restricted.EligiblePrograms = []string{"BS CS"}
	fv = extract(t, p, restricted)
	approxEq(t, "affiliation_match (both)", fv[model.FeatureAffiliationMatch], 1)
}

// TestCompletenessIsDeterministic verifies the satisfied-fraction rule
func TestCompletenessIsDeterministic(t *testing.T) {
	crit := &criteria.Criteria{
		RequiredDocuments: []string{"transcript", "income_cert", "endorsement", "barangay_clearance"},
	}
	p := &applicant.Profile{Documents: map[string]bool{
		"transcript":  true,
		"income_cert": true,
		"endorsement": false,
	}}

	fv := extract(t, p, crit)
	approxEq(t, "completeness_score", fv[model.FeatureCompletenessScore], 0.5)

	// same inputs, same output: no randomness anywhere in the extractor
	again := extract(t, p, crit)
	approxEq(t, "completeness_score (repeat)", again[model.FeatureCompletenessScore], fv[model.FeatureCompletenessScore])

	none := extract(t, p, &criteria.Criteria{})
	approxEq(t, "completeness_score (no docs required)", none[model.FeatureCompletenessScore], 1)
}

// TestEligibilityPercentageIndependentOfGate verifies the feature reflects
// the fraction of passing criteria even when the hard gate already failed
func TestEligibilityPercentageIndependentOfGate(t *testing.T) {
	crit := &criteria.Criteria{
		MaxGWA:               applicant.Float(2.0),
		MaxIncome:            applicant.Float(400000),
		EligibleColleges:     []string{"Engineering"},
		DisallowFailingGrade: true,
	}
	p := &applicant.Profile{
		GWA:          applicant.Float(2.5), // fails
		AnnualIncome: applicant.Float(100000),
		College:      "Engineering",
	}

	result := intelig.NewEvaluator().Evaluate(p, crit)
	if result.IsEligible {
		t.Fatal("profile should fail the GWA gate")
	}
	fv := NewExtractor().Extract(p, crit, result)
	approxEq(t, "eligibility_percentage", fv[model.FeatureEligibilityPct], 0.75)
}

// TestExtractCoversFixedOrder verifies the vector has exactly the v1 features
func TestExtractCoversFixedOrder(t *testing.T) {
	fv := extract(t, &applicant.Profile{}, &criteria.Criteria{})
	if len(fv) != len(model.FeatureOrderV1) {
		t.Fatalf("vector has %d features, want %d", len(fv), len(model.FeatureOrderV1))
	}
	for _, name := range NewExtractor().Order() {
		v, ok := fv[name]
		if !ok {
			t.Errorf("feature %q missing from vector", name)
			continue
		}
		if v < 0 || v > 1 {
			t.Errorf("feature %q = %f outside [0,1]", name, v)
		}
	}
}
