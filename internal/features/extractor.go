package features

import (
	"scholarmatch/domain/applicant"
	"scholarmatch/domain/criteria"
	"scholarmatch/domain/eligibility"
	"scholarmatch/domain/model"
)

// worstGWA closes the score range when an offering sets no GWA ceiling;
// 5.0 is the floor of the inverted scale.
const worstGWA = 5.0

// Extractor maps (profile, criteria, eligibility result) to the fixed-order
// numeric feature vector the scorer consumes. Every component is bounded to
// [0,1]. The order is fixed at build time (model.FeatureOrderV1); adding a
// feature requires a model version bump, not a silent schema change.
type Extractor struct{}

// NewExtractor creates a feature extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract produces the named feature vector. The computation is fully
// deterministic: document completeness is counted from the profile's
// document checklist, never sampled.
func (e *Extractor) Extract(profile *applicant.Profile, crit *criteria.Criteria, result *eligibility.Result) map[string]float64 {
	return map[string]float64{
		model.FeatureGWAScore:          gwaScore(profile, crit),
		model.FeatureIncomeScore:       incomeScore(profile, crit),
		model.FeatureYearLevelMatch:    matchScore(profile.Classification, crit.EligibleClassifications),
		model.FeatureAffiliationMatch:  affiliationScore(profile, crit),
		model.FeatureCompletenessScore: completenessScore(profile, crit),
		model.FeatureEligibilityPct:    result.GatingPassRate(),
	}
}

// Order returns the feature order this extractor produces.
func (e *Extractor) Order() []string {
	return model.FeatureOrderV1
}

// gwaScore rescales GWA so a better (lower) grade scores higher:
// (ceiling - gwa) / (ceiling - 1.0), clamped to [0,1]. Offerings without a
// ceiling use the scale's worst grade so the score stays comparable.
func gwaScore(profile *applicant.Profile, crit *criteria.Criteria) float64 {
	if profile.GWA == nil {
		return 0
	}
	ceiling := worstGWA
	if crit.MaxGWA != nil {
		ceiling = *crit.MaxGWA
	}
	if ceiling <= criteria.GWAFloor {
		// degenerate ceiling: only a perfect grade scores
		if *profile.GWA <= criteria.GWAFloor {
			return 1
		}
		return 0
	}
	return clamp((ceiling-*profile.GWA)/(ceiling-criteria.GWAFloor), 0, 1)
}

// incomeScore rewards distance below the income ceiling; offerings without a
// ceiling treat every applicant as unconstrained (score 1).
func incomeScore(profile *applicant.Profile, crit *criteria.Criteria) float64 {
	if crit.MaxIncome == nil || *crit.MaxIncome <= 0 {
		return 1
	}
	if profile.AnnualIncome == nil {
		return 0
	}
	return clamp(1-*profile.AnnualIncome / *crit.MaxIncome, 0, 1)
}

// matchScore is the binary allow-list feature with wildcard semantics.
func matchScore(value string, allowList []string) float64 {
	if len(allowList) == 0 {
		return 1
	}
	for _, item := range allowList {
		if item == value {
			return 1
		}
	}
	return 0
}

// affiliationScore requires both the organizational unit and the program to
// match, each under the wildcard rule.
func affiliationScore(profile *applicant.Profile, crit *criteria.Criteria) float64 {
	return matchScore(profile.College, crit.EligibleColleges) *
		matchScore(profile.Program, crit.EligiblePrograms)
}

// completenessScore is the satisfied fraction of required document checks.
func completenessScore(profile *applicant.Profile, crit *criteria.Criteria) float64 {
	if len(crit.RequiredDocuments) == 0 {
		return 1
	}
	satisfied := 0
	for _, doc := range crit.RequiredDocuments {
		if profile.Documents[doc] {
			satisfied++
		}
	}
	return float64(satisfied) / float64(len(crit.RequiredDocuments))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
