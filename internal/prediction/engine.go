package prediction

import (
	"math"
	"sort"

	"scholarmatch/domain/model"
)

// Engine applies a trained (or fallback) weight vector to a feature vector,
// producing the approval probability plus the full per-factor attribution.
// Prediction is pure computation over an immutable weights snapshot:
// concurrent calls share nothing mutable.
type Engine struct{}

// NewEngine creates a prediction engine.
func NewEngine() *Engine {
	return &Engine{}
}

// factorGroups maps display categories to the features they roll up, in
// presentation order.
var factorGroups = []struct {
	name     string
	features []string
}{
	{"Academic", []string{model.FeatureGWAScore}},
	{"Financial", []string{model.FeatureIncomeScore}},
	{"Program Fit", []string{model.FeatureYearLevelMatch, model.FeatureAffiliationMatch}},
	{"Application Quality", []string{model.FeatureCompletenessScore}},
	{"Eligibility", []string{model.FeatureEligibilityPct}},
}

// factorLabels give each feature a reader-facing name.
var factorLabels = map[string]string{
	model.FeatureGWAScore:          "GWA standing",
	model.FeatureIncomeScore:       "Income headroom",
	model.FeatureYearLevelMatch:    "Year level fit",
	model.FeatureAffiliationMatch:  "College and program fit",
	model.FeatureCompletenessScore: "Document completeness",
	model.FeatureEligibilityPct:    "Criteria coverage",
}

// recommendations keyed by the dominant negative feature.
var recommendations = map[string]string{
	model.FeatureGWAScore:          "Academic standing is the largest drag on this application; the GWA sits close to or beyond the offering's ceiling.",
	model.FeatureIncomeScore:       "Reported family income leaves little headroom under the offering's income ceiling.",
	model.FeatureYearLevelMatch:    "The applicant's year level is outside the offering's target classifications.",
	model.FeatureAffiliationMatch:  "The applicant's college or program is outside the offering's covered units.",
	model.FeatureCompletenessScore: "Required documents are incomplete; submitting the missing ones would strengthen the application.",
	model.FeatureEligibilityPct:    "Several eligibility criteria are unmet; review the failed checks in the eligibility report.",
}

const recommendationClean = "No factor works against this application; it is competitive as submitted."

// Predict scores one feature vector against one weight vector. Contributions
// decompose the z-score exactly: z = intercept + sum of factor contributions.
func (e *Engine) Predict(features map[string]float64, weights *model.Weights) *model.PredictionResult {
	factors := make([]model.Factor, 0, len(weights.FeatureOrder))
	z := weights.Intercept

	dominantNegative := ""
	worst := -model.NeutralEpsilon
	for _, name := range weights.FeatureOrder {
		contribution := features[name] * weights.Weights[name]
		z += contribution
		factors = append(factors, newFactor(name, features[name], weights.Weights[name]))
		if contribution < worst {
			worst = contribution
			dominantNegative = name
		}
	}

	probability := model.Sigmoid(z)
	confidence := model.BandConfidence(probability)
	if weights.Fallback {
		// an unfitted domain-knowledge vector carries no validation metrics,
		// so its predictions never rate better than low confidence
		confidence = model.ConfidenceLow
	}

	rankByMagnitude(factors)

	return &model.PredictionResult{
		Probability:    probability,
		ZScore:         z,
		Intercept:      weights.Intercept,
		Factors:        factors,
		Groups:         e.groupFactors(features, weights),
		Confidence:     confidence,
		Recommendation: recommendFor(dominantNegative),
		ModelScope:     weights.Scope,
		ModelVersion:   weights.Version,
	}
}

// groupFactors rolls per-feature contributions up into display categories
// with the net contribution of each category.
func (e *Engine) groupFactors(features map[string]float64, weights *model.Weights) []model.FactorGroup {
	known := make(map[string]bool, len(weights.FeatureOrder))
	for _, name := range weights.FeatureOrder {
		known[name] = true
	}

	groups := make([]model.FactorGroup, 0, len(factorGroups))
	for _, g := range factorGroups {
		group := model.FactorGroup{Name: g.name}
		for _, name := range g.features {
			if !known[name] {
				continue
			}
			f := newFactor(name, features[name], weights.Weights[name])
			group.Contribution += f.Contribution
			group.SubFactors = append(group.SubFactors, f)
		}
		if len(group.SubFactors) == 0 {
			continue
		}
		rankByMagnitude(group.SubFactors)
		group.Direction = model.Classify(group.Contribution)
		groups = append(groups, group)
	}
	return groups
}

func newFactor(name string, value, weight float64) model.Factor {
	contribution := value * weight
	return model.Factor{
		Name:         factorLabel(name),
		Value:        value,
		Weight:       weight,
		Contribution: contribution,
		Direction:    model.Classify(contribution),
	}
}

// rankByMagnitude orders factors by absolute contribution, strongest first.
// The sort is stable so equal contributions keep the build order.
func rankByMagnitude(factors []model.Factor) {
	sort.SliceStable(factors, func(i, j int) bool {
		return math.Abs(factors[i].Contribution) > math.Abs(factors[j].Contribution)
	})
}

// recommendFor maps the dominant negative feature to its fixed advisory text.
// Identical inputs always yield identical text.
func recommendFor(feature string) string {
	if feature == "" {
		return recommendationClean
	}
	if text, ok := recommendations[feature]; ok {
		return text
	}
	return recommendationClean
}

func factorLabel(name string) string {
	if label, ok := factorLabels[name]; ok {
		return label
	}
	return name
}
