package model

// Direction classifies a factor's contribution sign relative to the
// neutrality cutoff.
type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
	DirectionNeutral  Direction = "neutral"
)

// NeutralEpsilon is the contribution magnitude below which a factor is
// reported neutral rather than positive or negative.
const NeutralEpsilon = 0.01

// Classify maps a contribution to its display direction.
func Classify(contribution float64) Direction {
	switch {
	case contribution > NeutralEpsilon:
		return DirectionPositive
	case contribution < -NeutralEpsilon:
		return DirectionNegative
	default:
		return DirectionNeutral
	}
}

// Confidence bands a probability by its distance from the decision boundary.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	// ConfidenceLow is reserved for predictions made with the untrained
	// domain-knowledge fallback vector; the probability bands alone never
	// produce it.
	ConfidenceLow Confidence = "low"
)

// BandConfidence applies the documented banding: high when the probability
// is at least 0.7 or at most 0.3, medium on the open interval between.
func BandConfidence(probability float64) Confidence {
	if probability >= 0.7 || probability <= 0.3 {
		return ConfidenceHigh
	}
	return ConfidenceMedium
}

// Factor is one named term of the linear score with its attribution.
type Factor struct {
	Name         string    `json:"name"`
	Value        float64   `json:"value"`
	Weight       float64   `json:"weight"`
	Contribution float64   `json:"contribution"` // value * weight
	Direction    Direction `json:"direction"`
}

// FactorGroup rolls per-feature factors up into a display category with the
// net group contribution.
type FactorGroup struct {
	Name         string    `json:"name"`
	Contribution float64   `json:"contribution"`
	Direction    Direction `json:"direction"`
	SubFactors   []Factor  `json:"sub_factors"`
}

// PredictionResult is the full explainable output of one prediction.
type PredictionResult struct {
	Probability    float64       `json:"probability"`
	ZScore         float64       `json:"z_score"`
	Intercept      float64       `json:"intercept"`
	Factors        []Factor      `json:"factors"`
	Groups         []FactorGroup `json:"groups"`
	Confidence     Confidence    `json:"confidence"`
	Recommendation string        `json:"recommendation"`
	ModelScope     Scope         `json:"model_scope"`
	ModelVersion   int           `json:"model_version"`
}
