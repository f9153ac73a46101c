// Package testkit provides deterministic fixtures for engine tests.
package testkit

import (
	"math/rand"

	"scholarmatch/domain/applicant"
	"scholarmatch/domain/core"
	"scholarmatch/domain/criteria"
	"scholarmatch/domain/model"
)

// GenerateSamples draws n feature vectors uniformly over [0,1] per feature
// and labels each by thresholding the truth model's probability at 0.5. The
// corpus is linearly separable by construction, so a correct trainer must
// recover a decision boundary close to the truth's.
func GenerateSamples(rng *rand.Rand, n int, truth *model.Weights) []model.TrainingSample {
	samples := make([]model.TrainingSample, n)
	for i := range samples {
		features := make(map[string]float64, len(truth.FeatureOrder))
		for _, name := range truth.FeatureOrder {
			features[name] = rng.Float64()
		}
		label := 0.0
		if model.Sigmoid(truth.Score(features)) >= 0.5 {
			label = 1.0
		}
		samples[i] = model.TrainingSample{Features: features, Label: label}
	}
	return samples
}

// Profile returns a complete, well-formed applicant snapshot that passes the
// Criteria fixture.
func Profile() *applicant.Profile {
	return &applicant.Profile{
		ApplicantID:    "applicant-fixture",
		GWA:            applicant.Float(1.8),
		Classification: "3",
		UnitsEnrolled:  applicant.Int(18),
		UnitsPassed:    applicant.Int(18),
		College:        "Engineering",
		Program:        "BS Computer Science",
		AnnualIncome:   applicant.Float(200000),
		SubsidyBracket: "ST1",
		Province:       "Laguna",
		Citizenship:    "Filipino",
		Documents: map[string]bool{
			"transcript":  true,
			"income_cert": true,
		},
	}
}

// Criteria returns a rule set exercising each constraint family.
func Criteria(offeringID core.OfferingID) *criteria.Criteria {
	return &criteria.Criteria{
		OfferingID:           offeringID,
		MaxGWA:               applicant.Float(2.5),
		MaxIncome:            applicant.Float(400000),
		MinUnits:             applicant.Int(12),
		EligibleColleges:     []string{"Engineering", "Science"},
		DisallowFailingGrade: true,
		RequiredDocuments:    []string{"transcript", "income_cert"},
		Conditions: []criteria.Condition{{
			ID:         "cond-bracket",
			Name:       "subsidized bracket",
			Type:       criteria.ConditionList,
			Field:      "subsidy_bracket",
			Operator:   criteria.OpIn,
			Value:      criteria.ListValue("ST1", "ST2"),
			Importance: criteria.ImportanceRequired,
			IsActive:   true,
		}},
	}
}

// DecisionCorpus builds n terminal decision records for one offering,
// approving applicants whose GWA clears the midpoint of the fixture's
// ceiling and rejecting the rest. Profiles vary deterministically with rng.
func DecisionCorpus(rng *rand.Rand, offeringID core.OfferingID, n int) []model.DecisionRecord {
	records := make([]model.DecisionRecord, n)
	for i := range records {
		p := Profile()
		gwa := 1.0 + rng.Float64()*2.0 // [1.0, 3.0)
		income := rng.Float64() * 500000
		p.GWA = applicant.Float(gwa)
		p.AnnualIncome = applicant.Float(income)

		status := model.StatusRejected
		if gwa < 1.9 {
			status = model.StatusApproved
		}
		records[i] = model.DecisionRecord{
			DecisionID: core.DecisionID(core.NewID()),
			OfferingID: offeringID,
			Profile:    *p,
			Status:     status,
			DecidedAt:  core.Now(),
		}
	}
	return records
}
