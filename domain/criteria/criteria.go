package criteria

import (
	"scholarmatch/domain/core"
)

// Criteria is the per-offering rule set the evaluator runs an applicant
// against. Range bounds are pointers: nil means unconstrained on that
// dimension. Allow-lists follow the wildcard rule: an empty list places no
// restriction on its dimension.
type Criteria struct {
	OfferingID core.OfferingID `json:"offering_id"`

	// Range constraints
	MaxGWA         *float64 `json:"max_gwa,omitempty"` // ceiling on the inverted scale
	MaxIncome      *float64 `json:"max_income,omitempty"`
	MinUnits       *int     `json:"min_units,omitempty"`
	MinUnitsPassed *int     `json:"min_units_passed,omitempty"`

	// Set-membership constraints (empty = wildcard)
	EligibleColleges        []string `json:"eligible_colleges,omitempty"`
	EligiblePrograms        []string `json:"eligible_programs,omitempty"`
	EligibleMajors          []string `json:"eligible_majors,omitempty"`
	EligibleClassifications []string `json:"eligible_classifications,omitempty"`
	EligibleBrackets        []string `json:"eligible_brackets,omitempty"`
	EligibleProvinces       []string `json:"eligible_provinces,omitempty"`
	EligibleCitizenships    []string `json:"eligible_citizenships,omitempty"`

	// Boolean exclusions ("must not have X")
	DisallowOtherScholarship   bool `json:"disallow_other_scholarship"`
	DisallowResearchGrant      bool `json:"disallow_research_grant"`
	DisallowDisciplinaryRecord bool `json:"disallow_disciplinary_record"`
	DisallowFailingGrade       bool `json:"disallow_failing_grade"`

	// RequiredDocuments lists document keys that feed the completeness feature.
	RequiredDocuments []string `json:"required_documents,omitempty"`

	// Conditions is the ordered list of admin-authored rules.
	Conditions []Condition `json:"conditions,omitempty"`
}

// GWAFloor is the most permissive GWA on the inverted scale; a ceiling-only
// range constraint defaults its floor here.
const GWAFloor = 1.0
