package applicant

import (
	"scholarmatch/domain/core"
)

// Profile is an immutable snapshot of an applicant at evaluation time.
// Optional numeric fields are pointers: nil means the attribute was never
// supplied, which is distinct from a zero value. Engines never mutate a
// Profile in place.
type Profile struct {
	ApplicantID core.ApplicantID `json:"applicant_id"`

	// Academic standing. GWA is on the inverted 1.0-5.0 scale (1.0 = best).
	GWA            *float64 `json:"gwa,omitempty"`
	Classification string   `json:"classification,omitempty"` // year level, e.g. "3"
	UnitsEnrolled  *int     `json:"units_enrolled,omitempty"`
	UnitsPassed    *int     `json:"units_passed,omitempty"`

	// Affiliation
	College string `json:"college,omitempty"`
	Program string `json:"program,omitempty"`
	Major   string `json:"major,omitempty"`

	// Financial standing
	AnnualIncome   *float64 `json:"annual_income,omitempty"`
	SubsidyBracket string   `json:"subsidy_bracket,omitempty"`

	// Origin
	Province    string `json:"province,omitempty"`
	Citizenship string `json:"citizenship,omitempty"`

	// Status flags
	HasOtherScholarship   bool `json:"has_other_scholarship"`
	HasResearchGrant      bool `json:"has_research_grant"`
	HasDisciplinaryRecord bool `json:"has_disciplinary_record"`
	HasFailingGrade       bool `json:"has_failing_grade"`
	HasApprovedOutline    bool `json:"has_approved_outline"`
	IsGraduating          bool `json:"is_graduating"`

	// Documents maps each required-document key to whether it was satisfied.
	// Consumed by the completeness feature, never by eligibility gating.
	Documents map[string]bool `json:"documents,omitempty"`
}

// Float returns a pointer to v, for building optional numeric fields in tests
// and fixtures.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
