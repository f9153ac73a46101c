package eligibility

import (
	"fmt"
	"strconv"

	"scholarmatch/domain/applicant"
	"scholarmatch/domain/core"
	"scholarmatch/domain/criteria"
	"scholarmatch/domain/eligibility"
)

// Evaluator runs one applicant profile against one offering's rule set.
// Evaluation is exhaustive rather than short-circuiting: every defined
// criterion is checked and reported even after an earlier failure, because
// consumers need the full explanation, not just the verdict.
type Evaluator struct{}

// NewEvaluator creates a criteria evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate produces the full eligibility report. Undefined constraints
// (nil range bounds, empty allow-lists, unset exclusion flags) place no
// restriction and emit no check; absent bound means unconstrained.
func (e *Evaluator) Evaluate(profile *applicant.Profile, crit *criteria.Criteria) *eligibility.Result {
	result := &eligibility.Result{
		EvaluationID: core.EvaluationID(core.NewID()),
		OfferingID:   crit.OfferingID,
		IsEligible:   true,
		Checks:       make([]eligibility.Check, 0, 8),
		EvaluatedAt:  core.Now(),
	}

	hard := e.evaluateHardConstraints(profile, crit)
	exclusions := e.evaluateExclusions(profile, crit)
	custom := e.evaluateConditions(profile, crit)

	result.Checks = append(result.Checks, hard...)
	result.Checks = append(result.Checks, exclusions...)
	result.Checks = append(result.Checks, custom...)

	result.Stages.HardConstraints = summarize(hard, func(eligibility.Check) bool { return true })
	result.Stages.Exclusions = summarize(exclusions, func(eligibility.Check) bool { return true })
	result.Stages.CustomConditions = summarize(custom, eligibility.Check.Gating)

	for _, c := range result.Checks {
		if c.Gating() && !c.Passed {
			result.IsEligible = false
			break
		}
	}
	return result
}

// summarize counts a stage's checks, restricted to the ones that gate.
func summarize(checks []eligibility.Check, gates func(eligibility.Check) bool) eligibility.StageSummary {
	s := eligibility.StageSummary{OK: true}
	for _, c := range checks {
		if !gates(c) {
			continue
		}
		if c.Passed {
			s.Passed++
		} else {
			s.Failed++
			s.OK = false
		}
	}
	return s
}

func (e *Evaluator) evaluateHardConstraints(profile *applicant.Profile, crit *criteria.Criteria) []eligibility.Check {
	checks := make([]eligibility.Check, 0, 8)

	if crit.MaxGWA != nil {
		// ceiling-only bound: the floor defaults to the most permissive GWA
		checks = append(checks, rangeCheck("gwa", profile.GWA, criteria.GWAFloor, *crit.MaxGWA))
	}
	if crit.MaxIncome != nil {
		checks = append(checks, rangeCheck("annual_income", profile.AnnualIncome, 0, *crit.MaxIncome))
	}
	if crit.MinUnits != nil {
		checks = append(checks, floorCheck("units_enrolled", profile.UnitsEnrolled, *crit.MinUnits))
	}
	if crit.MinUnitsPassed != nil {
		checks = append(checks, floorCheck("units_passed", profile.UnitsPassed, *crit.MinUnitsPassed))
	}

	checks = append(checks, listChecks(profile, crit)...)
	return checks
}

// rangeCheck validates an inclusive [floor, ceiling] bound. An absent
// applicant value fails closed with a diagnostic instead of raising.
func rangeCheck(name string, value *float64, floor, ceiling float64) eligibility.Check {
	check := eligibility.Check{Name: name, Kind: eligibility.CheckRange}
	if value == nil {
		check.Diagnostic = fmt.Sprintf("%v: %q", core.ErrMissingField, name)
		return check
	}
	check.ApplicantValue = strconv.FormatFloat(*value, 'f', -1, 64)
	if *value >= floor && *value <= ceiling {
		check.Passed = true
	} else {
		check.Diagnostic = fmt.Sprintf("%g outside [%g, %g]", *value, floor, ceiling)
	}
	return check
}

// floorCheck validates a minimum-count bound with no ceiling.
func floorCheck(name string, value *int, floor int) eligibility.Check {
	check := eligibility.Check{Name: name, Kind: eligibility.CheckRange}
	if value == nil {
		check.Diagnostic = fmt.Sprintf("%v: %q", core.ErrMissingField, name)
		return check
	}
	check.ApplicantValue = strconv.Itoa(*value)
	if *value >= floor {
		check.Passed = true
	} else {
		check.Diagnostic = fmt.Sprintf("%d below minimum %d", *value, floor)
	}
	return check
}

func listChecks(profile *applicant.Profile, crit *criteria.Criteria) []eligibility.Check {
	dims := []struct {
		name      string
		allowList []string
		value     string
	}{
		{"college", crit.EligibleColleges, profile.College},
		{"program", crit.EligiblePrograms, profile.Program},
		{"major", crit.EligibleMajors, profile.Major},
		{"classification", crit.EligibleClassifications, profile.Classification},
		{"subsidy_bracket", crit.EligibleBrackets, profile.SubsidyBracket},
		{"province", crit.EligibleProvinces, profile.Province},
		{"citizenship", crit.EligibleCitizenships, profile.Citizenship},
	}

	checks := make([]eligibility.Check, 0, len(dims))
	for _, dim := range dims {
		// empty allow-list is the documented wildcard: no restriction, no check
		if len(dim.allowList) == 0 {
			continue
		}
		check := eligibility.Check{
			Name:           dim.name,
			Kind:           eligibility.CheckList,
			ApplicantValue: dim.value,
		}
		switch {
		case dim.value == "":
			// absent applicant attribute fails a restricted dimension
			check.Diagnostic = fmt.Sprintf("%v: %q", core.ErrMissingField, dim.name)
		case contains(dim.allowList, dim.value):
			check.Passed = true
		default:
			check.Diagnostic = fmt.Sprintf("%q not in allow-list", dim.value)
		}
		checks = append(checks, check)
	}
	return checks
}

func (e *Evaluator) evaluateExclusions(profile *applicant.Profile, crit *criteria.Criteria) []eligibility.Check {
	flags := []struct {
		name     string
		excluded bool
		value    bool
	}{
		{"no_other_scholarship", crit.DisallowOtherScholarship, profile.HasOtherScholarship},
		{"no_research_grant", crit.DisallowResearchGrant, profile.HasResearchGrant},
		{"no_disciplinary_record", crit.DisallowDisciplinaryRecord, profile.HasDisciplinaryRecord},
		{"no_failing_grade", crit.DisallowFailingGrade, profile.HasFailingGrade},
	}

	checks := make([]eligibility.Check, 0, len(flags))
	for _, f := range flags {
		if !f.excluded {
			continue
		}
		check := eligibility.Check{
			Name:           f.name,
			Kind:           eligibility.CheckBoolean,
			ApplicantValue: strconv.FormatBool(f.value),
			Passed:         !f.value,
		}
		if f.value {
			check.Diagnostic = "excluded status flag is set"
		}
		checks = append(checks, check)
	}
	return checks
}

func (e *Evaluator) evaluateConditions(profile *applicant.Profile, crit *criteria.Criteria) []eligibility.Check {
	checks := make([]eligibility.Check, 0, len(crit.Conditions))
	for _, cond := range crit.Conditions {
		// inactive conditions are skipped and excluded from aggregation
		if !cond.IsActive {
			continue
		}

		outcome := EvaluateCondition(cond, profile)
		name := cond.Name
		if name == "" {
			name = cond.ID.String()
		}

		applicantValue := ""
		if field, err := LookupField(profile, cond.Field); err == nil {
			applicantValue = field.String()
		}

		checks = append(checks, eligibility.Check{
			Name:           name,
			Kind:           eligibility.CheckCustom,
			Passed:         outcome.Passed,
			ApplicantValue: applicantValue,
			Diagnostic:     outcome.Diagnostic,
			Importance:     cond.Importance,
		})
	}
	return checks
}
