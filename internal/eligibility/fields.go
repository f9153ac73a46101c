package eligibility

import (
	"fmt"
	"sort"
	"strconv"

	"scholarmatch/domain/applicant"
	"scholarmatch/domain/core"
)

// FieldKind is the declared type of a registered applicant field.
type FieldKind string

const (
	KindNumber FieldKind = "number"
	KindText   FieldKind = "text"
	KindBool   FieldKind = "bool"
)

// FieldValue is a typed read of one applicant field. Present is false when
// the applicant never supplied the attribute, which is distinct from a zero
// value.
type FieldValue struct {
	Kind    FieldKind
	Number  float64
	Text    string
	Bool    bool
	Present bool
}

// String renders the field value for check reports.
func (v FieldValue) String() string {
	if !v.Present {
		return ""
	}
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Text
	}
}

type fieldAccessor func(p *applicant.Profile) FieldValue

func numberField(get func(p *applicant.Profile) *float64) fieldAccessor {
	return func(p *applicant.Profile) FieldValue {
		if v := get(p); v != nil {
			return FieldValue{Kind: KindNumber, Number: *v, Present: true}
		}
		return FieldValue{Kind: KindNumber}
	}
}

func intField(get func(p *applicant.Profile) *int) fieldAccessor {
	return func(p *applicant.Profile) FieldValue {
		if v := get(p); v != nil {
			return FieldValue{Kind: KindNumber, Number: float64(*v), Present: true}
		}
		return FieldValue{Kind: KindNumber}
	}
}

func textField(get func(p *applicant.Profile) string) fieldAccessor {
	return func(p *applicant.Profile) FieldValue {
		if v := get(p); v != "" {
			return FieldValue{Kind: KindText, Text: v, Present: true}
		}
		return FieldValue{Kind: KindText}
	}
}

func boolField(get func(p *applicant.Profile) bool) fieldAccessor {
	return func(p *applicant.Profile) FieldValue {
		return FieldValue{Kind: KindBool, Bool: get(p), Present: true}
	}
}

// fieldRegistry is the closed, compile-time table of applicant fields that
// admin-authored conditions may reference by name. Lookups against any other
// name fail closed; there is no reflection and no dynamic property access.
var fieldRegistry = map[string]fieldAccessor{
	"gwa":            numberField(func(p *applicant.Profile) *float64 { return p.GWA }),
	"annual_income":  numberField(func(p *applicant.Profile) *float64 { return p.AnnualIncome }),
	"units_enrolled": intField(func(p *applicant.Profile) *int { return p.UnitsEnrolled }),
	"units_passed":   intField(func(p *applicant.Profile) *int { return p.UnitsPassed }),

	"classification":  textField(func(p *applicant.Profile) string { return p.Classification }),
	"college":         textField(func(p *applicant.Profile) string { return p.College }),
	"program":         textField(func(p *applicant.Profile) string { return p.Program }),
	"major":           textField(func(p *applicant.Profile) string { return p.Major }),
	"subsidy_bracket": textField(func(p *applicant.Profile) string { return p.SubsidyBracket }),
	"province":        textField(func(p *applicant.Profile) string { return p.Province }),
	"citizenship":     textField(func(p *applicant.Profile) string { return p.Citizenship }),

	"has_other_scholarship":   boolField(func(p *applicant.Profile) bool { return p.HasOtherScholarship }),
	"has_research_grant":      boolField(func(p *applicant.Profile) bool { return p.HasResearchGrant }),
	"has_disciplinary_record": boolField(func(p *applicant.Profile) bool { return p.HasDisciplinaryRecord }),
	"has_failing_grade":       boolField(func(p *applicant.Profile) bool { return p.HasFailingGrade }),
	"has_approved_outline":    boolField(func(p *applicant.Profile) bool { return p.HasApprovedOutline }),
	"is_graduating":           boolField(func(p *applicant.Profile) bool { return p.IsGraduating }),
}

// LookupField reads a registered field from a profile. Unregistered names
// return core.ErrUnknownField; the caller marks the condition failed rather
// than propagating.
func LookupField(p *applicant.Profile, name string) (FieldValue, error) {
	accessor, ok := fieldRegistry[name]
	if !ok {
		return FieldValue{}, fmt.Errorf("%w: %q", core.ErrUnknownField, name)
	}
	return accessor(p), nil
}

// RegisteredFields returns the sorted names admin conditions may target.
func RegisteredFields() []string {
	names := make([]string, 0, len(fieldRegistry))
	for name := range fieldRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
