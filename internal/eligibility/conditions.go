package eligibility

import (
	"fmt"

	"scholarmatch/domain/applicant"
	"scholarmatch/domain/core"
	"scholarmatch/domain/criteria"
)

// ConditionOutcome is the verdict for one custom condition. Malformed
// conditions never raise: they come back failed with a diagnostic so the
// rest of the rule set still evaluates.
type ConditionOutcome struct {
	Passed     bool
	Diagnostic string
}

func failClosed(format string, args ...interface{}) ConditionOutcome {
	return ConditionOutcome{Passed: false, Diagnostic: fmt.Sprintf(format, args...)}
}

// EvaluateCondition dispatches one admin-authored condition against a
// profile on (type, operator). Unknown fields, unknown operators, type
// mismatches, and absent applicant values all fail closed.
func EvaluateCondition(cond criteria.Condition, p *applicant.Profile) ConditionOutcome {
	field, err := LookupField(p, cond.Field)
	if err != nil {
		return failClosed("unknown applicant field %q", cond.Field)
	}

	if !cond.Value.MatchesType(cond.Type) && !valueOptional(cond.Operator) {
		return failClosed("value does not match condition type %q", cond.Type)
	}

	switch cond.Type {
	case criteria.ConditionRange:
		return evaluateRange(cond, field)
	case criteria.ConditionBoolean:
		return evaluateBoolean(cond, field)
	case criteria.ConditionList:
		return evaluateList(cond, field)
	default:
		return failClosed("unknown condition type %q", cond.Type)
	}
}

// valueOptional reports operators that compare against the field alone.
func valueOptional(op criteria.Operator) bool {
	return op == criteria.OpIsTruthy || op == criteria.OpIsFalsy
}

func evaluateRange(cond criteria.Condition, field FieldValue) ConditionOutcome {
	if field.Kind != KindNumber {
		return failClosed("field %q is not numeric", cond.Field)
	}
	if !field.Present {
		return failClosed("%v: %q", core.ErrMissingField, cond.Field)
	}

	v := field.Number
	switch cond.Operator {
	case criteria.OpBetween:
		if cond.Value.Range == nil {
			return failClosed("between requires a {min,max} value")
		}
		// inclusive on both ends
		r := cond.Value.Range
		if v >= r.Min && v <= r.Max {
			return ConditionOutcome{Passed: true}
		}
		return failClosed("%g outside [%g, %g]", v, r.Min, r.Max)
	case criteria.OpLT, criteria.OpLTE, criteria.OpGT, criteria.OpGTE, criteria.OpEQ:
		if cond.Value.Number == nil {
			return failClosed("operator %q requires a numeric value", cond.Operator)
		}
		bound := *cond.Value.Number
		ok := false
		switch cond.Operator {
		case criteria.OpLT:
			ok = v < bound
		case criteria.OpLTE:
			ok = v <= bound
		case criteria.OpGT:
			ok = v > bound
		case criteria.OpGTE:
			ok = v >= bound
		case criteria.OpEQ:
			ok = v == bound
		}
		if ok {
			return ConditionOutcome{Passed: true}
		}
		return failClosed("%g %s %g is false", v, cond.Operator, bound)
	default:
		return failClosed("%v: %q for range condition", core.ErrUnknownOperator, cond.Operator)
	}
}

func evaluateBoolean(cond criteria.Condition, field FieldValue) ConditionOutcome {
	if field.Kind != KindBool {
		return failClosed("field %q is not boolean", cond.Field)
	}

	switch cond.Operator {
	case criteria.OpIs:
		if field.Bool == *cond.Value.Bool {
			return ConditionOutcome{Passed: true}
		}
		return failClosed("field is %t, expected %t", field.Bool, *cond.Value.Bool)
	case criteria.OpIsNot:
		if field.Bool != *cond.Value.Bool {
			return ConditionOutcome{Passed: true}
		}
		return failClosed("field is %t, expected not %t", field.Bool, *cond.Value.Bool)
	case criteria.OpIsTruthy:
		if field.Bool {
			return ConditionOutcome{Passed: true}
		}
		return failClosed("field is false")
	case criteria.OpIsFalsy:
		if !field.Bool {
			return ConditionOutcome{Passed: true}
		}
		return failClosed("field is true")
	default:
		return failClosed("%v: %q for boolean condition", core.ErrUnknownOperator, cond.Operator)
	}
}

func evaluateList(cond criteria.Condition, field FieldValue) ConditionOutcome {
	if field.Kind != KindText {
		return failClosed("field %q is not text", cond.Field)
	}
	// Absent applicant attribute fails the condition; this is deliberately
	// asymmetric from the empty-allow-list wildcard, which relaxes the
	// criteria side, not the applicant side.
	if !field.Present {
		return failClosed("%v: %q", core.ErrMissingField, cond.Field)
	}

	member := contains(cond.Value.List, field.Text)
	switch cond.Operator {
	case criteria.OpIn, criteria.OpIncludes:
		if member {
			return ConditionOutcome{Passed: true}
		}
		return failClosed("%q not in %v", field.Text, cond.Value.List)
	case criteria.OpNotIn:
		if !member {
			return ConditionOutcome{Passed: true}
		}
		return failClosed("%q is in %v", field.Text, cond.Value.List)
	default:
		return failClosed("%v: %q for list condition", core.ErrUnknownOperator, cond.Operator)
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
