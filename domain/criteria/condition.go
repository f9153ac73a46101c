package criteria

import (
	"encoding/json"
	"fmt"

	"scholarmatch/domain/core"
)

// ConditionType selects the evaluation family for a custom condition.
type ConditionType string

const (
	ConditionRange   ConditionType = "range"
	ConditionBoolean ConditionType = "boolean"
	ConditionList    ConditionType = "list"
)

// Operator is the comparison applied within a condition type.
type Operator string

const (
	// range operators
	OpLT      Operator = "lt"
	OpLTE     Operator = "lte"
	OpGT      Operator = "gt"
	OpGTE     Operator = "gte"
	OpEQ      Operator = "eq"
	OpBetween Operator = "between"

	// boolean operators
	OpIs       Operator = "is"
	OpIsNot    Operator = "isNot"
	OpIsTruthy Operator = "isTruthy"
	OpIsFalsy  Operator = "isFalsy"

	// list operators
	OpIn       Operator = "in"
	OpNotIn    Operator = "notIn"
	OpIncludes Operator = "includes"
)

// Importance controls whether a failing condition gates eligibility.
// Only required conditions flip the overall verdict; preferred and optional
// ones are recorded in the result but never gate.
type Importance string

const (
	ImportanceRequired  Importance = "required"
	ImportancePreferred Importance = "preferred"
	ImportanceOptional  Importance = "optional"
)

// Gates reports whether a failing condition at this importance level makes
// the applicant ineligible.
func (i Importance) Gates() bool { return i == ImportanceRequired }

// Condition is one admin-authored rule against a named applicant field.
type Condition struct {
	ID         core.ConditionID `json:"id"`
	Name       string           `json:"name"`
	Type       ConditionType    `json:"type"`
	Field      string           `json:"field"`
	Operator   Operator         `json:"operator"`
	Value      Value            `json:"value"`
	Importance Importance       `json:"importance"`
	IsActive   bool             `json:"is_active"`
}

// ValueRange is the inclusive bound pair used by the between operator.
type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Value is the tagged union a condition compares against. Exactly one variant
// is set, keyed by the condition type: Number or Range for range conditions,
// Bool for boolean conditions, List for list conditions.
type Value struct {
	Number *float64
	Range  *ValueRange
	Bool   *bool
	List   []string
}

// Variant constructors

func NumberValue(v float64) Value       { return Value{Number: &v} }
func RangeValue(min, max float64) Value { return Value{Range: &ValueRange{Min: min, Max: max}} }
func BoolValue(b bool) Value            { return Value{Bool: &b} }
func ListValue(items ...string) Value   { return Value{List: items} }

// IsZero reports whether no variant is set.
func (v Value) IsZero() bool {
	return v.Number == nil && v.Range == nil && v.Bool == nil && v.List == nil
}

// MarshalJSON encodes the set variant as its natural JSON shape: a number,
// a {"min","max"} object, a bool, or an array of strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.Number != nil:
		return json.Marshal(*v.Number)
	case v.Range != nil:
		return json.Marshal(*v.Range)
	case v.Bool != nil:
		return json.Marshal(*v.Bool)
	case v.List != nil:
		return json.Marshal(v.List)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes whichever variant the payload carries. Admin-authored
// conditions arrive as untyped JSON, so the decoder sniffs the shape rather
// than trusting a declared type.
func (v *Value) UnmarshalJSON(data []byte) error {
	*v = Value{}

	var probe interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	switch raw := probe.(type) {
	case nil:
		return nil
	case float64:
		v.Number = &raw
		return nil
	case bool:
		v.Bool = &raw
		return nil
	case []interface{}:
		list := make([]string, 0, len(raw))
		for _, item := range raw {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("condition list value must contain strings, got %T", item)
			}
			list = append(list, s)
		}
		v.List = list
		return nil
	case map[string]interface{}:
		var r ValueRange
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		v.Range = &r
		return nil
	default:
		return fmt.Errorf("unsupported condition value shape %T", probe)
	}
}

// MatchesType reports whether the set variant is legal for the given
// condition type. Range conditions accept a scalar or a {min,max} pair
// (between requires the pair).
func (v Value) MatchesType(t ConditionType) bool {
	switch t {
	case ConditionRange:
		return v.Number != nil || v.Range != nil
	case ConditionBoolean:
		return v.Bool != nil
	case ConditionList:
		return v.List != nil
	default:
		return false
	}
}
