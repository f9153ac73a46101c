package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrModelNotFound    = fmt.Errorf("%w: model weights", ErrNotFound)
	ErrOfferingNotFound = fmt.Errorf("%w: offering", ErrNotFound)
	ErrDecisionNotFound = fmt.Errorf("%w: decision record", ErrNotFound)

	// Evaluation errors (scoped to a single criterion, never abort a whole evaluation)
	ErrMissingField    = errors.New("applicant field absent")
	ErrUnknownField    = errors.New("unknown applicant field")
	ErrUnknownOperator = errors.New("unknown condition operator")
	ErrMalformedValue  = errors.New("condition value does not match condition type")

	// Training errors
	ErrInsufficientData = errors.New("insufficient training data")
	ErrNoTestSplit      = errors.New("held-out split is empty")
	ErrDegenerateLabels = errors.New("training labels are single-class")
)

// InsufficientDataError reports a training corpus below the policy threshold.
// Callers are expected to fall back to the domain-knowledge weight vector.
type InsufficientDataError struct {
	Got  int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%v: got %d samples, need %d", ErrInsufficientData, e.Got, e.Need)
}

func (e *InsufficientDataError) Unwrap() error { return ErrInsufficientData }

// NewNotFoundError constructs a not-found error with resource context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// NewConditionError scopes an evaluation error to a single custom condition
func NewConditionError(conditionID string, err error) error {
	return fmt.Errorf("condition %s: %w", conditionID, err)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsEvaluationError(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrUnknownField) ||
		errors.Is(err, ErrUnknownOperator) ||
		errors.Is(err, ErrMalformedValue)
}
