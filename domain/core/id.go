package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	OfferingID   ID
	ApplicantID  ID
	DecisionID   ID
	ConditionID  ID
	EvaluationID ID
)

// String conversions for domain IDs
func (id OfferingID) String() string   { return ID(id).String() }
func (id ApplicantID) String() string  { return ID(id).String() }
func (id DecisionID) String() string   { return ID(id).String() }
func (id ConditionID) String() string  { return ID(id).String() }
func (id EvaluationID) String() string { return ID(id).String() }

// IsEmpty checks if the offering ID is empty
func (id OfferingID) IsEmpty() bool { return ID(id).IsEmpty() }

// ParseOfferingID parses a string into OfferingID
func ParseOfferingID(s string) (OfferingID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("offering ID cannot be empty")
	}
	return OfferingID(s), nil
}

// ParseApplicantID parses a string into ApplicantID
func ParseApplicantID(s string) (ApplicantID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("applicant ID cannot be empty")
	}
	return ApplicantID(s), nil
}
