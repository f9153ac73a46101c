package eligibility

import (
	"scholarmatch/domain/core"
	"scholarmatch/domain/criteria"
)

// CheckKind classifies which evaluation stage produced a check.
type CheckKind string

const (
	CheckRange   CheckKind = "range"
	CheckList    CheckKind = "list"
	CheckBoolean CheckKind = "boolean"
	CheckCustom  CheckKind = "custom"
)

// Check is one per-criterion verdict. Evaluation is exhaustive, so a result
// carries a Check for every criterion the rule set defines, passed or not.
type Check struct {
	Name           string              `json:"name"`
	Kind           CheckKind           `json:"kind"`
	Passed         bool                `json:"passed"`
	ApplicantValue string              `json:"applicant_value"`
	Diagnostic     string              `json:"diagnostic,omitempty"`
	Importance     criteria.Importance `json:"importance,omitempty"` // custom checks only
}

// Gating reports whether this check participates in the overall verdict.
// Hard constraints and exclusions always gate; custom checks gate only at
// required importance.
func (c Check) Gating() bool {
	if c.Kind != CheckCustom {
		return true
	}
	return c.Importance.Gates()
}

// StageSummary aggregates one evaluation stage.
type StageSummary struct {
	Passed int  `json:"passed"`
	Failed int  `json:"failed"`
	OK     bool `json:"ok"`
}

// StageBreakdown explains which stage failed an ineligible applicant.
type StageBreakdown struct {
	HardConstraints  StageSummary `json:"hard_constraints"`  // range + list criteria
	Exclusions       StageSummary `json:"exclusions"`        // boolean "must not have" flags
	CustomConditions StageSummary `json:"custom_conditions"` // required-importance only
}

// Result is the full eligibility report for one (profile, criteria) pair.
// Created fresh per evaluation and never persisted by the engine.
type Result struct {
	EvaluationID core.EvaluationID `json:"evaluation_id"`
	OfferingID   core.OfferingID   `json:"offering_id"`
	IsEligible   bool              `json:"is_eligible"`
	Checks       []Check           `json:"checks"`
	Stages       StageBreakdown    `json:"stages"`
	EvaluatedAt  core.Timestamp    `json:"evaluated_at"`
}

// FailedChecks returns the checks that did not pass, gating or not.
func (r *Result) FailedChecks() []Check {
	failed := make([]Check, 0)
	for _, c := range r.Checks {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

// PassRate returns the fraction of all evaluated criteria that passed,
// independent of the hard-fail gate. Inactive conditions never appear in
// Checks, so they do not dilute the rate.
func (r *Result) PassRate() float64 {
	if len(r.Checks) == 0 {
		return 1.0
	}
	passed := 0
	for _, c := range r.Checks {
		if c.Passed {
			passed++
		}
	}
	return float64(passed) / float64(len(r.Checks))
}

// GatingPassRate is like PassRate but restricted to gating checks (range,
// list, boolean, and required-importance custom conditions). This is the
// eligibility-percentage feature input: preferred and optional conditions
// are advisory and do not move it.
func (r *Result) GatingPassRate() float64 {
	total, passed := 0, 0
	for _, c := range r.Checks {
		if !c.Gating() {
			continue
		}
		total++
		if c.Passed {
			passed++
		}
	}
	if total == 0 {
		return 1.0
	}
	return float64(passed) / float64(total)
}
