// Package excel imports historical decision corpora from spreadsheets, the
// interchange format scholarship offices actually keep their archives in.
package excel

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"scholarmatch/domain/applicant"
	"scholarmatch/domain/core"
	"scholarmatch/domain/criteria"
	"scholarmatch/domain/model"
)

// criteriaSheet is the optional second sheet carrying one JSON rule set per
// offering. Workbooks without it fall back to wildcard criteria.
const criteriaSheet = "criteria"

// Corpus is the parsed content of one workbook.
type Corpus struct {
	Records  []model.DecisionRecord
	Criteria map[core.OfferingID]*criteria.Criteria
	// Skipped counts decision rows dropped for unknown status or missing
	// identifiers. A nonzero count is worth logging, not failing.
	Skipped int
}

// ReadWorkbook loads decisions from the named sheet. Column mapping is
// header-driven: the first row names the columns, order does not matter, and
// unrecognized headers are ignored.
func ReadWorkbook(path, sheet string) (*Corpus, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	columns := headerIndex(rows[0])
	corpus := &Corpus{Criteria: make(map[core.OfferingID]*criteria.Criteria)}

	for _, row := range rows[1:] {
		record, ok := mapRow(columns, row)
		if !ok {
			corpus.Skipped++
			continue
		}
		corpus.Records = append(corpus.Records, record)
	}

	if err := readCriteriaSheet(f, corpus); err != nil {
		return nil, err
	}
	return corpus, nil
}

// headerIndex maps normalized header names to column positions.
func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if key != "" {
			columns[key] = i
		}
	}
	return columns
}

func mapRow(columns map[string]int, row []string) (model.DecisionRecord, bool) {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	status := model.DecisionStatus(strings.ToLower(cell("status")))
	switch status {
	case model.StatusApproved, model.StatusRejected, model.StatusPending, model.StatusWithdrawn:
	default:
		return model.DecisionRecord{}, false
	}

	offeringID := cell("offering_id")
	if offeringID == "" {
		return model.DecisionRecord{}, false
	}

	decisionID := cell("decision_id")
	if decisionID == "" {
		decisionID = core.NewID().String()
	}

	profile := applicant.Profile{
		ApplicantID:    core.ApplicantID(cell("applicant_id")),
		GWA:            floatCell(cell("gwa")),
		Classification: cell("classification"),
		UnitsEnrolled:  intCell(cell("units_enrolled")),
		UnitsPassed:    intCell(cell("units_passed")),
		College:        cell("college"),
		Program:        cell("program"),
		Major:          cell("major"),
		AnnualIncome:   floatCell(cell("annual_income")),
		SubsidyBracket: cell("subsidy_bracket"),
		Province:       cell("province"),
		Citizenship:    cell("citizenship"),

		HasOtherScholarship:   boolCell(cell("has_other_scholarship")),
		HasResearchGrant:      boolCell(cell("has_research_grant")),
		HasDisciplinaryRecord: boolCell(cell("has_disciplinary_record")),
		HasFailingGrade:       boolCell(cell("has_failing_grade")),
		HasApprovedOutline:    boolCell(cell("has_approved_outline")),
		IsGraduating:          boolCell(cell("is_graduating")),

		Documents: documentsCell(cell("documents")),
	}

	return model.DecisionRecord{
		DecisionID: core.DecisionID(decisionID),
		OfferingID: core.OfferingID(offeringID),
		Profile:    profile,
		Status:     status,
	}, true
}

// readCriteriaSheet parses the optional per-offering rule sets. Each row is
// offering_id | criteria JSON.
func readCriteriaSheet(f *excelize.File, corpus *Corpus) error {
	rows, err := f.GetRows(criteriaSheet)
	if err != nil {
		// absent sheet means wildcard criteria everywhere
		return nil
	}
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		offeringID := core.OfferingID(strings.TrimSpace(row[0]))
		if offeringID.IsEmpty() {
			continue
		}
		var crit criteria.Criteria
		if err := json.Unmarshal([]byte(row[1]), &crit); err != nil {
			return fmt.Errorf("decoding criteria row %d for offering %s: %w", i+1, offeringID, err)
		}
		crit.OfferingID = offeringID
		corpus.Criteria[offeringID] = &crit
	}
	return nil
}

func floatCell(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func intCell(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func boolCell(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "1", "y":
		return true
	}
	return false
}

// documentsCell parses "transcript:yes;income_cert:no" style checklists.
func documentsCell(s string) map[string]bool {
	if s == "" {
		return nil
	}
	docs := make(map[string]bool)
	for _, part := range strings.Split(s, ";") {
		name, state, found := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !found {
			docs[name] = true
			continue
		}
		docs[name] = boolCell(strings.TrimSpace(state))
	}
	return docs
}
