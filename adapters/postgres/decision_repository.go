package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"scholarmatch/domain/applicant"
	"scholarmatch/domain/core"
	"scholarmatch/domain/criteria"
	"scholarmatch/domain/model"
)

// DecisionRepository reads the historical decision corpus. Non-terminal
// statuses are filtered server-side so the trainer never pages through
// pending applications. Every list call materializes fresh rows, giving the
// caller the point-in-time snapshot the training contract requires.
type DecisionRepository struct {
	db *sqlx.DB
}

// NewDecisionRepository creates the repository over an open connection pool.
func NewDecisionRepository(db *sqlx.DB) *DecisionRepository {
	return &DecisionRepository{db: db}
}

type decisionRow struct {
	DecisionID string       `db:"decision_id"`
	OfferingID string       `db:"offering_id"`
	Profile    []byte       `db:"profile"`
	Status     string       `db:"status"`
	DecidedAt  sql.NullTime `db:"decided_at"`
}

const selectDecisions = `
SELECT decision_id, offering_id, profile, status, decided_at
FROM decisions
WHERE status IN ('approved', 'rejected')`

// ListDecisions returns every terminal decision for one offering.
func (r *DecisionRepository) ListDecisions(ctx context.Context, offeringID core.OfferingID) ([]model.DecisionRecord, error) {
	var rows []decisionRow
	err := r.db.SelectContext(ctx, &rows, selectDecisions+` AND offering_id = $1 ORDER BY decided_at`, offeringID.String())
	if err != nil {
		return nil, fmt.Errorf("listing decisions for offering %s: %w", offeringID, err)
	}
	return mapDecisions(rows)
}

// ListAllDecisions returns the full terminal corpus across offerings.
func (r *DecisionRepository) ListAllDecisions(ctx context.Context) ([]model.DecisionRecord, error) {
	var rows []decisionRow
	err := r.db.SelectContext(ctx, &rows, selectDecisions+` ORDER BY decided_at`)
	if err != nil {
		return nil, fmt.Errorf("listing decision corpus: %w", err)
	}
	return mapDecisions(rows)
}

// ListOfferings enumerates offerings holding at least one terminal decision.
func (r *DecisionRepository) ListOfferings(ctx context.Context) ([]core.OfferingID, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids,
		`SELECT DISTINCT offering_id FROM decisions WHERE status IN ('approved', 'rejected') ORDER BY offering_id`)
	if err != nil {
		return nil, fmt.Errorf("listing offerings: %w", err)
	}
	out := make([]core.OfferingID, len(ids))
	for i, id := range ids {
		out[i] = core.OfferingID(id)
	}
	return out, nil
}

func mapDecisions(rows []decisionRow) ([]model.DecisionRecord, error) {
	records := make([]model.DecisionRecord, 0, len(rows))
	for _, row := range rows {
		var profile applicant.Profile
		if err := json.Unmarshal(row.Profile, &profile); err != nil {
			return nil, fmt.Errorf("decoding profile for decision %s: %w", row.DecisionID, err)
		}
		record := model.DecisionRecord{
			DecisionID: core.DecisionID(row.DecisionID),
			OfferingID: core.OfferingID(row.OfferingID),
			Profile:    profile,
			Status:     model.DecisionStatus(row.Status),
		}
		if row.DecidedAt.Valid {
			record.DecidedAt = core.NewTimestamp(row.DecidedAt.Time)
		}
		records = append(records, record)
	}
	return records, nil
}

// CriteriaRepository resolves the stored rule set per offering. Criteria are
// one JSONB document per offering, written by the admin surface this engine
// does not own.
type CriteriaRepository struct {
	db *sqlx.DB
}

// NewCriteriaRepository creates the repository over an open connection pool.
func NewCriteriaRepository(db *sqlx.DB) *CriteriaRepository {
	return &CriteriaRepository{db: db}
}

// GetCriteria loads one offering's rule set.
func (r *CriteriaRepository) GetCriteria(ctx context.Context, offeringID core.OfferingID) (*criteria.Criteria, error) {
	var payload []byte
	err := r.db.GetContext(ctx, &payload,
		`SELECT criteria FROM offering_criteria WHERE offering_id = $1`, offeringID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %s", core.ErrOfferingNotFound, offeringID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying criteria for offering %s: %w", offeringID, err)
	}

	var crit criteria.Criteria
	if err := json.Unmarshal(payload, &crit); err != nil {
		return nil, fmt.Errorf("decoding criteria for offering %s: %w", offeringID, err)
	}
	crit.OfferingID = offeringID
	return &crit, nil
}
