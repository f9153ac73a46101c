package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"scholarmatch/domain/core"
	"scholarmatch/domain/model"
)

// ModelStore persists one current weights row per (scope, offering). The
// whole model is one JSONB payload written by a single upsert statement, so a
// concurrent reader sees either the old model or the new one, never a blend.
type ModelStore struct {
	db *sqlx.DB
}

// NewModelStore creates the store over an open connection pool.
func NewModelStore(db *sqlx.DB) *ModelStore {
	return &ModelStore{db: db}
}

type weightsRow struct {
	Payload []byte `db:"payload"`
}

const selectWeights = `SELECT payload FROM model_weights WHERE scope = $1 AND offering_id = $2`

const upsertWeights = `
INSERT INTO model_weights (scope, offering_id, payload, version, trained_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (scope, offering_id)
DO UPDATE SET payload = EXCLUDED.payload, version = EXCLUDED.version, trained_at = EXCLUDED.trained_at`

// GetOffering returns the offering's current model.
func (s *ModelStore) GetOffering(ctx context.Context, offeringID core.OfferingID) (*model.Weights, error) {
	return s.get(ctx, model.ScopeOffering, offeringID)
}

// GetGlobal returns the current pooled model.
func (s *ModelStore) GetGlobal(ctx context.Context) (*model.Weights, error) {
	return s.get(ctx, model.ScopeGlobal, "")
}

func (s *ModelStore) get(ctx context.Context, scope model.Scope, offeringID core.OfferingID) (*model.Weights, error) {
	var row weightsRow
	err := s.db.GetContext(ctx, &row, selectWeights, string(scope), offeringID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: scope %s offering %q", core.ErrModelNotFound, scope, offeringID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s model: %w", scope, err)
	}

	var weights model.Weights
	if err := json.Unmarshal(row.Payload, &weights); err != nil {
		return nil, fmt.Errorf("decoding stored %s model: %w", scope, err)
	}
	return &weights, nil
}

// PutOffering replaces the offering's model in a single upsert.
func (s *ModelStore) PutOffering(ctx context.Context, offeringID core.OfferingID, weights *model.Weights) error {
	if offeringID.IsEmpty() {
		return fmt.Errorf("offering-scoped model requires an offering id")
	}
	return s.put(ctx, model.ScopeOffering, offeringID, weights)
}

// PutGlobal replaces the pooled model in a single upsert.
func (s *ModelStore) PutGlobal(ctx context.Context, weights *model.Weights) error {
	return s.put(ctx, model.ScopeGlobal, "", weights)
}

func (s *ModelStore) put(ctx context.Context, scope model.Scope, offeringID core.OfferingID, weights *model.Weights) error {
	if weights == nil {
		return fmt.Errorf("refusing to store nil weights for scope %s", scope)
	}
	payload, err := json.Marshal(weights)
	if err != nil {
		return fmt.Errorf("encoding %s model: %w", scope, err)
	}
	_, err = s.db.ExecContext(ctx, upsertWeights,
		string(scope), offeringID.String(), payload, weights.Version, weights.TrainedAt.Time())
	if err != nil {
		return fmt.Errorf("upserting %s model: %w", scope, err)
	}
	return nil
}
