package ports

import (
	"context"

	"scholarmatch/domain/core"
	"scholarmatch/domain/model"
)

// ModelStore holds the most recently trained weights per offering plus the
// global fallback. Implementations publish new models by whole-value
// replacement: a reader must never observe a partially written weight
// vector. Stored *model.Weights values are immutable by contract.
type ModelStore interface {
	// GetOffering returns the current offering-scoped model, or an error
	// wrapping core.ErrModelNotFound when the offering has none.
	GetOffering(ctx context.Context, offeringID core.OfferingID) (*model.Weights, error)

	// GetGlobal returns the current pooled model, or an error wrapping
	// core.ErrModelNotFound when no global model has been trained yet.
	GetGlobal(ctx context.Context) (*model.Weights, error)

	// PutOffering atomically replaces the offering's model.
	PutOffering(ctx context.Context, offeringID core.OfferingID, weights *model.Weights) error

	// PutGlobal atomically replaces the pooled model.
	PutGlobal(ctx context.Context, weights *model.Weights) error
}
