// Package memory provides the in-process model store used by tests and
// single-node deployments without a database.
package memory

import (
	"context"
	"fmt"
	"sync"

	"scholarmatch/domain/core"
	"scholarmatch/domain/model"
)

// ModelStore keeps the current weights per offering plus the global model in
// a mutex-guarded map. Stored values are immutable by contract: Put swaps the
// reference, so a reader holding an old *model.Weights keeps a consistent
// snapshot while new predictions pick up the replacement.
type ModelStore struct {
	mu        sync.RWMutex
	offerings map[core.OfferingID]*model.Weights
	global    *model.Weights
}

// NewModelStore creates an empty store.
func NewModelStore() *ModelStore {
	return &ModelStore{
		offerings: make(map[core.OfferingID]*model.Weights),
	}
}

// GetOffering returns the offering's current model.
func (s *ModelStore) GetOffering(_ context.Context, offeringID core.OfferingID) (*model.Weights, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	weights, ok := s.offerings[offeringID]
	if !ok {
		return nil, fmt.Errorf("%w: offering %s", core.ErrModelNotFound, offeringID)
	}
	return weights, nil
}

// GetGlobal returns the current pooled model.
func (s *ModelStore) GetGlobal(_ context.Context) (*model.Weights, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.global == nil {
		return nil, fmt.Errorf("%w: global", core.ErrModelNotFound)
	}
	return s.global, nil
}

// PutOffering atomically replaces the offering's model.
func (s *ModelStore) PutOffering(_ context.Context, offeringID core.OfferingID, weights *model.Weights) error {
	if weights == nil {
		return fmt.Errorf("refusing to store nil weights for offering %s", offeringID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offerings[offeringID] = weights
	return nil
}

// PutGlobal atomically replaces the pooled model.
func (s *ModelStore) PutGlobal(_ context.Context, weights *model.Weights) error {
	if weights == nil {
		return fmt.Errorf("refusing to store nil weights for global scope")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.global = weights
	return nil
}
