package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"scholarmatch/domain/core"
	"scholarmatch/domain/model"
	"scholarmatch/internal/testkit"
)

type mockModelStore struct {
	mock.Mock
}

func (m *mockModelStore) GetOffering(ctx context.Context, offeringID core.OfferingID) (*model.Weights, error) {
	args := m.Called(ctx, offeringID)
	if w := args.Get(0); w != nil {
		return w.(*model.Weights), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockModelStore) GetGlobal(ctx context.Context) (*model.Weights, error) {
	args := m.Called(ctx)
	if w := args.Get(0); w != nil {
		return w.(*model.Weights), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockModelStore) PutOffering(ctx context.Context, offeringID core.OfferingID, weights *model.Weights) error {
	return m.Called(ctx, offeringID, weights).Error(0)
}

func (m *mockModelStore) PutGlobal(ctx context.Context, weights *model.Weights) error {
	return m.Called(ctx, weights).Error(0)
}

func offeringWeights(offeringID core.OfferingID, version int) *model.Weights {
	w := model.FallbackWeights()
	w.Scope = model.ScopeOffering
	w.OfferingID = offeringID
	w.Version = version
	w.Fallback = false
	return w
}

func TestPredictPrefersOfferingModel(t *testing.T) {
	offeringID := core.OfferingID("offering-1")
	store := new(mockModelStore)
	store.On("GetOffering", mock.Anything, offeringID).Return(offeringWeights(offeringID, 4), nil)

	svc := NewPredictionService(store)
	assessment, err := svc.Predict(context.Background(), testkit.Profile(), testkit.Criteria(offeringID))
	require.NoError(t, err)

	assert.Equal(t, model.ScopeOffering, assessment.Prediction.ModelScope)
	assert.Equal(t, 4, assessment.Prediction.ModelVersion)
	assert.NotEqual(t, model.ConfidenceLow, assessment.Prediction.Confidence)
	store.AssertNotCalled(t, "GetGlobal", mock.Anything)
}

func TestPredictFallsBackToGlobalModel(t *testing.T) {
	offeringID := core.OfferingID("offering-1")
	global := model.FallbackWeights()
	global.Fallback = false
	global.Version = 2

	store := new(mockModelStore)
	store.On("GetOffering", mock.Anything, offeringID).Return(nil, core.ErrModelNotFound)
	store.On("GetGlobal", mock.Anything).Return(global, nil)

	svc := NewPredictionService(store)
	assessment, err := svc.Predict(context.Background(), testkit.Profile(), testkit.Criteria(offeringID))
	require.NoError(t, err)

	assert.Equal(t, model.ScopeGlobal, assessment.Prediction.ModelScope)
	assert.Equal(t, 2, assessment.Prediction.ModelVersion)
}

func TestPredictFallsBackToDomainVector(t *testing.T) {
	offeringID := core.OfferingID("offering-1")
	store := new(mockModelStore)
	store.On("GetOffering", mock.Anything, offeringID).Return(nil, core.ErrModelNotFound)
	store.On("GetGlobal", mock.Anything).Return(nil, core.ErrModelNotFound)

	svc := NewPredictionService(store)
	assessment, err := svc.Predict(context.Background(), testkit.Profile(), testkit.Criteria(offeringID))
	require.NoError(t, err)

	assert.Equal(t, model.ConfidenceLow, assessment.Prediction.Confidence,
		"fallback-vector predictions must report low confidence")
	assert.Equal(t, model.ScopeGlobal, assessment.Prediction.ModelScope)
}

func TestPredictPropagatesStoreFailure(t *testing.T) {
	offeringID := core.OfferingID("offering-1")
	storeErr := errors.New("connection refused")
	store := new(mockModelStore)
	store.On("GetOffering", mock.Anything, offeringID).Return(nil, storeErr)

	svc := NewPredictionService(store)
	_, err := svc.Predict(context.Background(), testkit.Profile(), testkit.Criteria(offeringID))
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr, "non-miss store failures must not silently fall back")
}

func TestPredictCarriesEligibilityReport(t *testing.T) {
	offeringID := core.OfferingID("offering-1")
	store := new(mockModelStore)
	store.On("GetOffering", mock.Anything, offeringID).Return(nil, core.ErrModelNotFound)
	store.On("GetGlobal", mock.Anything).Return(nil, core.ErrModelNotFound)

	svc := NewPredictionService(store)
	assessment, err := svc.Predict(context.Background(), testkit.Profile(), testkit.Criteria(offeringID))
	require.NoError(t, err)

	require.NotNil(t, assessment.Eligibility)
	assert.True(t, assessment.Eligibility.IsEligible, "fixture profile passes the fixture criteria")
	assert.NotEmpty(t, assessment.Eligibility.Checks)
}
