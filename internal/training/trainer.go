package training

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"scholarmatch/domain/core"
	"scholarmatch/domain/model"
	"scholarmatch/internal/config"
	"scholarmatch/ports"
)

// Trainer fits logistic-regression weights from labeled historical samples
// by batch gradient descent on the negative log-likelihood. Each Train call
// is an independent single-threaded computation; concurrent calls share no
// state beyond the read-only configuration.
type Trainer struct {
	cfg config.TrainingConfig
	rng ports.RNG
}

// NewTrainer creates a trainer with the supplied policy knobs.
func NewTrainer(cfg config.TrainingConfig, rng ports.RNG) *Trainer {
	return &Trainer{cfg: cfg, rng: rng}
}

// Train fits a model for the given scope. It returns InsufficientDataError
// below the sample threshold and ErrDegenerateLabels for single-class
// corpora; in both cases the caller falls back rather than publishing.
func (t *Trainer) Train(ctx context.Context, samples []model.TrainingSample, scope model.Scope, offeringID core.OfferingID) (*model.Weights, error) {
	if len(samples) < t.cfg.MinSamples {
		return nil, &core.InsufficientDataError{Got: len(samples), Need: t.cfg.MinSamples}
	}
	if singleClass(samples) {
		return nil, fmt.Errorf("%w: %d samples share one label", core.ErrDegenerateLabels, len(samples))
	}

	rng, err := t.rng.SeededStream(ctx, splitStreamName(scope, offeringID), t.cfg.ShuffleSeed)
	if err != nil {
		return nil, fmt.Errorf("seeding train/test split: %w", err)
	}
	trainSet, testSet := splitSamples(rng, samples, t.cfg.SplitRatio)
	if len(testSet) == 0 {
		return nil, core.ErrNoTestSplit
	}

	order := model.FeatureOrderV1
	x, y := matrixize(trainSet, order)
	intercept, weights := t.fit(x, y)

	cm := t.evaluate(testSet, order, intercept, weights)

	w := &model.Weights{
		Intercept:    intercept,
		Weights:      make(map[string]float64, len(order)),
		FeatureOrder: order,
		FeatureStats: featureStats(samples, order),
		TrainingSize: len(trainSet),
		Metrics:      model.ComputeMetrics(cm),
		TrainedAt:    core.Now(),
		Scope:        scope,
		OfferingID:   offeringID,
		Version:      1,
	}
	for j, name := range order {
		w.Weights[name] = weights[j]
	}
	return w, nil
}

// fit runs batch gradient descent with a fixed learning rate, stopping early
// when the gradient norm (weights and intercept jointly) drops under the
// convergence tolerance. The optional L2 penalty applies to feature weights
// only, never the intercept.
func (t *Trainer) fit(x [][]float64, y []float64) (intercept float64, weights []float64) {
	n := len(x)
	d := len(x[0])
	weights = make([]float64, d)
	grad := make([]float64, d)

	for iter := 0; iter < t.cfg.MaxIterations; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		gradB := 0.0

		for i := 0; i < n; i++ {
			err := model.Sigmoid(intercept+floats.Dot(weights, x[i])) - y[i]
			gradB += err
			floats.AddScaled(grad, err, x[i])
		}
		floats.Scale(1/float64(n), grad)
		gradB /= float64(n)

		if t.cfg.L2Penalty > 0 {
			floats.AddScaled(grad, t.cfg.L2Penalty, weights)
		}

		norm := math.Hypot(floats.Norm(grad, 2), gradB)
		if norm < t.cfg.ConvergenceTol {
			break
		}

		floats.AddScaled(weights, -t.cfg.LearningRate, grad)
		intercept -= t.cfg.LearningRate * gradB
	}
	return intercept, weights
}

// evaluate builds the held-out confusion matrix at the 0.5 threshold.
func (t *Trainer) evaluate(testSet []model.TrainingSample, order []string, intercept float64, weights []float64) model.ConfusionMatrix {
	var cm model.ConfusionMatrix
	for _, sample := range testSet {
		p := model.Sigmoid(intercept + floats.Dot(weights, vectorize(sample.Features, order)))
		predicted := p >= 0.5
		actual := sample.Label >= 0.5
		switch {
		case predicted && actual:
			cm.TruePositives++
		case predicted && !actual:
			cm.FalsePositives++
		case !predicted && actual:
			cm.FalseNegatives++
		default:
			cm.TrueNegatives++
		}
	}
	return cm
}

// featureStats records per-feature corpus statistics on the trained model
// for drift inspection.
func featureStats(samples []model.TrainingSample, order []string) map[string]model.FeatureSummary {
	out := make(map[string]model.FeatureSummary, len(order))
	column := make([]float64, len(samples))
	for _, name := range order {
		for i, s := range samples {
			column[i] = s.Features[name]
		}
		mean, _ := stats.Mean(column)
		stdDev, _ := stats.StandardDeviation(column)
		min, _ := stats.Min(column)
		max, _ := stats.Max(column)
		out[name] = model.FeatureSummary{Mean: mean, StdDev: stdDev, Min: min, Max: max}
	}
	return out
}

func matrixize(samples []model.TrainingSample, order []string) ([][]float64, []float64) {
	x := make([][]float64, len(samples))
	y := make([]float64, len(samples))
	for i, s := range samples {
		x[i] = vectorize(s.Features, order)
		y[i] = s.Label
	}
	return x, y
}

// vectorize lays a feature map out in the fixed training-time order; missing
// entries read as zero.
func vectorize(features map[string]float64, order []string) []float64 {
	v := make([]float64, len(order))
	for j, name := range order {
		v[j] = features[name]
	}
	return v
}

func singleClass(samples []model.TrainingSample) bool {
	first := samples[0].Label
	for _, s := range samples[1:] {
		if s.Label != first {
			return false
		}
	}
	return true
}

func splitStreamName(scope model.Scope, offeringID core.OfferingID) string {
	if scope == model.ScopeOffering {
		return "train_test_split:" + offeringID.String()
	}
	return "train_test_split:global"
}

// IsRecoverable reports training failures the caller handles by falling
// back to a broader model instead of surfacing an error.
func IsRecoverable(err error) bool {
	return core.IsInsufficientData(err) ||
		errors.Is(err, core.ErrDegenerateLabels) ||
		errors.Is(err, core.ErrNoTestSplit)
}
