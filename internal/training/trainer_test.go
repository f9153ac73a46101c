package training

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"scholarmatch/adapters/rng"
	"scholarmatch/domain/core"
	"scholarmatch/domain/model"
	"scholarmatch/internal/config"
	"scholarmatch/internal/testkit"
)

func testConfig() config.TrainingConfig {
	return config.TrainingConfig{
		MinSamples:     10,
		LearningRate:   0.5,
		MaxIterations:  2000,
		ConvergenceTol: 1e-6,
		SplitRatio:     0.8,
		ShuffleSeed:    42,
	}
}

func truthModel() *model.Weights {
	return &model.Weights{
		Intercept: -2.0,
		Weights: map[string]float64{
			model.FeatureGWAScore:          3.5,
			model.FeatureIncomeScore:       1.5,
			model.FeatureYearLevelMatch:    0.4,
			model.FeatureAffiliationMatch:  0.3,
			model.FeatureCompletenessScore: 0.8,
			model.FeatureEligibilityPct:    1.2,
		},
		FeatureOrder: model.FeatureOrderV1,
	}
}

// TestTrainInsufficientData verifies the fallback trigger: below the sample
// threshold Train raises InsufficientDataError and returns no weights
func TestTrainInsufficientData(t *testing.T) {
	trainer := NewTrainer(testConfig(), rng.NewSeeded())
	samples := testkit.GenerateSamples(rand.New(rand.NewSource(1)), 9, truthModel())

	w, err := trainer.Train(context.Background(), samples, model.ScopeOffering, "offering-1")
	if w != nil {
		t.Fatal("Train must not return weights below the threshold")
	}
	if !core.IsInsufficientData(err) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	var ide *core.InsufficientDataError
	if !errors.As(err, &ide) {
		t.Fatal("error should carry the typed counts")
	}
	if ide.Got != 9 || ide.Need != 10 {
		t.Errorf("counts = %d/%d, want 9/10", ide.Got, ide.Need)
	}
}

// TestTrainRejectsSingleClassCorpus verifies a one-label corpus is refused
// instead of producing a degenerate model
func TestTrainRejectsSingleClassCorpus(t *testing.T) {
	samples := make([]model.TrainingSample, 20)
	for i := range samples {
		samples[i] = model.TrainingSample{
			Features: map[string]float64{model.FeatureGWAScore: float64(i) / 20},
			Label:    1.0,
		}
	}
	_, err := NewTrainer(testConfig(), rng.NewSeeded()).Train(context.Background(), samples, model.ScopeGlobal, "")
	if !errors.Is(err, core.ErrDegenerateLabels) {
		t.Fatalf("expected ErrDegenerateLabels, got %v", err)
	}
}

// TestTrainLearnsSeparableCorpus verifies gradient descent recovers a usable
// decision boundary on a linearly separable synthetic corpus
func TestTrainLearnsSeparableCorpus(t *testing.T) {
	truth := truthModel()
	samples := testkit.GenerateSamples(rand.New(rand.NewSource(7)), 400, truth)

	w, err := NewTrainer(testConfig(), rng.NewSeeded()).Train(context.Background(), samples, model.ScopeGlobal, "")
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	if w.Metrics.Accuracy < 0.9 {
		t.Errorf("held-out accuracy = %f, want >= 0.9 on separable data", w.Metrics.Accuracy)
	}
	if w.Metrics.F1 <= 0 {
		t.Errorf("F1 = %f, want positive", w.Metrics.F1)
	}
	if w.TrainingSize != 320 {
		t.Errorf("TrainingSize = %d, want 320 (80%% of 400)", w.TrainingSize)
	}
	if w.Metrics.TestSize != 80 {
		t.Errorf("TestSize = %d, want 80", w.Metrics.TestSize)
	}
	if w.Scope != model.ScopeGlobal {
		t.Errorf("Scope = %s, want global", w.Scope)
	}
	if w.Fallback {
		t.Error("trained weights must not be marked fallback")
	}
	if len(w.FeatureOrder) != len(model.FeatureOrderV1) {
		t.Errorf("FeatureOrder length = %d, want %d", len(w.FeatureOrder), len(model.FeatureOrderV1))
	}

	// the dominant truth feature should come out with the largest weight
	largest := ""
	largestW := math.Inf(-1)
	for name, weight := range w.Weights {
		if weight > largestW {
			largest, largestW = name, weight
		}
	}
	if largest != model.FeatureGWAScore {
		t.Errorf("dominant learned weight = %s (%f), want %s", largest, largestW, model.FeatureGWAScore)
	}
}

// TestTrainIsDeterministic verifies identical corpus and seed reproduce
// identical weights
func TestTrainIsDeterministic(t *testing.T) {
	samples := testkit.GenerateSamples(rand.New(rand.NewSource(11)), 100, truthModel())
	trainer := NewTrainer(testConfig(), rng.NewSeeded())

	a, err := trainer.Train(context.Background(), samples, model.ScopeOffering, "offering-1")
	if err != nil {
		t.Fatalf("first Train failed: %v", err)
	}
	b, err := trainer.Train(context.Background(), samples, model.ScopeOffering, "offering-1")
	if err != nil {
		t.Fatalf("second Train failed: %v", err)
	}

	if a.Intercept != b.Intercept {
		t.Errorf("intercepts differ: %f vs %f", a.Intercept, b.Intercept)
	}
	for name, wa := range a.Weights {
		if wb := b.Weights[name]; wa != wb {
			t.Errorf("weight %s differs: %f vs %f", name, wa, wb)
		}
	}
}

// TestL2PenaltyShrinksWeights verifies the optional penalty reduces weight
// magnitude without touching the intercept update rule
func TestL2PenaltyShrinksWeights(t *testing.T) {
	samples := testkit.GenerateSamples(rand.New(rand.NewSource(13)), 200, truthModel())

	plain, err := NewTrainer(testConfig(), rng.NewSeeded()).Train(context.Background(), samples, model.ScopeGlobal, "")
	if err != nil {
		t.Fatalf("unpenalized Train failed: %v", err)
	}

	cfg := testConfig()
	cfg.L2Penalty = 1.0
	penalized, err := NewTrainer(cfg, rng.NewSeeded()).Train(context.Background(), samples, model.ScopeGlobal, "")
	if err != nil {
		t.Fatalf("penalized Train failed: %v", err)
	}

	normOf := func(w *model.Weights) float64 {
		sum := 0.0
		for _, v := range w.Weights {
			sum += v * v
		}
		return math.Sqrt(sum)
	}
	if normOf(penalized) >= normOf(plain) {
		t.Errorf("L2 penalty should shrink the weight norm: %f vs %f", normOf(penalized), normOf(plain))
	}
}

// TestFeatureStatsRecorded verifies per-feature corpus statistics land on
// the trained model
func TestFeatureStatsRecorded(t *testing.T) {
	samples := testkit.GenerateSamples(rand.New(rand.NewSource(17)), 50, truthModel())
	w, err := NewTrainer(testConfig(), rng.NewSeeded()).Train(context.Background(), samples, model.ScopeGlobal, "")
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	for _, name := range model.FeatureOrderV1 {
		s, ok := w.FeatureStats[name]
		if !ok {
			t.Errorf("missing feature stats for %s", name)
			continue
		}
		if s.Min < 0 || s.Max > 1 || s.Min > s.Max {
			t.Errorf("stats for %s out of range: %+v", name, s)
		}
		if s.Mean < s.Min || s.Mean > s.Max {
			t.Errorf("mean for %s outside [min,max]: %+v", name, s)
		}
	}
}

// TestSplitDeterminism verifies the seeded split reproduces itself and keeps
// a non-empty held-out side
func TestSplitDeterminism(t *testing.T) {
	samples := testkit.GenerateSamples(rand.New(rand.NewSource(19)), 25, truthModel())

	a1, b1 := splitSamples(rand.New(rand.NewSource(42)), samples, 0.8)
	a2, b2 := splitSamples(rand.New(rand.NewSource(42)), samples, 0.8)
	if len(a1) != len(a2) || len(b1) != len(b2) {
		t.Fatalf("split sizes differ across identical seeds")
	}
	for i := range a1 {
		if a1[i].Label != a2[i].Label {
			t.Fatal("split order differs across identical seeds")
		}
	}
	if len(a1) != 20 || len(b1) != 5 {
		t.Errorf("split sizes = %d/%d, want 20/5", len(a1), len(b1))
	}

	// tiny corpus still keeps one sample on each side
	tiny := samples[:2]
	trainSide, testSide := splitSamples(rand.New(rand.NewSource(1)), tiny, 0.8)
	if len(trainSide) != 1 || len(testSide) != 1 {
		t.Errorf("tiny split = %d/%d, want 1/1", len(trainSide), len(testSide))
	}
}
