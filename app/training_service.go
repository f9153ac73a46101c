package app

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"scholarmatch/domain/core"
	"scholarmatch/domain/criteria"
	"scholarmatch/domain/model"
	rules "scholarmatch/internal/eligibility"
	"scholarmatch/internal/features"
	"scholarmatch/internal/training"
	"scholarmatch/ports"
)

// TrainingService rebuilds the per-offering and global models from the
// historical decision corpus. TrainAll works on a point-in-time snapshot of
// the corpus: decisions recorded after the snapshot land in the next run.
type TrainingService struct {
	decisions ports.DecisionRepository
	criteria  ports.CriteriaRepository
	store     ports.ModelStore
	trainer   *training.Trainer
	evaluator *rules.Evaluator
	extractor *features.Extractor
}

// NewTrainingService creates the batch-training orchestrator.
func NewTrainingService(
	decisions ports.DecisionRepository,
	criteria ports.CriteriaRepository,
	store ports.ModelStore,
	trainer *training.Trainer,
) *TrainingService {
	return &TrainingService{
		decisions: decisions,
		criteria:  criteria,
		store:     store,
		trainer:   trainer,
		evaluator: rules.NewEvaluator(),
		extractor: features.NewExtractor(),
	}
}

// TrainedScope reports one published model.
type TrainedScope struct {
	Scope      model.Scope             `json:"scope"`
	OfferingID core.OfferingID         `json:"offering_id,omitempty"`
	Samples    int                     `json:"samples"`
	Version    int                     `json:"version"`
	Metrics    model.ValidationMetrics `json:"metrics"`
}

// SkippedScope reports one scope left untrained, with the reason. Skips are
// expected outcomes (thin or degenerate corpora), not failures.
type SkippedScope struct {
	Scope      model.Scope     `json:"scope"`
	OfferingID core.OfferingID `json:"offering_id,omitempty"`
	Reason     string          `json:"reason"`
}

// TrainingReport summarizes one TrainAll run.
type TrainingReport struct {
	Trained []TrainedScope `json:"trained"`
	Skipped []SkippedScope `json:"skipped"`
}

// BuildSamples converts decision records into labeled training samples.
// Non-terminal decisions (pending, withdrawn) carry no outcome signal and are
// dropped. Feature vectors are rebuilt from the decision-time profile
// snapshot against the offering's current criteria.
func (s *TrainingService) BuildSamples(ctx context.Context, records []model.DecisionRecord) ([]model.TrainingSample, error) {
	criteriaCache := make(map[core.OfferingID]*criteria.Criteria)
	samples := make([]model.TrainingSample, 0, len(records))

	for _, record := range records {
		if !record.Status.IsTerminal() {
			continue
		}

		crit, ok := criteriaCache[record.OfferingID]
		if !ok {
			var err error
			crit, err = s.criteria.GetCriteria(ctx, record.OfferingID)
			if err != nil {
				return nil, fmt.Errorf("loading criteria for offering %s: %w", record.OfferingID, err)
			}
			criteriaCache[record.OfferingID] = crit
		}

		result := s.evaluator.Evaluate(&record.Profile, crit)
		label := 0.0
		if record.Status == model.StatusApproved {
			label = 1.0
		}
		samples = append(samples, model.TrainingSample{
			Features: s.extractor.Extract(&record.Profile, crit, result),
			Label:    label,
		})
	}
	return samples, nil
}

// TrainAll retrains every offering with enough terminal decisions, in
// parallel, then the global model on the pooled corpus. Each run writes only
// its own store entry, so parallel runs never contend on a model slot.
// Recoverable training failures (thin or single-class corpora) are recorded
// as skips; anything else aborts the run.
func (s *TrainingService) TrainAll(ctx context.Context) (*TrainingReport, error) {
	offerings, err := s.decisions.ListOfferings(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing offerings: %w", err)
	}

	report := &TrainingReport{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, offeringID := range offerings {
		offeringID := offeringID
		g.Go(func() error {
			outcome, skip, err := s.trainOffering(gctx, offeringID)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			if skip != nil {
				report.Skipped = append(report.Skipped, *skip)
			} else {
				report.Trained = append(report.Trained, *outcome)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	outcome, skip, err := s.trainGlobal(ctx)
	if err != nil {
		return nil, err
	}
	if skip != nil {
		report.Skipped = append(report.Skipped, *skip)
	} else {
		report.Trained = append(report.Trained, *outcome)
	}

	sortReport(report)
	return report, nil
}

func (s *TrainingService) trainOffering(ctx context.Context, offeringID core.OfferingID) (*TrainedScope, *SkippedScope, error) {
	records, err := s.decisions.ListDecisions(ctx, offeringID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing decisions for offering %s: %w", offeringID, err)
	}
	samples, err := s.BuildSamples(ctx, records)
	if err != nil {
		return nil, nil, err
	}

	weights, err := s.trainer.Train(ctx, samples, model.ScopeOffering, offeringID)
	if err != nil {
		if training.IsRecoverable(err) {
			return nil, &SkippedScope{Scope: model.ScopeOffering, OfferingID: offeringID, Reason: err.Error()}, nil
		}
		return nil, nil, fmt.Errorf("training offering %s: %w", offeringID, err)
	}

	weights.Version = s.nextVersion(ctx, model.ScopeOffering, offeringID)
	if err := s.store.PutOffering(ctx, offeringID, weights); err != nil {
		return nil, nil, fmt.Errorf("publishing offering model %s: %w", offeringID, err)
	}
	return &TrainedScope{
		Scope:      model.ScopeOffering,
		OfferingID: offeringID,
		Samples:    len(samples),
		Version:    weights.Version,
		Metrics:    weights.Metrics,
	}, nil, nil
}

func (s *TrainingService) trainGlobal(ctx context.Context) (*TrainedScope, *SkippedScope, error) {
	records, err := s.decisions.ListAllDecisions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing decision corpus: %w", err)
	}
	samples, err := s.BuildSamples(ctx, records)
	if err != nil {
		return nil, nil, err
	}

	weights, err := s.trainer.Train(ctx, samples, model.ScopeGlobal, "")
	if err != nil {
		if training.IsRecoverable(err) {
			return nil, &SkippedScope{Scope: model.ScopeGlobal, Reason: err.Error()}, nil
		}
		return nil, nil, fmt.Errorf("training global model: %w", err)
	}

	weights.Version = s.nextVersion(ctx, model.ScopeGlobal, "")
	if err := s.store.PutGlobal(ctx, weights); err != nil {
		return nil, nil, fmt.Errorf("publishing global model: %w", err)
	}
	return &TrainedScope{
		Scope:   model.ScopeGlobal,
		Samples: len(samples),
		Version: weights.Version,
		Metrics: weights.Metrics,
	}, nil, nil
}

// nextVersion bumps past the currently published model, or starts at 1.
func (s *TrainingService) nextVersion(ctx context.Context, scope model.Scope, offeringID core.OfferingID) int {
	var current *model.Weights
	var err error
	if scope == model.ScopeOffering {
		current, err = s.store.GetOffering(ctx, offeringID)
	} else {
		current, err = s.store.GetGlobal(ctx)
	}
	if err != nil || current == nil {
		return 1
	}
	return current.Version + 1
}

// sortReport fixes the report order: offerings alphabetically, global last.
// TrainAll's parallelism would otherwise make the order run-dependent.
func sortReport(report *TrainingReport) {
	sort.Slice(report.Trained, func(i, j int) bool {
		if report.Trained[i].Scope != report.Trained[j].Scope {
			return report.Trained[i].Scope == model.ScopeOffering
		}
		return report.Trained[i].OfferingID < report.Trained[j].OfferingID
	})
	sort.Slice(report.Skipped, func(i, j int) bool {
		if report.Skipped[i].Scope != report.Skipped[j].Scope {
			return report.Skipped[i].Scope == model.ScopeOffering
		}
		return report.Skipped[i].OfferingID < report.Skipped[j].OfferingID
	})
}
