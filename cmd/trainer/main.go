// Command trainer runs one offline batch-training pass: it loads the
// historical decision corpus, retrains every qualifying offering model plus
// the global model, and publishes the results to the model store.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"scholarmatch/adapters/excel"
	"scholarmatch/adapters/memory"
	"scholarmatch/adapters/postgres"
	"scholarmatch/adapters/rng"
	"scholarmatch/app"
	"scholarmatch/internal/config"
	"scholarmatch/internal/training"
	"scholarmatch/ports"
)

func main() {
	// .env is a development convenience; absence is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("training run failed: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	decisions, criteria, store, err := buildCollaborators(cfg)
	if err != nil {
		return err
	}

	trainer := training.NewTrainer(cfg.Training, rng.NewSeeded())
	service := app.NewTrainingService(decisions, criteria, store, trainer)

	report, err := service.TrainAll(ctx)
	if err != nil {
		return err
	}

	for _, trained := range report.Trained {
		log.Printf("trained scope=%s offering=%s samples=%d version=%d accuracy=%.3f precision=%.3f recall=%.3f",
			trained.Scope, trained.OfferingID, trained.Samples, trained.Version,
			trained.Metrics.Accuracy, trained.Metrics.Precision, trained.Metrics.Recall)
	}
	for _, skipped := range report.Skipped {
		log.Printf("skipped scope=%s offering=%s reason=%q", skipped.Scope, skipped.OfferingID, skipped.Reason)
	}
	log.Printf("done: %d trained, %d skipped", len(report.Trained), len(report.Skipped))
	return nil
}

// buildCollaborators wires the decision source and the model store. A
// workbook path switches the corpus to spreadsheet import; the store stays on
// postgres whenever a database is configured.
func buildCollaborators(cfg *config.Config) (ports.DecisionRepository, ports.CriteriaRepository, ports.ModelStore, error) {
	if cfg.Import.XLSXPath != "" {
		corpus, err := excel.ReadWorkbook(cfg.Import.XLSXPath, cfg.Import.Sheet)
		if err != nil {
			return nil, nil, nil, err
		}
		if corpus.Skipped > 0 {
			log.Printf("workbook import skipped %d rows", corpus.Skipped)
		}
		repo := excel.NewRepository(corpus)

		if cfg.Database.URL != "" {
			pool, err := postgres.Open(cfg.Database.URL)
			if err != nil {
				return nil, nil, nil, err
			}
			return repo, repo, postgres.NewModelStore(pool), nil
		}
		log.Print("no database configured; publishing models to the in-process store for a dry run")
		return repo, repo, memory.NewModelStore(), nil
	}

	pool, err := postgres.Open(cfg.Database.URL)
	if err != nil {
		return nil, nil, nil, err
	}
	return postgres.NewDecisionRepository(pool),
		postgres.NewCriteriaRepository(pool),
		postgres.NewModelStore(pool),
		nil
}
