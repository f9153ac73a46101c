package config

import (
	"os"
	"strconv"

	"scholarmatch/internal/errors"
)

// Config represents the complete engine configuration
type Config struct {
	Database DatabaseConfig
	Training TrainingConfig
	Import   ImportConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// TrainingConfig holds the model-fitting policy knobs. Defaults follow the
// documented constants; overriding them changes reproducibility, so the seed
// in particular should stay fixed across retrains of the same corpus.
type TrainingConfig struct {
	MinSamples     int
	LearningRate   float64
	MaxIterations  int
	ConvergenceTol float64
	L2Penalty      float64
	SplitRatio     float64
	ShuffleSeed    int64
}

// ImportConfig holds settings for the spreadsheet decision import.
type ImportConfig struct {
	XLSXPath string
	Sheet    string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Training: TrainingConfig{
			MinSamples:     getEnvIntOrDefault("TRAIN_MIN_SAMPLES", 10),
			LearningRate:   getEnvFloatOrDefault("TRAIN_LEARNING_RATE", 0.1),
			MaxIterations:  getEnvIntOrDefault("TRAIN_MAX_ITERATIONS", 1000),
			ConvergenceTol: getEnvFloatOrDefault("TRAIN_CONVERGENCE_TOL", 1e-6),
			L2Penalty:      getEnvFloatOrDefault("TRAIN_L2_PENALTY", 0),
			SplitRatio:     getEnvFloatOrDefault("TRAIN_SPLIT_RATIO", 0.8),
			ShuffleSeed:    int64(getEnvIntOrDefault("TRAIN_SHUFFLE_SEED", 42)),
		},
		Import: ImportConfig{
			XLSXPath: getEnvOrDefault("TRAINER_XLSX", ""),
			Sheet:    getEnvOrDefault("TRAINER_XLSX_SHEET", "decisions"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Database.URL == "" && cfg.Import.XLSXPath == "" {
		return errors.ConfigInvalid("either DATABASE_URL or TRAINER_XLSX is required")
	}
	if cfg.Training.MinSamples < 2 {
		return errors.ConfigInvalid("TRAIN_MIN_SAMPLES must be at least 2")
	}
	if cfg.Training.LearningRate <= 0 {
		return errors.ConfigInvalid("TRAIN_LEARNING_RATE must be positive")
	}
	if cfg.Training.SplitRatio <= 0 || cfg.Training.SplitRatio >= 1 {
		return errors.ConfigInvalid("TRAIN_SPLIT_RATIO must be inside (0,1)")
	}
	if cfg.Training.L2Penalty < 0 {
		return errors.ConfigInvalid("TRAIN_L2_PENALTY must not be negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
