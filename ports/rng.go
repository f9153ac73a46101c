package ports

import (
	"context"
	"math/rand"
)

// RNG provides seeded random number generation for deterministic operations.
// The train/test shuffle runs on a named stream so the same (name, seed)
// pair always reproduces the same split.
type RNG interface {
	// SeededStream creates a deterministic random number generator for a
	// named operation.
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)
}
