package training

import (
	"math/rand"

	"scholarmatch/domain/model"
)

// splitSamples shuffles a copy of the corpus with the supplied deterministic
// RNG and cuts it at the configured ratio. The held-out side always keeps at
// least one sample so validation metrics are never computed on nothing.
func splitSamples(rng *rand.Rand, samples []model.TrainingSample, ratio float64) (train, test []model.TrainingSample) {
	shuffled := make([]model.TrainingSample, len(samples))
	copy(shuffled, samples)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cut := int(ratio * float64(len(shuffled)))
	if cut >= len(shuffled) {
		cut = len(shuffled) - 1
	}
	if cut < 1 {
		cut = 1
	}
	return shuffled[:cut], shuffled[cut:]
}
