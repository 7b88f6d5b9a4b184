package util

import (
	"math/rand"
	"time"
)

// New returns a deterministic generator for seed. Seed 0 maps to 1.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}

// ResolveSeed returns seed unchanged, or a clock-derived seed when it is zero.
// Callers log the resolved value so a random arena can be replayed.
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
