package core

import (
	"math/rand"
	"time"
)

// Rand is the random source consumed by level generation.
// *rand.Rand satisfies it; tests inject fixed sequences.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded source. A zero seed uses the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Uniform returns a value in [min, max) drawn from r.
func Uniform(r Rand, min, max float64) float64 {
	return Lerp(min, max, r.Float64())
}
