package game

import "math/rand"

// Particle attribute ranges
const (
	particleSizeMin    = 2.0
	particleSizeMax    = 6.0
	particleSpeedMin   = 0.5
	particleSpeedMax   = 2.0
	particleOpacityMin = 0.3
	particleOpacityMax = 0.8
)

// Particle is one drifting point of the field. Position is stored as a
// percentage of the surface so a resize never needs to touch it.
type Particle struct {
	ID      int
	X, Y    float64 // percent of surface width/height
	Size    float64 // radius in pixels
	Speed   float64 // percentage points per frame, upward
	Opacity float64 // base alpha before damping
}

// Generate creates n particles with independent uniform attributes; n below
// zero yields none.
func Generate(n int, rng *rand.Rand) []Particle {
	particles := make([]Particle, max(n, 0))
	for i := range particles {
		particles[i] = Particle{
			ID:      i,
			X:       uniform(rng, 0, 100),
			Y:       uniform(rng, 0, 100),
			Size:    uniform(rng, particleSizeMin, particleSizeMax),
			Speed:   uniform(rng, particleSpeedMin, particleSpeedMax),
			Opacity: uniform(rng, particleOpacityMin, particleOpacityMax),
		}
	}
	return particles
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
