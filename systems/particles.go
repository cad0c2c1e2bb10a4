package systems

import (
	"math/rand"

	"github.com/pthm-cable/flux/components"
)

// ParticleSystem owns the particle arena. Particles are addressed by index;
// growth appends, shrink truncates the highest indices, and a structural
// change (resolution, style, seed) rebuilds the arena from zero.
type ParticleSystem struct {
	Particles []components.Particle
}

// NewParticleSystem creates an empty particle arena.
func NewParticleSystem() *ParticleSystem {
	return &ParticleSystem{}
}

// NewParticle constructs one particle for the given style. Position is
// uniform over the surface; depth and size use the common ranges unless the
// style's Spawn overrides them (bokeh compresses depth and enlarges size).
func NewParticle(style components.Style, w, h float64, rng *rand.Rand) components.Particle {
	p := components.Particle{
		X:    rng.Float64() * w,
		Y:    rng.Float64() * h,
		Z:    0.5 + rng.Float64()*2.0,
		Size: 1 + rng.Float64()*3,
	}
	ForStyle(style).Spawn(&p, w, h, rng)
	return p
}

// Reconcile grows or shrinks the arena toward target without touching
// unaffected particles. Negative targets clamp to zero. Newly appended
// particles are seeded with the current style's spawn rule; existing
// particles keep whatever velocity state they were built with.
func (s *ParticleSystem) Reconcile(target int, style components.Style, w, h float64, rng *rand.Rand) {
	if target < 0 {
		target = 0
	}
	switch {
	case len(s.Particles) > target:
		s.Particles = s.Particles[:target]
	case len(s.Particles) < target:
		for len(s.Particles) < target {
			s.Particles = append(s.Particles, NewParticle(style, w, h, rng))
		}
	}
}

// Reset discards the whole arena. The next Reconcile rebuilds it fresh.
func (s *ParticleSystem) Reset() {
	s.Particles = s.Particles[:0]
}

// Count returns the number of live particles.
func (s *ParticleSystem) Count() int {
	return len(s.Particles)
}
