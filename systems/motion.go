// Package systems provides the simulation logic: per-style motion models,
// particle reconciliation, the connection graph, and the text-field sampler.
package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/flux/components"
)

// wrapMargin is how far a particle may drift past the surface edge before
// the linear styles wrap it to the opposite side.
const wrapMargin = 50.0

// novaMargin is the reset boundary for the nova burst.
const novaMargin = 100.0

// morphJitter keeps a morphing cloud visually alive while it holds a glyph.
const morphJitter = 0.5

// Frame carries the per-tick values shared by all motion models.
type Frame struct {
	Width, Height float64
	Speed         float64 // speed multiplier x scale ratio
	Scale         float64 // output width / reference width
	Rand          *rand.Rand
}

// Model is one style's motion rule: a velocity/state seeding applied at
// particle construction and a per-tick position update.
type Model interface {
	Spawn(p *components.Particle, w, h float64, rng *rand.Rand)
	Step(p *components.Particle, f Frame)
}

var models = [...]Model{
	components.StyleNetwork: networkModel{},
	components.StyleBokeh:   bokehModel{},
	components.StyleMatrix:  matrixModel{},
	components.StyleVortex:  vortexModel{},
	components.StyleNova:    novaModel{},
}

// ForStyle returns the motion model for a style tag.
func ForStyle(style components.Style) Model {
	if int(style) < len(models) {
		return models[style]
	}
	return networkModel{}
}

// StepMorph eases a particle toward its assigned target, with small
// independent jitter on each axis, and pulls its depth toward 1.0.
// While a target is set this entirely replaces the style update.
func StepMorph(p *components.Particle, f Frame) {
	p.X += (p.TargetX-p.X)*0.05*f.Speed + (f.Rand.Float64()-0.5)*morphJitter*f.Scale
	p.Y += (p.TargetY-p.Y)*0.05*f.Speed + (f.Rand.Float64()-0.5)*morphJitter*f.Scale
	p.Z += (1.0 - p.Z) * 0.05
}

// wrapAxis brings a coordinate back inside [-wrapMargin, dim+wrapMargin],
// reappearing on the opposite side.
func wrapAxis(v *float64, dim float64) {
	if *v > dim+wrapMargin {
		*v = -wrapMargin
	} else if *v < -wrapMargin {
		*v = dim + wrapMargin
	}
}

// signedRange returns a value with magnitude in [lo, hi) and random sign.
func signedRange(rng *rand.Rand, lo, hi float64) float64 {
	v := lo + rng.Float64()*(hi-lo)
	if rng.Float64() < 0.5 {
		return -v
	}
	return v
}

// networkModel drifts particles linearly and wraps them on both axes.
type networkModel struct{}

func (networkModel) Spawn(p *components.Particle, w, h float64, rng *rand.Rand) {
	p.VX = signedRange(rng, 0.1, 0.6)
	p.VY = signedRange(rng, 0.1, 0.6)
}

func (networkModel) Step(p *components.Particle, f Frame) {
	p.X += p.VX * f.Speed
	p.Y += p.VY * f.Speed
	wrapAxis(&p.X, f.Width)
	wrapAxis(&p.Y, f.Height)
}

// bokehModel floats large near-field discs slowly upward. Vertical wrap is
// top-to-bottom only since the drift is upward.
type bokehModel struct{}

func (bokehModel) Spawn(p *components.Particle, w, h float64, rng *rand.Rand) {
	p.VX = (rng.Float64() - 0.5) * 0.2   // +-0.1 sideways drift
	p.VY = -(0.2 + rng.Float64()*0.5)    // upward
	p.Size = 5 + rng.Float64()*15        // larger discs
	p.Z = 0.5 + rng.Float64()*1.5        // compressed depth range
}

func (bokehModel) Step(p *components.Particle, f Frame) {
	p.X += p.VX * f.Speed
	p.Y += p.VY * f.Speed
	wrapAxis(&p.X, f.Width)
	if p.Y < -wrapMargin {
		p.Y = f.Height + wrapMargin
	}
}

// matrixModel rains particles straight down, fast.
type matrixModel struct{}

func (matrixModel) Spawn(p *components.Particle, w, h float64, rng *rand.Rand) {
	p.VX = 0
	p.VY = 2 + rng.Float64()*5
}

func (matrixModel) Step(p *components.Particle, f Frame) {
	p.Y += p.VY * f.Speed
	if p.Y > f.Height+wrapMargin {
		p.Y = -wrapMargin
	}
}

// vortexModel orbits particles around the surface center. Radius is fixed
// at spawn; deeper particles orbit slower.
type vortexModel struct{}

func (vortexModel) Spawn(p *components.Particle, w, h float64, rng *rand.Rand) {
	dx := p.X - w/2
	dy := p.Y - h/2
	p.Angle = math.Atan2(dy, dx)
	p.Radius = math.Hypot(dx, dy)
}

func (vortexModel) Step(p *components.Particle, f Frame) {
	p.Angle += 0.005 * f.Speed / p.Z
	p.X = f.Width/2 + math.Cos(p.Angle)*p.Radius
	p.Y = f.Height/2 + math.Sin(p.Angle)*p.Radius
}

// novaModel bursts particles outward from the center and resets them near
// the center once they leave the surface margin.
type novaModel struct{}

func (novaModel) Spawn(p *components.Particle, w, h float64, rng *rand.Rand) {
	p.VX = 0
	p.VY = 0
}

func (novaModel) Step(p *components.Particle, f Frame) {
	cx := f.Width / 2
	cy := f.Height / 2

	dx := p.X - cx
	dy := p.Y - cy
	dist := math.Hypot(dx, dy)
	if dist < 1e-9 {
		// Dead center has no outward direction; pick one.
		angle := f.Rand.Float64() * 2 * math.Pi
		dx, dy, dist = math.Cos(angle), math.Sin(angle), 1
	}

	p.X += dx / dist * 2 * f.Speed
	p.Y += dy / dist * 2 * f.Speed

	if p.X < -novaMargin || p.X > f.Width+novaMargin ||
		p.Y < -novaMargin || p.Y > f.Height+novaMargin {
		p.X = cx + (f.Rand.Float64()-0.5)*10
		p.Y = cy + (f.Rand.Float64()-0.5)*10
	}
}
