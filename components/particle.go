// Package components defines the data types shared by the simulation systems.
package components

// Particle is a single simulated entity. Position is in surface coordinates
// and may transiently leave the surface bounds; the motion models wrap or
// reset it. Depth Z is strictly positive for the particle's whole lifetime
// and drives inverse-scaled opacity and size: smaller Z reads as closer,
// larger and more opaque.
type Particle struct {
	X, Y float64
	Z    float64 // depth, > 0

	VX, VY float64
	Size   float64

	// Polar state, used only by the vortex model.
	Angle  float64
	Radius float64

	// Morph target. Both coordinates are meaningful only when HasTarget
	// is set; the morph override supersedes the style update that tick.
	TargetX, TargetY float64
	HasTarget        bool
}

// TextPoint is one sampled glyph point in output surface coordinates.
// The full point set is replaced wholesale whenever text or resolution
// changes; it is never mutated in place.
type TextPoint struct {
	X, Y float64
}
