package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flux/components"
	"github.com/pthm-cable/flux/systems"
)

// edgeAlpha attenuates connection lines on top of their per-pair opacity.
const edgeAlpha = 0.25

// Renderer paints the per-frame sequence onto a surface: trail fade first,
// then particles, then connection edges.
type Renderer struct {
	surface *Surface
}

// New creates a renderer targeting the given surface.
func New(surface *Surface) *Renderer {
	return &Renderer{surface: surface}
}

// Surface returns the render target.
func (r *Renderer) Surface() *Surface {
	return r.surface
}

// Clear fills the surface opaque black, discarding any trail.
func (r *Renderer) Clear() {
	r.surface.Begin()
	rl.ClearBackground(rl.Black)
	r.surface.End()
}

// fadeAlpha is the translucent fill strength that produces the trail:
// lower values keep longer trails.
func fadeAlpha(style components.Style) float64 {
	switch style {
	case components.StyleMatrix:
		return 0.1
	case components.StyleNova:
		return 0.2
	default:
		return 0.3
	}
}

// glowColor combines the theme glow with a computed opacity.
func glowColor(glow components.RGB, alpha float64) rl.Color {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	return rl.Color{R: glow.R, G: glow.G, B: glow.B, A: uint8(alpha * 255)}
}

// Frame composites one frame in strict order: trail fade, particles, edges.
func (r *Renderer) Frame(set components.Settings, particles []components.Particle, edges []systems.Edge) {
	w, h := r.surface.Size()

	r.surface.Begin()

	// Translucent fill instead of a full clear keeps prior frames as a
	// decaying trail.
	fade := fadeAlpha(set.Style)
	rl.DrawRectangle(0, 0, int32(w), int32(h), rl.Color{A: uint8(fade * 255)})

	for i := range particles {
		r.drawParticle(&particles[i], set)
	}

	for _, e := range edges {
		a := r.edgeColor(set, e.Opacity)
		p1 := &particles[e.I]
		p2 := &particles[e.J]
		rl.DrawLineV(
			rl.Vector2{X: float32(p1.X), Y: float32(p1.Y)},
			rl.Vector2{X: float32(p2.X), Y: float32(p2.Y)},
			a,
		)
	}

	r.surface.End()
}

func (r *Renderer) edgeColor(set components.Settings, opacity float64) rl.Color {
	return glowColor(set.Glow, opacity*edgeAlpha)
}

// drawParticle draws one particle with its style's primitive. Opacity is
// inverse depth, so near particles read brighter.
func (r *Renderer) drawParticle(p *components.Particle, set components.Settings) {
	opacity := 1 / p.Z
	pos := rl.Vector2{X: float32(p.X), Y: float32(p.Y)}

	switch set.Style {
	case components.StyleBokeh:
		// One large very faint disc.
		rl.DrawCircleV(pos, float32(p.Size/p.Z), glowColor(set.Glow, opacity*0.15))
	case components.StyleMatrix:
		// Vertical trail rectangle.
		rl.DrawRectangle(int32(p.X), int32(p.Y), 2, int32(p.Size*10/p.Z), glowColor(set.Glow, opacity))
	default:
		// Faint halo plus solid core stands in for a blur pass.
		rl.DrawCircleV(pos, float32(p.Size*4), glowColor(set.Glow, opacity*0.3))
		rl.DrawCircleV(pos, float32(p.Size), glowColor(set.Glow, opacity))
	}
}
