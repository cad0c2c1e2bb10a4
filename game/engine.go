// Package game orchestrates the simulation: settings snapshots, the tick
// pipeline, frame scheduling, and the hookup to rendering and recording.
package game

import (
	"math/rand"
	"time"

	"github.com/pthm-cable/flux/components"
	"github.com/pthm-cable/flux/systems"
	"github.com/pthm-cable/flux/telemetry"
)

// morphExemptStride reserves every Nth particle as ambient background
// motion, so a glyph never absorbs the whole cloud.
const morphExemptStride = 5

// Engine owns the particle arena and the text-point set and advances them
// one tick at a time. One tick runs to completion before the next; nothing
// else mutates the arena. Settings changes are staged with Apply and
// consumed whole at the start of the next tick.
type Engine struct {
	rng   *rand.Rand
	arena *systems.ParticleSystem

	settings components.Settings
	pending  *components.Settings

	textPoints []components.TextPoint
	edges      []systems.Edge

	tick int64
	perf *telemetry.PerfCollector

	renderHook  func()
	captureHook func()
}

// New creates an engine for the initial settings snapshot. perfWindow is
// the rolling tick-timing window size.
func New(set components.Settings, perfWindow int) *Engine {
	e := &Engine{
		rng:      rand.New(rand.NewSource(seedOrNow(set.Seed))),
		arena:    systems.NewParticleSystem(),
		settings: set,
		perf:     telemetry.NewPerfCollector(perfWindow),
	}
	e.resample()
	return e
}

// seedOrNow falls back to wall clock when no seed is set. The seed is a
// re-randomization trigger, not a reproducibility guarantee.
func seedOrNow(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// Apply stages a settings snapshot. It takes effect at the start of the
// next tick, so a tick in flight never observes a torn update.
func (e *Engine) Apply(set components.Settings) {
	s := set
	e.pending = &s
}

// consumePending swaps in a staged snapshot and reacts to structural
// changes: resolution, style, or seed changes rebuild the arena from zero;
// text or resolution changes republish the text-point set wholesale.
func (e *Engine) consumePending() {
	if e.pending == nil {
		return
	}
	prev := e.settings
	e.settings = *e.pending
	e.pending = nil
	next := e.settings

	resized := next.Width != prev.Width || next.Height != prev.Height
	if resized || next.Style != prev.Style || next.Seed != prev.Seed {
		if next.Seed != prev.Seed {
			e.rng = rand.New(rand.NewSource(seedOrNow(next.Seed)))
		}
		e.arena.Reset()
	}
	if resized || next.Text != prev.Text {
		e.perf.StartPhase(telemetry.PhaseSample)
		e.resample()
	}
}

// resample replaces the text-point set atomically: the old slice stays
// intact until the new one is assigned.
func (e *Engine) resample() {
	e.textPoints = systems.SampleText(e.settings.Text, e.settings.Width, e.settings.Height, e.rng)
}

// Step advances the simulation one tick: consume staged settings, reconcile
// the particle count, assign morph targets, run motion, recompute edges.
func (e *Engine) Step() {
	e.perf.StartTick()
	e.consumePending()
	set := e.settings
	w, h := float64(set.Width), float64(set.Height)

	e.perf.StartPhase(telemetry.PhaseReconcile)
	e.arena.Reconcile(set.ParticleCount, set.Style, w, h, e.rng)

	e.perf.StartPhase(telemetry.PhaseMorph)
	e.assignTargets()

	e.perf.StartPhase(telemetry.PhaseMotion)
	frame := systems.Frame{
		Width:  w,
		Height: h,
		Speed:  set.EffectiveSpeed(),
		Scale:  set.ScaleRatio(),
		Rand:   e.rng,
	}
	// A degenerate surface has no scale; rendering continues but motion
	// is a no-op rather than dividing by zero.
	if frame.Scale > 0 {
		model := systems.ForStyle(set.Style)
		for i := range e.arena.Particles {
			p := &e.arena.Particles[i]
			if p.HasTarget {
				systems.StepMorph(p, frame)
			} else {
				model.Step(p, frame)
			}
		}
	}

	e.perf.StartPhase(telemetry.PhaseConnections)
	if set.ConnectionsEnabled() {
		e.edges = systems.Connections(e.edges, e.arena.Particles, systems.EdgeLimit(set))
	} else {
		e.edges = e.edges[:0]
	}

	if e.renderHook != nil {
		e.perf.StartPhase(telemetry.PhaseRender)
		e.renderHook()
	}
	if e.captureHook != nil {
		e.perf.StartPhase(telemetry.PhaseCapture)
		e.captureHook()
	}

	e.perf.EndTick()
	e.tick++
}

// SetRenderHook registers the per-tick draw pass. It runs inside the tick,
// after motion and connections, so a frame always sees a consistent arena.
func (e *Engine) SetRenderHook(fn func()) {
	e.renderHook = fn
}

// SetCaptureHook registers the per-tick frame capture, run after rendering.
func (e *Engine) SetCaptureHook(fn func()) {
	e.captureHook = fn
}

// assignTargets partitions particles between glyph targets and ambient
// motion for this tick. Every morphExemptStride-th particle stays ambient
// even while text is active; with no text points, nothing morphs.
func (e *Engine) assignTargets() {
	pts := e.textPoints
	for i := range e.arena.Particles {
		p := &e.arena.Particles[i]
		if len(pts) == 0 || i%morphExemptStride == 0 {
			p.HasTarget = false
			continue
		}
		t := pts[i%len(pts)]
		p.TargetX, p.TargetY, p.HasTarget = t.X, t.Y, true
	}
}

// Particles exposes the arena for rendering and tests.
func (e *Engine) Particles() []components.Particle {
	return e.arena.Particles
}

// Edges returns the proximity edges computed by the last Step.
func (e *Engine) Edges() []systems.Edge {
	return e.edges
}

// Settings returns the snapshot in effect for the last Step.
func (e *Engine) Settings() components.Settings {
	return e.settings
}

// TextPointCount returns the size of the current text-point set.
func (e *Engine) TextPointCount() int {
	return len(e.textPoints)
}

// Tick returns the number of completed ticks.
func (e *Engine) Tick() int64 {
	return e.tick
}

// Perf returns the engine's timing collector.
func (e *Engine) Perf() *telemetry.PerfCollector {
	return e.perf
}
