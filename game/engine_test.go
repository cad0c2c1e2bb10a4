package game

import (
	"testing"

	"github.com/pthm-cable/flux/components"
)

func testSettings() components.Settings {
	return components.Settings{
		Width:              1920,
		Height:             1080,
		Style:              components.StyleNetwork,
		ParticleCount:      50,
		Speed:              1.0,
		ConnectionDistance: 170,
		Seed:               42,
	}
}

func TestStepReconcilesCount(t *testing.T) {
	e := New(testSettings(), 16)
	e.Step()
	if got := len(e.Particles()); got != 50 {
		t.Fatalf("particle count = %d, want 50", got)
	}

	set := e.Settings()
	set.ParticleCount = 20
	e.Apply(set)
	e.Step()
	if got := len(e.Particles()); got != 20 {
		t.Fatalf("particle count after shrink = %d, want 20", got)
	}
}

func TestApplyTakesEffectNextTick(t *testing.T) {
	e := New(testSettings(), 16)
	e.Step()

	set := e.Settings()
	set.ParticleCount = 200
	e.Apply(set)
	// Not yet consumed.
	if got := e.Settings().ParticleCount; got != 50 {
		t.Fatalf("settings mutated before tick: count = %d", got)
	}
	e.Step()
	if got := e.Settings().ParticleCount; got != 200 {
		t.Fatalf("settings not consumed at tick start: count = %d", got)
	}
	if got := len(e.Particles()); got != 200 {
		t.Fatalf("particle count = %d, want 200", got)
	}
}

func TestApplyLastSnapshotWins(t *testing.T) {
	e := New(testSettings(), 16)
	for _, n := range []int{10, 70, 30} {
		set := testSettings()
		set.ParticleCount = n
		e.Apply(set)
	}
	e.Step()
	if got := len(e.Particles()); got != 30 {
		t.Fatalf("particle count = %d, want 30 from the last staged snapshot", got)
	}
}

func TestStyleChangeRebuildsArena(t *testing.T) {
	e := New(testSettings(), 16)
	e.Step()
	before := append([]components.Particle(nil), e.Particles()...)

	set := e.Settings()
	set.Style = components.StyleMatrix
	e.Apply(set)
	e.Step()

	after := e.Particles()
	if len(after) != len(before) {
		t.Fatalf("count changed across style switch: %d vs %d", len(after), len(before))
	}
	// Matrix spawns zero horizontal velocity everywhere; surviving network
	// velocities would betray a stale arena.
	for i, p := range after {
		if p.VX != 0 {
			t.Fatalf("particle %d kept vx = %v after style rebuild", i, p.VX)
		}
	}
}

func TestSeedChangeReseeds(t *testing.T) {
	run := func(seed int64) []components.Particle {
		set := testSettings()
		set.Seed = seed
		e := New(set, 16)
		e.Step()
		return append([]components.Particle(nil), e.Particles()...)
	}

	a := run(7)
	b := run(7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at particle %d", i)
		}
	}

	c := run(8)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical arenas")
	}
}

func TestTextEnablesMorphTargets(t *testing.T) {
	set := testSettings()
	set.Text = "HI"
	e := New(set, 16)
	if e.TextPointCount() == 0 {
		t.Fatal("no text points sampled")
	}
	e.Step()

	targeted, exempt := 0, 0
	for i, p := range e.Particles() {
		if i%morphExemptStride == 0 {
			if p.HasTarget {
				t.Fatalf("particle %d should be morph-exempt", i)
			}
			exempt++
		} else if p.HasTarget {
			targeted++
		}
	}
	if targeted == 0 || exempt == 0 {
		t.Fatalf("targeted = %d, exempt = %d; want both populations", targeted, exempt)
	}
}

func TestClearingTextDropsTargets(t *testing.T) {
	set := testSettings()
	set.Text = "HI"
	e := New(set, 16)
	e.Step()

	set = e.Settings()
	set.Text = ""
	e.Apply(set)
	e.Step()

	if e.TextPointCount() != 0 {
		t.Fatalf("text points linger: %d", e.TextPointCount())
	}
	for i, p := range e.Particles() {
		if p.HasTarget {
			t.Fatalf("particle %d kept a morph target after text cleared", i)
		}
	}
}

func TestEdgesRespectStyleGate(t *testing.T) {
	set := testSettings()
	set.ParticleCount = 200
	set.ConnectionDistance = 300
	e := New(set, 16)
	e.Step()
	if len(e.Edges()) == 0 {
		t.Fatal("network style with 200 dense particles produced no edges")
	}

	set = e.Settings()
	set.Style = components.StyleBokeh
	e.Apply(set)
	e.Step()
	if got := len(e.Edges()); got != 0 {
		t.Fatalf("bokeh style produced %d edges, want 0", got)
	}

	set = e.Settings()
	set.Text = "HI"
	e.Apply(set)
	e.Step()
	e.Step()
	if len(e.Edges()) == 0 {
		t.Fatal("active text should re-enable the connection pass")
	}
}

func TestHooksRunInsideTick(t *testing.T) {
	e := New(testSettings(), 16)
	order := []string{}
	e.SetRenderHook(func() { order = append(order, "render") })
	e.SetCaptureHook(func() { order = append(order, "capture") })
	e.Step()
	if len(order) != 2 || order[0] != "render" || order[1] != "capture" {
		t.Fatalf("hook order = %v, want [render capture]", order)
	}
	if e.Tick() != 1 {
		t.Fatalf("tick = %d, want 1", e.Tick())
	}
}

func TestDegenerateSurfaceDoesNotPanic(t *testing.T) {
	set := testSettings()
	set.Width, set.Height = 0, 0
	e := New(set, 16)
	for i := 0; i < 3; i++ {
		e.Step()
	}
	if got := len(e.Particles()); got != 50 {
		t.Fatalf("particle count = %d, want 50", got)
	}
}
