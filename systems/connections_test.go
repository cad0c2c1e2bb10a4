package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/flux/components"
)

func pair(d float64, z1, z2 float64) []components.Particle {
	return []components.Particle{
		{X: 0, Y: 0, Z: z1},
		{X: d, Y: 0, Z: z2},
	}
}

func TestConnectionsEligibility(t *testing.T) {
	const limit = 100.0

	tests := []struct {
		name     string
		parts    []components.Particle
		wantEdge bool
	}{
		{"close pair", pair(60, 1, 1), true},
		{"at limit", pair(100, 1, 1), false},
		{"beyond limit", pair(150, 1, 1), false},
		{"first too deep", pair(60, 1.9, 1), false},
		{"second too deep", pair(60, 1, 1.9), false},
		{"both at cutoff", pair(60, 1.8, 1.8), true},
		{"diagonal inside bbox outside limit", []components.Particle{
			{X: 0, Y: 0, Z: 1},
			{X: 90, Y: 90, Z: 1}, // each axis < limit but distance ~127
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges := Connections(nil, tt.parts, limit)
			if got := len(edges) > 0; got != tt.wantEdge {
				t.Errorf("edge present = %v, want %v", got, tt.wantEdge)
			}
		})
	}
}

func TestConnectionsOpacity(t *testing.T) {
	const limit = 100.0
	const d = 40.0

	edges := Connections(nil, pair(d, 1, 1), limit)
	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(edges))
	}
	e := edges[0]
	if e.I != 0 || e.J != 1 {
		t.Errorf("edge indices (%d, %d), want (0, 1)", e.I, e.J)
	}
	want := 1 - d/limit
	if math.Abs(e.Opacity-want) > 1e-9 {
		t.Errorf("opacity = %v, want %v", e.Opacity, want)
	}
}

func TestConnectionsZeroLimit(t *testing.T) {
	if edges := Connections(nil, pair(10, 1, 1), 0); len(edges) != 0 {
		t.Errorf("got %d edges with zero limit, want 0", len(edges))
	}
}

func TestConnectionsReusesBuffer(t *testing.T) {
	buf := make([]Edge, 0, 16)
	edges := Connections(buf, pair(10, 1, 1), 100)
	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(edges))
	}
	edges = Connections(edges, pair(500, 1, 1), 100)
	if len(edges) != 0 {
		t.Errorf("stale edges survived reuse: %d", len(edges))
	}
}

func TestEdgeLimit(t *testing.T) {
	set := components.Settings{
		Width:              960, // half reference width
		Height:             540,
		ConnectionDistance: 200,
	}
	if got := EdgeLimit(set); math.Abs(got-100) > 1e-9 {
		t.Errorf("limit = %v, want 100", got)
	}

	set.Text = "HELLO"
	if got := EdgeLimit(set); math.Abs(got-60) > 1e-9 {
		t.Errorf("limit with text = %v, want 60", got)
	}

	set.Width = 0
	if got := EdgeLimit(set); got != 0 {
		t.Errorf("limit with degenerate surface = %v, want 0", got)
	}
}
