package systems

import (
	"math"

	"github.com/pthm-cable/flux/components"
)

// depthCutoff excludes deep background particles from the connection graph.
const depthCutoff = 1.8

// morphDistanceFactor tightens the edge limit while text is active; the
// clustered glyph cloud otherwise renders as a solid blob.
const morphDistanceFactor = 0.6

// Edge is a proximity connection between the particles at indices I < J.
// Opacity is 1 - distance/limit; the renderer applies its own attenuation.
type Edge struct {
	I, J    int
	Opacity float64
}

// EdgeLimit derives the effective edge distance for a settings snapshot.
// The configured distance is in reference-resolution pixels.
func EdgeLimit(set components.Settings) float64 {
	limit := set.ConnectionDistance * set.ScaleRatio()
	if set.Text != "" {
		limit *= morphDistanceFactor
	}
	return limit
}

// Connections computes the eligible proximity edges among the current
// particle positions, appending into dst to avoid per-tick allocations.
// Background particles (z beyond the depth cutoff) never join an edge.
// A cheap bounding-box rejection runs before the Euclidean distance.
func Connections(dst []Edge, particles []components.Particle, limit float64) []Edge {
	dst = dst[:0]
	if limit <= 0 {
		return dst
	}

	for i := range particles {
		pi := &particles[i]
		if pi.Z > depthCutoff {
			continue
		}
		for j := i + 1; j < len(particles); j++ {
			pj := &particles[j]
			if pj.Z > depthCutoff {
				continue
			}

			dx := pi.X - pj.X
			if dx > limit || dx < -limit {
				continue
			}
			dy := pi.Y - pj.Y
			if dy > limit || dy < -limit {
				continue
			}

			dist := math.Sqrt(dx*dx + dy*dy)
			if dist >= limit {
				continue
			}

			dst = append(dst, Edge{I: i, J: j, Opacity: 1 - dist/limit})
		}
	}
	return dst
}
