package components

import "fmt"

// ReferenceWidth is the design width all speeds and distances are tuned
// against. Motion and connection distances scale by Width/ReferenceWidth.
const ReferenceWidth = 1920.0

// Style selects the motion model and render primitives for all particles.
type Style uint8

const (
	StyleNetwork Style = iota
	StyleBokeh
	StyleMatrix
	StyleVortex
	StyleNova
)

// styleNames maps styles to their config/CLI names.
var styleNames = [...]string{"network", "bokeh", "matrix", "vortex", "nova"}

// String returns the style's config name.
func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return fmt.Sprintf("style(%d)", uint8(s))
}

// ParseStyle resolves a config/CLI name to a Style.
func ParseStyle(name string) (Style, error) {
	for i, n := range styleNames {
		if n == name {
			return Style(i), nil
		}
	}
	return StyleNetwork, fmt.Errorf("unknown style %q", name)
}

// Styles returns all styles in declaration order.
func Styles() []Style {
	return []Style{StyleNetwork, StyleBokeh, StyleMatrix, StyleVortex, StyleNova}
}

// RGB is a plain color triple. The engine only consumes the theme's glow
// channel; everything else about theming belongs to the control surface.
type RGB struct {
	R, G, B uint8
}

// Settings is the configuration snapshot consumed at the start of a tick.
// It is treated as immutable for the duration of that tick.
type Settings struct {
	Width  int
	Height int

	Style Style
	Glow  RGB

	ParticleCount      int
	Speed              float64
	ConnectionDistance float64 // in reference-resolution pixels

	// Seed triggers re-randomization when it changes. It is not a
	// reproducible RNG seed.
	Seed int64

	Text string
}

// ScaleRatio normalizes speeds and distances across resolutions.
// Returns 0 for degenerate dimensions so motion becomes a no-op
// instead of dividing by zero downstream.
func (s Settings) ScaleRatio() float64 {
	if s.Width <= 0 || s.Height <= 0 {
		return 0
	}
	return float64(s.Width) / ReferenceWidth
}

// EffectiveSpeed is the global motion multiplier for the snapshot.
func (s Settings) EffectiveSpeed() float64 {
	return s.Speed * s.ScaleRatio()
}

// ConnectionsEnabled reports whether proximity edges are computed this tick.
func (s Settings) ConnectionsEnabled() bool {
	return s.Style == StyleNetwork || s.Text != ""
}
