// Package config provides configuration loading and access for the engine.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/flux/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Themes    []ThemeConfig   `yaml:"themes"`
	Recording RecordingConfig `yaml:"recording"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// DefaultsConfig holds the startup values for the control-surface sliders.
type DefaultsConfig struct {
	Style              string  `yaml:"style"`
	Theme              string  `yaml:"theme"`
	ParticleCount      int     `yaml:"particle_count"`
	Speed              float64 `yaml:"speed"`
	ConnectionDistance float64 `yaml:"connection_distance"` // reference-resolution pixels
	Text               string  `yaml:"text"`
}

// ThemeConfig names a theme and its glow color. The engine consumes only
// the glow channel; any further theming belongs to the control surface.
type ThemeConfig struct {
	Name string `yaml:"name"`
	Glow string `yaml:"glow"` // "#rrggbb"
}

// RecordingConfig holds frame-capture settings for the recording sink.
type RecordingConfig struct {
	Dir     string `yaml:"dir"`
	Bitrate int    `yaml:"bitrate"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Style      components.Style          // parsed Defaults.Style
	ThemeGlow  map[string]components.RGB // theme name -> glow color
	ThemeNames []string                  // declaration order, for cycling
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived parses styles and theme colors from the loaded config.
func (c *Config) computeDerived() error {
	style, err := components.ParseStyle(c.Defaults.Style)
	if err != nil {
		return fmt.Errorf("defaults.style: %w", err)
	}
	c.Derived.Style = style

	c.Derived.ThemeGlow = make(map[string]components.RGB, len(c.Themes))
	c.Derived.ThemeNames = c.Derived.ThemeNames[:0]
	for _, t := range c.Themes {
		glow, err := ParseHexColor(t.Glow)
		if err != nil {
			return fmt.Errorf("theme %q: %w", t.Name, err)
		}
		c.Derived.ThemeGlow[t.Name] = glow
		c.Derived.ThemeNames = append(c.Derived.ThemeNames, t.Name)
	}

	if _, ok := c.Derived.ThemeGlow[c.Defaults.Theme]; !ok {
		return fmt.Errorf("defaults.theme: unknown theme %q", c.Defaults.Theme)
	}
	return nil
}

// Settings builds the initial settings snapshot from the loaded config.
func (c *Config) Settings() components.Settings {
	return components.Settings{
		Width:              c.Screen.Width,
		Height:             c.Screen.Height,
		Style:              c.Derived.Style,
		Glow:               c.Derived.ThemeGlow[c.Defaults.Theme],
		ParticleCount:      c.Defaults.ParticleCount,
		Speed:              c.Defaults.Speed,
		ConnectionDistance: c.Defaults.ConnectionDistance,
		Text:               c.Defaults.Text,
	}
}

// ParseHexColor parses a "#rrggbb" color string.
func ParseHexColor(s string) (components.RGB, error) {
	var rgb components.RGB
	if len(s) != 7 || s[0] != '#' {
		return rgb, fmt.Errorf("invalid color %q, want \"#rrggbb\"", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &rgb.R, &rgb.G, &rgb.B); err != nil {
		return rgb, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return rgb, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
