package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/flux/components"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Screen.Width != 1280 || cfg.Screen.Height != 720 {
		t.Errorf("screen = %dx%d, want 1280x720", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Derived.Style != components.StyleNetwork {
		t.Errorf("derived style = %v, want network", cfg.Derived.Style)
	}
	if len(cfg.Derived.ThemeNames) != 5 {
		t.Errorf("theme count = %d, want 5", len(cfg.Derived.ThemeNames))
	}
	if _, ok := cfg.Derived.ThemeGlow["aurora"]; !ok {
		t.Error("aurora theme missing from derived glow map")
	}
}

func TestLoadUserOverridesMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
defaults:
  style: vortex
  particle_count: 300
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Derived.Style != components.StyleVortex {
		t.Errorf("style = %v, want vortex", cfg.Derived.Style)
	}
	if cfg.Defaults.ParticleCount != 300 {
		t.Errorf("particle_count = %d, want 300", cfg.Defaults.ParticleCount)
	}
	// Untouched fields keep embedded defaults.
	if cfg.Defaults.ConnectionDistance != 170 {
		t.Errorf("connection_distance = %v, want 170", cfg.Defaults.ConnectionDistance)
	}
	if cfg.Screen.TargetFPS != 60 {
		t.Errorf("target_fps = %d, want 60", cfg.Screen.TargetFPS)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown style", "defaults:\n  style: sparkle\n"},
		{"unknown theme", "defaults:\n  theme: nonesuch\n"},
		{"bad theme color", "themes:\n  - name: aurora\n    glow: \"blue\"\n"},
		{"malformed yaml", "defaults: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Fatal("Load accepted invalid config")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load accepted a missing file path")
	}
}

func TestSettingsSnapshot(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	set := cfg.Settings()
	if set.Width != cfg.Screen.Width || set.Height != cfg.Screen.Height {
		t.Errorf("settings surface = %dx%d", set.Width, set.Height)
	}
	if set.ParticleCount != cfg.Defaults.ParticleCount {
		t.Errorf("particle count = %d", set.ParticleCount)
	}
	if set.Glow != cfg.Derived.ThemeGlow[cfg.Defaults.Theme] {
		t.Errorf("glow = %+v", set.Glow)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    components.RGB
		wantErr bool
	}{
		{"#7df9ff", components.RGB{R: 0x7d, G: 0xf9, B: 0xff}, false},
		{"#000000", components.RGB{}, false},
		{"#FFFFFF", components.RGB{R: 255, G: 255, B: 255}, false},
		{"7df9ff", components.RGB{}, true},
		{"#7df9f", components.RGB{}, true},
		{"#gggggg", components.RGB{}, true},
		{"", components.RGB{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseHexColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Defaults.ParticleCount = 777

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load round trip: %v", err)
	}
	if back.Defaults.ParticleCount != 777 {
		t.Errorf("round trip particle_count = %d, want 777", back.Defaults.ParticleCount)
	}
}
