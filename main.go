package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flux/components"
	"github.com/pthm-cable/flux/config"
	"github.com/pthm-cable/flux/game"
	"github.com/pthm-cable/flux/recording"
	"github.com/pthm-cable/flux/renderer"
	"github.com/pthm-cable/flux/telemetry"
	"github.com/pthm-cable/flux/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run the tick pipeline without graphics")
	logStats := flag.Bool("log-stats", false, "Output perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	text := flag.String("text", "", "Morph text (overrides config default)")
	styleFlag := flag.String("style", "", "Style override (network|bokeh|matrix|vortex|nova)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	set := cfg.Settings()
	set.Seed = *seed
	if *text != "" {
		set.Text = *text
	}
	if *styleFlag != "" {
		style, err := components.ParseStyle(*styleFlag)
		if err != nil {
			slog.Error("invalid style flag", "error", err)
			os.Exit(1)
		}
		set.Style = style
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Warn("failed to snapshot config", "error", err)
	}

	if *headless {
		runHeadless(cfg, set, om, *logStats, *maxTicks)
		return
	}
	runWindow(cfg, set, om, *logStats, *maxTicks)
}

// statsInterval converts the stats window from seconds to ticks.
func statsInterval(cfg *config.Config) int64 {
	interval := int64(cfg.Telemetry.StatsWindow * float64(cfg.Screen.TargetFPS))
	if interval < 1 {
		interval = 60
	}
	return interval
}

// flushStats logs and/or writes one stats window.
func flushStats(engine *game.Engine, om *telemetry.OutputManager, logStats bool) {
	stats := engine.Perf().Stats()
	if logStats {
		stats.LogStats()
	}
	if err := om.WritePerf(stats, engine.Tick()); err != nil {
		slog.Warn("failed to write perf stats", "error", err)
	}
	window := telemetry.ComputeWindowStats(engine.Perf(), engine.Tick(),
		len(engine.Particles()), len(engine.Edges()), engine.TextPointCount())
	if err := om.WriteTelemetry(window); err != nil {
		slog.Warn("failed to write telemetry", "error", err)
	}
}

// runHeadless drives the tick pipeline as fast as it will go, without
// graphics. Useful for benchmarks and soak runs.
func runHeadless(cfg *config.Config, set components.Settings, om *telemetry.OutputManager, logStats bool, maxTicks int) {
	engine := game.New(set, cfg.Telemetry.PerfCollectorWindow)
	interval := statsInterval(cfg)

	slog.Info("starting headless run",
		"style", set.Style.String(),
		"particles", set.ParticleCount,
		"resolution", []int{set.Width, set.Height},
		"max_ticks", maxTicks,
	)

	for {
		engine.Step()

		if engine.Tick()%interval == 0 {
			flushStats(engine, om, logStats)
		}
		if maxTicks > 0 && engine.Tick() >= int64(maxTicks) {
			slog.Info("max ticks reached", "tick", engine.Tick())
			return
		}
	}
}

// runWindow is the interactive mode: raylib window, control surface,
// recording hotkey, surface presented at the display refresh cadence.
func runWindow(cfg *config.Config, set components.Settings, om *telemetry.OutputManager, logStats bool, maxTicks int) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "flux")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	engine := game.New(set, cfg.Telemetry.PerfCollectorWindow)

	surface := renderer.NewSurface(set.Width, set.Height)
	defer surface.Unload()
	rend := renderer.New(surface)
	rend.Clear()

	rec := recording.New(cfg.Recording.Dir, surface)
	panel := ui.NewControlsPanel(10, 10, 260, cfg.Derived.ThemeNames, cfg.Derived.ThemeGlow, cfg.Defaults.Theme)

	engine.SetRenderHook(func() {
		rend.Frame(engine.Settings(), engine.Particles(), engine.Edges())
	})
	engine.SetCaptureHook(func() {
		if err := rec.Capture(); err != nil {
			slog.Warn("frame capture failed", "error", err)
		}
	})

	interval := statsInterval(cfg)
	current := set

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyTab) {
			panel.Toggle()
		}
		if rl.IsKeyPressed(rl.KeyR) {
			if rec.Active() {
				if asset, err := rec.Stop(); err == nil && asset != "" {
					slog.Info("capture finalized", "asset", asset)
				}
			} else if err := rec.Start(cfg.Recording.Bitrate); err != nil {
				// Recording failure never stops rendering.
				slog.Warn("recording unavailable", "error", err)
			}
		}

		engine.Step()
		engine.Perf().RecordFrame()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		surface.Present(cfg.Screen.Width, cfg.Screen.Height)

		if rec.Active() {
			rl.DrawCircle(16, int32(cfg.Screen.Height)-16, 6, rl.Red)
		}

		next, changed := panel.Draw(current)
		rl.EndDrawing()

		if changed {
			current = next
			engine.Apply(next)
		}

		if engine.Tick()%interval == 0 {
			flushStats(engine, om, logStats)
		}
		if maxTicks > 0 && engine.Tick() >= int64(maxTicks) {
			break
		}
	}

	if asset, err := rec.Stop(); err == nil && asset != "" {
		slog.Info("capture finalized", "asset", asset)
	}
}
