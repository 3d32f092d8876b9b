package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bloom/camera"
	"github.com/pthm-cable/bloom/config"
	"github.com/pthm-cable/bloom/game"
	"github.com/pthm-cable/bloom/renderer"
	"github.com/pthm-cable/bloom/ui"
)

const controlsLegend = "Click: burst | Drag: swipe force | Space: pause | C: clear | F5: snapshot | M/G/O/I/F3: overlays"

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	scriptPath := flag.String("script", "", "YAML gesture script to replay")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		SnapshotDir:    *snapshotDir,
		OutputDir:      *outputDir,
	}

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	cam := camera.New(cfg.Camera, float64(cfg.Screen.Width), float64(cfg.Screen.Height))

	var player *game.ScriptPlayer
	if *scriptPath != "" {
		script, err := game.LoadScript(*scriptPath)
		if err != nil {
			slog.Error("failed to load script", "error", err)
			os.Exit(1)
		}
		if player, err = game.NewScriptPlayer(script, cam); err != nil {
			slog.Error("invalid script", "path", *scriptPath, "error", err)
			os.Exit(1)
		}
	}

	if *headless {
		runHeadless(g, player, *maxTicks)
		return
	}
	runWindowed(g, cam, player, *maxTicks)
}

// runHeadless steps with the fixed configured dt until max ticks, or until a
// script has finished when no limit is given.
func runHeadless(g *game.Game, player *game.ScriptPlayer, maxTicks int) {
	dt := g.Config().Simulation.DT
	slog.Info("starting headless simulation",
		"dt", dt,
		"max_ticks", maxTicks,
		"scripted", player != nil,
	)

	for {
		if player != nil {
			player.Apply(g)
		}
		g.Step(dt)

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
		if maxTicks == 0 && (player == nil || player.Done()) {
			// Without a limit or a script there is nothing to drive the scene
			if player == nil {
				slog.Warn("headless run without -max-ticks or -script; stopping")
			}
			break
		}
	}
	g.LogWorldState()
}

func runWindowed(g *game.Game, cam *camera.Camera, player *game.ScriptPlayer, maxTicks int) {
	cfg := g.Config()

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Bloom")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	scene := renderer.NewSceneRenderer(cam)
	background := renderer.NewBackgroundRenderer(cfg.Derived.Background)
	overlays := ui.NewOverlayRegistry()
	hud := ui.NewHUD()
	controls := ui.NewControlsPanel(int32(cfg.Screen.Width)-230, 10, 220)
	perfPanel := ui.NewPerfPanel(10, 130)
	inspector := ui.NewInspector(10, 130, 240)
	pointer := ui.NewPointer(cam)
	maxForce := cfg.Gesture.ForceScale * 4

	for !rl.WindowShouldClose() {
		screenW, screenH := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
		if rl.IsWindowResized() {
			cam.Resize(float64(screenW), float64(screenH))
			scene.SyncCamera(cam)
			controls.SetPosition(screenW-230, 10)
		}

		overlays.HandleKeys()
		if rl.IsKeyPressed(rl.KeySpace) {
			g.TogglePause()
		}
		if rl.IsKeyPressed(rl.KeyC) {
			g.Clear()
		}
		if rl.IsKeyPressed(rl.KeyF5) {
			if path, err := g.SaveSnapshot("."); err != nil {
				slog.Error("failed to save snapshot", "error", err)
			} else {
				slog.Info("snapshot saved", "path", path)
			}
		}

		mouse := rl.GetMousePosition()
		pointer.Update(g, controls.Contains(mouse))
		if player != nil {
			player.Apply(g)
		}
		if !g.Paused() {
			g.Step(float64(rl.GetFrameTime()))
		}

		frame := g.Snapshot()
		stats := g.Stats()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		background.Draw(screenW, screenH)
		scene.Draw(frame, renderer.DrawOptions{
			Satellites: overlays.IsEnabled(ui.OverlaySatellites),
			Gravity:    overlays.IsEnabled(ui.OverlayGravity),
			Outlines:   overlays.IsEnabled(ui.OverlayOutlines),
		})

		hud.Draw(ui.HUDData{
			Title:        "Bloom",
			Free:         stats.Free,
			Clustered:    stats.Clustered,
			Clusters:     stats.Clusters,
			MaxParticles: cfg.Simulation.MaxParticles,
			MaxClusters:  cfg.Simulation.MaxClusters,
			Tick:         stats.Tick,
			Elapsed:      stats.Elapsed,
			FPS:          rl.GetFPS(),
			Paused:       g.Paused(),
			GravityX:     stats.Gravity.X,
			GravityY:     stats.Gravity.Y,
			ForceActive:  stats.GravityActive,
			MaxForce:     maxForce,
		})
		hud.DrawControls(screenH, controlsLegend)

		panelY := int32(130)
		if overlays.IsEnabled(ui.OverlayInspector) {
			if c, ok := ui.PickCluster(frame, cam, float64(mouse.X), float64(mouse.Y)); ok {
				inspector.SetPosition(10, panelY)
				panelY = inspector.Draw(c) + 10
			}
		}
		if overlays.IsEnabled(ui.OverlayPerf) {
			perfPanel.SetPosition(10, panelY)
			perfPanel.Draw(g.PerfStats(), g.Registry())
		}

		action := controls.Draw(ui.ControlsState{
			Paused:     g.Paused(),
			ForceScale: cfg.Gesture.ForceScale,
			MaxForce:   maxForce,
		}, overlays)
		rl.EndDrawing()
		g.RecordFrame()

		if action.TogglePause {
			g.TogglePause()
		}
		if action.Clear {
			g.Clear()
		}
		if action.ScaleMoved {
			g.SetForceScale(action.ForceScale)
		}

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
}
