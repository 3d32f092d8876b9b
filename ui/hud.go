package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bloom/systems"
	"github.com/pthm-cable/bloom/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Free         int
	Clustered    int
	Clusters     int
	MaxParticles int
	MaxClusters  int
	Tick         int32
	Elapsed      float64
	FPS          int32
	Paused       bool
	GravityX     float64
	GravityY     float64
	ForceActive  bool
	MaxForce     float64
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	rl.DrawText(data.Title, 10, 10, 20, rl.RayWhite)

	rl.DrawText(
		fmt.Sprintf("Particles: %d/%d (%d clustered) | Clusters: %d/%d",
			data.Free+data.Clustered, data.MaxParticles, data.Clustered, data.Clusters, data.MaxClusters),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Time: %.1fs | FPS: %d", data.Tick, data.Elapsed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	y := int32(78)
	if data.ForceActive {
		rng := FieldRange{Min: -float32(data.MaxForce), Max: float32(data.MaxForce)}
		y = r.DrawCenteredBar(10, y, "Force X", float32(data.GravityX), rng, 260)
		y = r.DrawCenteredBar(10, y, "Force Y", float32(data.GravityY), rng, 260)
	}

	if data.Paused {
		rl.DrawText("PAUSED", 10, y+4, 16, rl.Yellow)
	}
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase step timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel, listing phases in registry order.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, registry *systems.SystemRegistry) {
	r := p.renderer
	lines := int32(len(registry.IDs()))
	r.DrawPanel(p.x, p.y, 260, 82+lines*14)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	rl.DrawText("Step Performance", x, y, 16, rl.RayWhite)
	y += 20
	rl.DrawText(fmt.Sprintf("Avg: %s | %.0f ticks/s", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, 12, rl.Yellow)
	y += 16
	rl.DrawText(fmt.Sprintf("Pairs: %.1f of %.0f free | %s each",
		stats.Work(telemetry.CounterPairs), stats.Work(telemetry.CounterCandidates), stats.ProximityPerCandidate),
		x, y, 12, rl.SkyBlue)
	y += 14
	rl.DrawText(fmt.Sprintf("Emitted: %.2f | Removed: %.2f per tick",
		stats.Work(telemetry.CounterEmitted), stats.Work(telemetry.CounterEvicted)+stats.Work(telemetry.CounterPruned)),
		x, y, 12, rl.SkyBlue)
	y += 16

	for _, id := range registry.IDs() {
		pct := stats.PhasePct[id]
		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", registry.GetName(id), stats.PhaseAvg[id].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
