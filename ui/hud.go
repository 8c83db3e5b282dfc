package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rigid/telemetry"
	"github.com/pthm-cable/rigid/world"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	Bodies         int
	Dynamic        int
	Tick           int32
	SimTime        float64
	StepsPerUpdate int
	FPS            int32
	Paused         bool
	Step           world.StepStats
	KineticEnergy  float64
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD at the top right of the screen.
func (h *HUD) Draw(data HUDData, screenWidth int32) {
	x := screenWidth - 330

	rl.DrawText(data.Title, x, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Bodies: %d (%d dynamic) | Tick: %d | t=%.2fs", data.Bodies, data.Dynamic, data.Tick, data.SimTime),
		x, 35, 12, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Steps/frame: %d | FPS: %d | KE: %.2f", data.StepsPerUpdate, data.FPS, data.KineticEnergy),
		x, 51, 12, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Broad: %d  Narrow: %d  Hits: %d  Contacts: %d",
			data.Step.BroadChecks, data.Step.NarrowChecks, data.Step.Collisions, data.Step.ContactsResolved),
		x, 67, 12, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, x, 85, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase step timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	height := padding*2 + lineHeight*5 + int32(len(world.Phases))*(lineHeight+2)

	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := p.y + padding
	inner := p.width - padding*2

	rl.DrawText("Step Performance", x, y, 14, rl.White)
	y += lineHeight + 2

	y = r.DrawLabelValue(x, y, "Avg step", stats.AvgTickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Max step", stats.MaxTickDuration.Round(time.Microsecond).String())

	for i, phase := range world.Phases {
		y = r.DrawPercentBar(x, y, phase, stats.Phases[i].Pct, 50, inner)
	}

	broad := stats.Phase(world.PhaseBroadPhase)
	narrow := stats.Phase(world.PhaseNarrowPhase)
	y = r.DrawLabelValue(x, y, "Pairs", fmt.Sprintf("%.0f bounded, %.0f tested", broad.Work, narrow.Work))
	r.DrawLabelValue(x, y, "Per test", narrow.PerItem().String())
}
