package game

import (
	"github.com/pthm-cable/rigid/camera"
	"github.com/pthm-cable/rigid/components"
	"github.com/pthm-cable/rigid/config"
	"github.com/pthm-cable/rigid/geom"
	"github.com/pthm-cable/rigid/systems"
	"github.com/pthm-cable/rigid/ui"
	"github.com/pthm-cable/rigid/world"
)

const (
	controlsWidth = 220
	panelWidth    = 240
	fitMargin     = 40
)

// view holds everything the graphical mode adds on top of the simulation.
type view struct {
	camera    *camera.Camera
	panSpeed  float32
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	controls  *ui.ControlsPanel
	inspector *ui.Inspector
	overlays  *ui.OverlayRegistry

	showPerf bool

	selected     components.Handle
	hasSelection bool

	screenWidth, screenHeight float32
}

func newView(cfg *config.Config, w *world.World) *view {
	sw := float32(cfg.Screen.Width)
	sh := float32(cfg.Screen.Height)

	v := &view{
		camera:       camera.New(sw, sh, geom.Vec2{}, cfg.View.Zoom),
		panSpeed:     float32(cfg.View.PanSpeed),
		hud:          ui.NewHUD(),
		perfPanel:    ui.NewPerfPanel(int32(sw)-panelWidth-10, 110, panelWidth),
		controls:     ui.NewControlsPanel(10, 10, controlsWidth),
		inspector:    ui.NewInspector(int32(sw)-panelWidth-10, 260, panelWidth),
		overlays:     ui.NewOverlayRegistry(),
		showPerf:     true,
		screenWidth:  sw,
		screenHeight: sh,
	}
	v.frame(w, cfg.View.Zoom)
	return v
}

// frame fits the camera to the world's bodies, zooming in no further
// than maxZoom.
func (v *view) frame(w *world.World, maxZoom float64) {
	bodies := w.Bodies()
	if len(bodies) == 0 {
		return
	}
	systems.RefreshAll(bodies)

	box := systems.ComputeAABB(bodies[0])
	for _, b := range bodies[1:] {
		bb := systems.ComputeAABB(b)
		box.Min = geom.V(min(box.Min.X, bb.Min.X), min(box.Min.Y, bb.Min.Y))
		box.Max = geom.V(max(box.Max.X, bb.Max.X), max(box.Max.Y, bb.Max.Y))
	}

	v.camera.Fit(box.Min, box.Max, fitMargin+controlsWidth/2)
	v.camera.SetZoom(min(v.camera.Zoom, maxZoom))
	// the controls panel covers the left of the screen
	v.camera.Pan(-controlsWidth/2, 0)
	v.camera.SetHome()
}

func (v *view) clearSelection() {
	v.hasSelection = false
}

// selection returns the selected body, or nil when nothing valid is selected.
func (v *view) selection(w *world.World) *components.RigidBody {
	if !v.hasSelection || int(v.selected) >= w.Len() {
		return nil
	}
	return w.Body(v.selected)
}

func (v *view) resize(w, h float32) {
	v.screenWidth = w
	v.screenHeight = h
	v.camera.Resize(w, h)
	v.perfPanel.SetPosition(int32(w)-panelWidth-10, 110)
	v.inspector.SetPosition(int32(w)-panelWidth-10, 260)
}
