package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rigid/systems"
	"github.com/pthm-cable/rigid/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	v := g.view

	// Window resize propagation
	if rl.IsWindowResized() {
		v.resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	}

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyT) && g.paused {
		g.step()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.reset()
	}
	if rl.IsKeyPressed(rl.KeyS) && g.opts.SnapshotDir != "" {
		g.saveSnapshot(nil)
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyH) {
		v.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		v.showPerf = !v.showPerf
	}
	v.overlays.HandleKeys()

	g.handleCameraInput()
	g.handleSelection()
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	cam := g.view.camera
	pan := g.view.panSpeed * rl.GetFrameTime()

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		cam.Pan(pan, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		cam.Pan(-pan, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		cam.Pan(0, pan)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		cam.Pan(0, -pan)
	}

	// Right-drag pans, following the cursor
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		cam.Pan(-d.X, -d.Y)
	}

	// Mouse wheel zooms toward the cursor
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		m := rl.GetMousePosition()
		cam.ZoomAt(1+float64(wheel)*0.1, m.X, m.Y)
	}

	// Keyboard zoom with +/- (= and - keys)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		cam.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}
}

// handleSelection selects the body under a left click, or clears the
// selection when the click hits empty space.
func (g *Game) handleSelection() {
	v := g.view
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	m := rl.GetMousePosition()
	if v.controls.Contains(m.X, m.Y) {
		return
	}

	bodies := g.world.Bodies()
	systems.RefreshAll(bodies)
	v.selected, v.hasSelection = systems.BodyAt(bodies, v.camera.ScreenToWorld(m.X, m.Y))
}

// applyControls carries out the actions reported by the controls panel.
func (g *Game) applyControls(act ui.ControlsActions) {
	if act.TogglePause {
		g.paused = !g.paused
	}
	if act.Step && g.paused {
		g.step()
	}
	if act.Reset {
		g.reset()
	}
	if act.ResetCamera {
		g.view.camera.Reset()
	}
	g.view.camera.SetZoom(act.Zoom)
	g.stepsPerUpdate = max(act.StepsPerUpdate, 1)
}

// reset reloads the world, logging instead of failing so the viewer keeps running.
func (g *Game) reset() {
	if err := g.Reset(); err != nil {
		slog.Error("failed to reset scene", "error", err)
	}
}
