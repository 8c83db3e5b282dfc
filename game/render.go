package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rigid/components"
	"github.com/pthm-cable/rigid/geom"
	"github.com/pthm-cable/rigid/systems"
	"github.com/pthm-cable/rigid/ui"
)

const controlsLegend = "SPACE pause | T step | R reset | S snapshot | ,/. speed | H panel | P perf | wheel/arrows/right-drag view | HOME recentre"

var (
	backgroundColor = rl.Color{R: 18, G: 20, B: 24, A: 255}
	contactColor    = rl.Color{R: 255, G: 80, B: 80, A: 255}
	normalColor     = rl.Color{R: 255, G: 200, B: 60, A: 255}
	boundsColor     = rl.Color{R: 90, G: 160, B: 255, A: 160}
	velocityColor   = rl.Color{R: 120, G: 255, B: 140, A: 255}
	selectionColor  = rl.Color{R: 255, G: 255, B: 0, A: 255}
)

// Update handles input and advances the simulation unless paused.
func (g *Game) Update() {
	g.handleInput()
	if !g.paused {
		for i := 0; i < g.stepsPerUpdate; i++ {
			g.step()
		}
	}
	g.perfCollector.RecordFrame()
}

// Draw renders the world, overlays and panels.
func (g *Game) Draw() {
	v := g.view
	bodies := g.world.Bodies()

	// resolution moves bodies after the broad phase refreshed their caches
	systems.RefreshAll(bodies)

	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	for _, b := range bodies {
		if !v.camera.IsVisible(b.Position(), b.Radius) {
			continue
		}
		g.drawBody(b, ui.ToColor(b.Colour))
	}
	if sel := v.selection(g.world); sel != nil {
		g.drawOutline(sel, selectionColor, 3)
	}
	g.drawActiveOverlays()

	g.drawUI()
	rl.EndDrawing()
}

// drawBody draws a body's outline, filled when the fill overlay is on.
func (g *Game) drawBody(b *components.RigidBody, color rl.Color) {
	if g.view.overlays.IsEnabled(ui.OverlayFill) {
		g.fillPolygon(b, rl.Fade(color, 0.35))
	}
	g.drawOutline(b, color, 1.5)
}

func (g *Game) drawOutline(b *components.RigidBody, color rl.Color, thick float32) {
	verts := b.WorldVertices()
	for i := range verts {
		p := g.toScreen(verts[i])
		q := g.toScreen(verts[(i+1)%len(verts)])
		rl.DrawLineEx(p, q, thick, color)
	}
}

// fillPolygon fans triangles from the centre. Clockwise world vertices
// appear counter-clockwise once y is flipped, which is what raylib expects.
func (g *Game) fillPolygon(b *components.RigidBody, color rl.Color) {
	c := g.toScreen(b.Position())
	verts := b.WorldVertices()
	for i := range verts {
		p := g.toScreen(verts[i])
		q := g.toScreen(verts[(i+1)%len(verts)])
		rl.DrawTriangle(c, p, q, color)
	}
}

func (g *Game) toScreen(p geom.Vec2) rl.Vector2 {
	sx, sy := g.view.camera.WorldToScreen(p)
	return rl.Vector2{X: sx, Y: sy}
}

// drawUI renders the HUD and panels in screen space.
func (g *Game) drawUI() {
	v := g.view

	v.hud.Draw(ui.HUDData{
		Title:          "Rigid",
		Bodies:         g.world.Len(),
		Dynamic:        g.dynamicCount(),
		Tick:           g.world.Tick(),
		SimTime:        float64(g.world.Tick()) * g.dt,
		StepsPerUpdate: g.stepsPerUpdate,
		FPS:            rl.GetFPS(),
		Paused:         g.paused,
		Step:           g.lastStep,
		KineticEnergy:  g.world.KineticEnergy(),
	}, int32(v.screenWidth))

	if v.showPerf {
		v.perfPanel.Draw(g.perfCollector.Stats())
	}
	if sel := v.selection(g.world); sel != nil {
		v.inspector.Draw(v.selected, sel)
	}

	g.applyControls(v.controls.Draw(ui.ControlsState{
		Paused:         g.paused,
		Zoom:           v.camera.Zoom,
		MinZoom:        v.camera.MinZoom,
		MaxZoom:        v.camera.MaxZoom,
		StepsPerUpdate: g.stepsPerUpdate,
	}, v.overlays))

	v.hud.DrawControls(int32(v.screenHeight), controlsLegend)
	rl.DrawText(fmt.Sprintf("%.1f px/m", v.camera.Zoom), int32(v.screenWidth)-90, int32(v.screenHeight)-25, 14, rl.Gray)
}

func (g *Game) dynamicCount() int {
	n := 0
	for _, b := range g.world.Bodies() {
		if !b.IsStatic {
			n++
		}
	}
	return n
}
