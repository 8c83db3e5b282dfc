package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rigid/systems"
	"github.com/pthm-cable/rigid/ui"
)

// Overlay arrow lengths in screen pixels
const (
	normalLength     = 18
	velocityPerPixel = 0.05 // m/s per pixel of arrow
)

// drawActiveOverlays renders all currently enabled overlays.
func (g *Game) drawActiveOverlays() {
	reg := g.view.overlays
	if reg.IsEnabled(ui.OverlayAABBs) {
		g.drawAABBs()
	}
	if reg.IsEnabled(ui.OverlayBoundCircles) {
		g.drawBoundCircles()
	}
	if reg.IsEnabled(ui.OverlayCentres) {
		g.drawCentres()
	}
	if reg.IsEnabled(ui.OverlayVelocity) {
		g.drawVelocities()
	}
	if reg.IsEnabled(ui.OverlayContacts) || reg.IsEnabled(ui.OverlayNormals) {
		g.drawManifolds(reg.IsEnabled(ui.OverlayContacts), reg.IsEnabled(ui.OverlayNormals))
	}
}

func (g *Game) drawAABBs() {
	for _, b := range g.world.Bodies() {
		box := systems.ComputeAABB(b)
		tl := g.toScreen(box.Min)
		br := g.toScreen(box.Max)
		// y flips, so Max is the top of the box on screen
		rl.DrawRectangleLinesEx(rl.Rectangle{X: tl.X, Y: br.Y, Width: br.X - tl.X, Height: tl.Y - br.Y}, 1, boundsColor)
	}
}

func (g *Game) drawBoundCircles() {
	zoom := float32(g.view.camera.Zoom)
	for _, b := range g.world.Bodies() {
		c := g.toScreen(b.Position())
		rl.DrawCircleLinesV(c, float32(b.Radius)*zoom, boundsColor)
	}
}

func (g *Game) drawCentres() {
	for _, b := range g.world.Bodies() {
		rl.DrawCircleV(g.toScreen(b.Position()), 2.5, ui.ToColor(b.Colour))
	}
}

func (g *Game) drawVelocities() {
	for _, b := range g.world.Bodies() {
		if b.IsStatic {
			continue
		}
		from := g.toScreen(b.Position())
		v := b.LinearVelocity.Scale(1 / velocityPerPixel)
		// screen y points down
		to := rl.Vector2{X: from.X + float32(v.X), Y: from.Y - float32(v.Y)}
		rl.DrawLineEx(from, to, 1.5, velocityColor)
	}
}

// drawManifolds marks the contact points and normals of the last step.
func (g *Game) drawManifolds(contacts, normals bool) {
	for _, m := range g.world.Manifolds() {
		for _, p := range m.Contacts() {
			sp := g.toScreen(p)
			if contacts {
				rl.DrawCircleV(sp, 3, contactColor)
			}
			if normals {
				end := rl.Vector2{
					X: sp.X + float32(m.Normal.X)*normalLength,
					Y: sp.Y - float32(m.Normal.Y)*normalLength,
				}
				rl.DrawLineEx(sp, end, 1.5, normalColor)
			}
		}
	}
}
