// Package camera maps between world coordinates (y up, unbounded) and
// screen pixels (y down) for the viewer.
package camera

import (
	"math"

	"github.com/pthm-cable/rigid/geom"
)

// Camera controls the viewport into the simulation world.
// Supports pan and zoom; the world has no bounds.
type Camera struct {
	// Center is the world point shown at the middle of the viewport
	Center geom.Vec2

	// Zoom is pixels per world unit
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Zoom constraints
	MinZoom, MaxZoom float64

	home     geom.Vec2
	homeZoom float64
}

// New creates a camera looking at center with the given zoom. Reset
// returns to this view.
func New(viewportW, viewportH float32, center geom.Vec2, zoom float64) *Camera {
	c := &Camera{
		Center:    center,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   0.5,
		MaxZoom:   400,
		home:      center,
	}
	c.SetZoom(zoom)
	c.homeZoom = c.Zoom
	return c
}

// WorldToScreen converts a world point to screen pixels.
func (c *Camera) WorldToScreen(p geom.Vec2) (sx, sy float32) {
	d := p.Sub(c.Center)
	sx = c.ViewportW/2 + float32(d.X*c.Zoom)
	sy = c.ViewportH/2 - float32(d.Y*c.Zoom)
	return sx, sy
}

// ScreenToWorld converts screen pixels to a world point.
func (c *Camera) ScreenToWorld(sx, sy float32) geom.Vec2 {
	dx := float64(sx-c.ViewportW/2) / c.Zoom
	dy := float64(c.ViewportH/2-sy) / c.Zoom
	return c.Center.Add(geom.V(dx, dy))
}

// IsVisible returns true if a circle at p with the given radius could be
// visible on screen (conservative check for culling).
func (c *Camera) IsVisible(p geom.Vec2, radius float64) bool {
	minP, maxP := c.VisibleWorldBounds()
	return p.X+radius >= minP.X && p.X-radius <= maxP.X &&
		p.Y+radius >= minP.Y && p.Y-radius <= maxP.Y
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the view by the given delta in screen pixels: positive dx
// shows more of the right, positive dy more of the bottom.
func (c *Camera) Pan(dx, dy float32) {
	c.Center = c.Center.Add(geom.V(float64(dx)/c.Zoom, -float64(dy)/c.Zoom))
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(zoom, c.MaxZoom))
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the world point under (sx, sy) fixed.
func (c *Camera) ZoomAt(factor float64, sx, sy float32) {
	anchor := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	c.Center = c.Center.Add(anchor.Sub(c.ScreenToWorld(sx, sy)))
}

// Reset returns the camera to its initial position and zoom.
func (c *Camera) Reset() {
	c.Center = c.home
	c.Zoom = c.homeZoom
}

// SetHome makes the current view the one Reset returns to.
func (c *Camera) SetHome() {
	c.home = c.Center
	c.homeZoom = c.Zoom
}

// VisibleWorldBounds returns the world-space corners of the visible area.
func (c *Camera) VisibleWorldBounds() (minP, maxP geom.Vec2) {
	half := geom.V(float64(c.ViewportW)/(2*c.Zoom), float64(c.ViewportH)/(2*c.Zoom))
	return c.Center.Sub(half), c.Center.Add(half)
}

// Fit centres the view on the box [minP, maxP] and zooms so that it fills
// the viewport, leaving margin pixels on each side. The result becomes the
// Reset view.
func (c *Camera) Fit(minP, maxP geom.Vec2, margin float32) {
	w := math.Max(maxP.X-minP.X, 1e-6)
	h := math.Max(maxP.Y-minP.Y, 1e-6)
	availW := float64(max(c.ViewportW-2*margin, 1))
	availH := float64(max(c.ViewportH-2*margin, 1))

	c.Center = minP.Add(maxP).Scale(0.5)
	c.SetZoom(math.Min(availW/w, availH/h))
	c.SetHome()
}
