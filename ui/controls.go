package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is the simulation state shown by the controls panel.
type ControlsState struct {
	Paused         bool
	Zoom           float64
	MinZoom        float64
	MaxZoom        float64
	StepsPerUpdate int
}

// ControlsActions reports what the user asked for this frame.
type ControlsActions struct {
	TogglePause    bool
	Step           bool
	Reset          bool
	ResetCamera    bool
	Zoom           float64 // new zoom, equal to the input when unchanged
	StepsPerUpdate int
}

// ControlsPanel renders the left-side panel with buttons, sliders and
// overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32 // as last drawn
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point lies over the panel, so that
// clicks on it are not treated as world clicks.
func (c *ControlsPanel) Contains(sx, sy float32) bool {
	if !c.visible {
		return false
	}
	return sx >= float32(c.x) && sx <= float32(c.x+c.width) &&
		sy >= float32(c.y) && sy <= float32(c.y+c.height)
}

func (c *ControlsPanel) measure(overlays *OverlayRegistry) int32 {
	lh := c.renderer.Theme.LineHeight
	h := c.renderer.Theme.Padding*2 + 4*lh + 120
	for _, cat := range overlays.Categories() {
		h += lh + int32(len(overlays.ByCategory(cat)))*(lh+4)
	}
	return h
}

// Draw renders the panel and returns the requested actions.
func (c *ControlsPanel) Draw(state ControlsState, overlays *OverlayRegistry) ControlsActions {
	act := ControlsActions{Zoom: state.Zoom, StepsPerUpdate: state.StepsPerUpdate}
	if !c.visible {
		return act
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	c.height = c.measure(overlays)
	r.DrawPanel(c.x, c.y, c.width, c.height)

	x := float32(c.x + padding)
	y := float32(c.y + padding)
	inner := float32(c.width - padding*2)
	half := (inner - 6) / 2

	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += float32(lineHeight) + 6

	pauseText := "Pause"
	if state.Paused {
		pauseText = "Resume"
	}
	act.TogglePause = gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, pauseText)
	act.Step = gui.Button(rl.Rectangle{X: x + half + 6, Y: y, Width: half, Height: 24}, "Step")
	y += 30
	act.Reset = gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, "Reset Scene")
	act.ResetCamera = gui.Button(rl.Rectangle{X: x + half + 6, Y: y, Width: half, Height: 24}, "Reset View")
	y += 34

	// Zoom slider works in log space so that both ends are usable
	r.DrawLabelValue(int32(x), int32(y), "Zoom", fmt.Sprintf("%.1f px/m", state.Zoom))
	y += float32(lineHeight)
	logZoom := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: inner, Height: 16},
		"", "",
		float32(math.Log(state.Zoom)), float32(math.Log(state.MinZoom)), float32(math.Log(state.MaxZoom)),
	)
	if z := math.Exp(float64(logZoom)); math.Abs(z-state.Zoom) > 1e-3*state.Zoom {
		act.Zoom = z
	}
	y += 24

	r.DrawLabelValue(int32(x), int32(y), "Steps/frame", fmt.Sprintf("%d", state.StepsPerUpdate))
	y += float32(lineHeight)
	steps := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: inner, Height: 16},
		"", "",
		float32(state.StepsPerUpdate), 1, 10,
	)
	act.StepsPerUpdate = int(math.Round(float64(steps)))
	y += 28

	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), int32(x), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += float32(lineHeight)

		for _, desc := range overlays.ByCategory(category) {
			label := fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
			enabled := overlays.IsEnabled(desc.ID)
			if gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 12, Height: 12}, label, enabled) != enabled {
				overlays.Toggle(desc.ID)
			}
			y += float32(lineHeight) + 4
		}
	}

	return act
}

func categoryLabel(cat string) string {
	switch cat {
	case "shapes":
		return "Shapes"
	case "collision":
		return "Collision"
	default:
		return cat
	}
}
