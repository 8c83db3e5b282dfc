// Package ui draws the viewer's panels. Inspector fields are described by
// metadata so the panel layout can change alongside the body model.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rigid/components"
)

// FieldDescriptor defines how to display one property of a body.
type FieldDescriptor struct {
	Label   string
	Format  string                                // Printf format for Getter
	Getter  func(b *components.RigidBody) float64 // numeric fields
	Text    func(b *components.RigidBody) string  // text fields, used when Getter is nil
	Visible func(b *components.RigidBody) bool    // nil = always visible
}

// SectionDescriptor groups fields under a header.
type SectionDescriptor struct {
	Title   string
	Fields  []FieldDescriptor
	Visible func(b *components.RigidBody) bool
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillHigh    rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillHigh:    rl.Color{R: 200, G: 100, B: 100, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// ToColor converts a body colour for drawing.
func ToColor(c components.Colour) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}
