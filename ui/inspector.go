package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rigid/components"
)

// BodySections describes the inspector layout for a rigid body.
var BodySections = []SectionDescriptor{
	{
		Title: "Shape",
		Fields: []FieldDescriptor{
			{Label: "Sides", Format: "%.0f", Getter: func(b *components.RigidBody) float64 { return float64(b.Sides) }},
			{Label: "Radius", Format: "%.3f", Getter: func(b *components.RigidBody) float64 { return b.Radius }},
			{Label: "Static", Text: func(b *components.RigidBody) string { return fmt.Sprint(b.IsStatic) }},
		},
	},
	{
		Title: "Pose",
		Fields: []FieldDescriptor{
			{Label: "X", Format: "%.3f", Getter: func(b *components.RigidBody) float64 { return b.Position().X }},
			{Label: "Y", Format: "%.3f", Getter: func(b *components.RigidBody) float64 { return b.Position().Y }},
			{Label: "Rotation", Format: "%.3f rad", Getter: func(b *components.RigidBody) float64 { return b.Rotation() }},
		},
	},
	{
		Title:   "Motion",
		Visible: func(b *components.RigidBody) bool { return !b.IsStatic },
		Fields: []FieldDescriptor{
			{Label: "Vel X", Format: "%.3f", Getter: func(b *components.RigidBody) float64 { return b.LinearVelocity.X }},
			{Label: "Vel Y", Format: "%.3f", Getter: func(b *components.RigidBody) float64 { return b.LinearVelocity.Y }},
			{Label: "Spin", Format: "%.3f rad/s", Getter: func(b *components.RigidBody) float64 { return b.AngularVelocity }},
			{Label: "KE", Format: "%.3f", Getter: func(b *components.RigidBody) float64 { return b.KineticEnergy() }},
		},
	},
	{
		Title: "Material",
		Fields: []FieldDescriptor{
			{
				Label:   "Mass",
				Format:  "%.3f",
				Getter:  func(b *components.RigidBody) float64 { return b.Mass },
				Visible: func(b *components.RigidBody) bool { return !b.IsStatic },
			},
			{
				Label:   "Inertia",
				Format:  "%.4f",
				Getter:  func(b *components.RigidBody) float64 { return b.Inertia },
				Visible: func(b *components.RigidBody) bool { return !b.IsStatic },
			},
			{Label: "Restitution", Format: "%.2f", Getter: func(b *components.RigidBody) float64 { return b.Restitution }},
		},
	},
}

// Inspector renders the selected body's properties.
type Inspector struct {
	renderer *Renderer
	sections []SectionDescriptor
	x, y     int32
	width    int32
}

// NewInspector creates an inspector panel using BodySections.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		sections: BodySections,
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the panel for body h and returns the bottom Y.
func (ins *Inspector) Draw(h components.Handle, b *components.RigidBody) int32 {
	r := ins.renderer
	padding := r.Theme.Padding

	r.DrawPanel(ins.x, ins.y, ins.width, ins.measure(b))

	x := ins.x + padding
	y := ins.y + padding
	rl.DrawText(fmt.Sprintf("Body #%d", h), x, y, 16, rl.White)
	y += r.Theme.LineHeight + 4
	y = r.DrawSwatch(x, y, "Colour", ToColor(b.Colour))

	for _, sec := range ins.sections {
		if sec.Visible != nil && !sec.Visible(b) {
			continue
		}
		y = r.DrawSpacer(y, 4)
		y = r.DrawSectionHeader(x, y, sec.Title)
		for _, f := range sec.Fields {
			if f.Visible != nil && !f.Visible(b) {
				continue
			}
			y = r.DrawLabelValue(x, y, f.Label, fieldText(f, b))
		}
	}
	return y + padding
}

func (ins *Inspector) measure(b *components.RigidBody) int32 {
	t := ins.renderer.Theme
	h := t.Padding*2 + t.LineHeight*2 + 4
	for _, sec := range ins.sections {
		if sec.Visible != nil && !sec.Visible(b) {
			continue
		}
		h += 4 + t.LineHeight
		for _, f := range sec.Fields {
			if f.Visible == nil || f.Visible(b) {
				h += t.LineHeight
			}
		}
	}
	return h
}

func fieldText(f FieldDescriptor, b *components.RigidBody) string {
	if f.Getter != nil {
		return fmt.Sprintf(f.Format, f.Getter(b))
	}
	if f.Text != nil {
		return f.Text(b)
	}
	return ""
}
