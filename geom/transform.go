package geom

import "math"

// Transform is a rigid placement: rotate by Rotation (radians), then
// translate by Position. Rotation is never wrapped.
type Transform struct {
	Position Vec2
	Rotation float64
}

// NewTransform returns a transform at position p with rotation r.
func NewTransform(p Vec2, r float64) Transform {
	return Transform{Position: p, Rotation: r}
}

// Translate moves the transform by d.
func (t *Transform) Translate(d Vec2) {
	t.Position = t.Position.Add(d)
}

// Rotate adds r radians to the rotation.
func (t *Transform) Rotate(r float64) {
	t.Rotation += r
}

// Apply maps a local-space point into world space.
func (t Transform) Apply(p Vec2) Vec2 {
	c, s := math.Cos(t.Rotation), math.Sin(t.Rotation)
	return Vec2{
		X: p.X*c - p.Y*s + t.Position.X,
		Y: p.X*s + p.Y*c + t.Position.Y,
	}
}

// ApplyAll maps every point in local into dst (reusing its backing array)
// and returns the result.
func (t Transform) ApplyAll(dst, local []Vec2) []Vec2 {
	c, s := math.Cos(t.Rotation), math.Sin(t.Rotation)
	dst = dst[:0]
	for _, p := range local {
		dst = append(dst, Vec2{
			X: p.X*c - p.Y*s + t.Position.X,
			Y: p.X*s + p.Y*c + t.Position.Y,
		})
	}
	return dst
}
