// Package geom provides the 2D vector and transform math used by the simulation.
package geom

import "math"

// normalizeEpsilon is the length below which Normalize returns the zero vector.
const normalizeEpsilon = 1e-6

// Vec2 is a 2D vector with value semantics.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Div divides both components by s.
func (v Vec2) Div(s float64) Vec2 {
	return Vec2{v.X / s, v.Y / s}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Eq reports exact component equality.
func (v Vec2) Eq(o Vec2) bool {
	return v.X == o.X && v.Y == o.Y
}

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product (v.X*o.Y - v.Y*o.X).
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Perp returns v rotated 90 degrees counter-clockwise: (-Y, X).
func (v Vec2) Perp() Vec2 {
	return Vec2{-v.Y, v.X}
}

// LengthSq returns the squared length (avoid sqrt in comparisons).
func (v Vec2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the magnitude of v.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns the unit vector in the direction of v.
// Vectors shorter than 1e-6 normalize to the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l > normalizeEpsilon {
		return Vec2{v.X / l, v.Y / l}
	}
	return Vec2{}
}

// Rotate rotates v counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// ScalarCross returns w x v for a scalar angular velocity w: (-w*v.Y, w*v.X).
func ScalarCross(w float64, v Vec2) Vec2 {
	return Vec2{-w * v.Y, w * v.X}
}
