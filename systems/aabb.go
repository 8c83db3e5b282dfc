package systems

import (
	"github.com/pthm-cable/rigid/components"
	"github.com/pthm-cable/rigid/geom"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max geom.Vec2
}

// ComputeAABB returns the box enclosing b's world-space vertices.
// The cache must have been refreshed; an empty cache panics.
func ComputeAABB(b *components.RigidBody) AABB {
	verts := b.WorldVertices()
	if len(verts) == 0 {
		panic("systems: ComputeAABB on a body with no world-space vertices")
	}

	lo, hi := verts[0], verts[0]
	for _, v := range verts[1:] {
		if v.X < lo.X {
			lo.X = v.X
		}
		if v.Y < lo.Y {
			lo.Y = v.Y
		}
		if v.X > hi.X {
			hi.X = v.X
		}
		if v.Y > hi.Y {
			hi.Y = v.Y
		}
	}
	return AABB{Min: lo, Max: hi}
}

// Overlaps reports whether the closed boxes a and b intersect.
// Boxes that only touch along an edge or corner overlap.
func Overlaps(a, b AABB) bool {
	if a.Max.X < b.Min.X || b.Max.X < a.Min.X {
		return false
	}
	if a.Max.Y < b.Min.Y || b.Max.Y < a.Min.Y {
		return false
	}
	return true
}

// Contains reports whether p lies inside the closed box.
func (a AABB) Contains(p geom.Vec2) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X && p.Y >= a.Min.Y && p.Y <= a.Max.Y
}

// Center returns the box midpoint.
func (a AABB) Center() geom.Vec2 {
	return a.Min.Add(a.Max).Scale(0.5)
}
