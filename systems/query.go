package systems

import (
	"github.com/pthm-cable/rigid/components"
	"github.com/pthm-cable/rigid/geom"
)

// ContainsPoint reports whether p lies inside or on b's polygon. The
// world-space cache must be current.
func ContainsPoint(b *components.RigidBody, p geom.Vec2) bool {
	verts := b.WorldVertices()
	if len(verts) < 3 {
		return false
	}
	for i, v := range verts {
		if p.Sub(v).Dot(edgeNormal(verts, i)) > 0 {
			return false
		}
	}
	return true
}

// BodyAt returns the handle of the last body containing p, so that the
// topmost-drawn body wins. ok is false when no body contains p.
func BodyAt(bodies []*components.RigidBody, p geom.Vec2) (h components.Handle, ok bool) {
	for i := len(bodies) - 1; i >= 0; i-- {
		b := bodies[i]
		if p.Sub(b.Position()).LengthSq() > b.Radius*b.Radius {
			continue
		}
		if ContainsPoint(b, p) {
			return components.Handle(i), true
		}
	}
	return 0, false
}
