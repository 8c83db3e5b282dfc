// Package components defines the rigid body data model and shape generators.
package components

import (
	"fmt"

	"github.com/pthm-cable/rigid/geom"
)

// Handle is an index into a world's body collection.
type Handle int

// Colour is an RGB display colour. Rendering only.
type Colour struct {
	R uint8 `yaml:"r" json:"r"`
	G uint8 `yaml:"g" json:"g"`
	B uint8 `yaml:"b" json:"b"`
}

// DefaultColour is used by bodies that don't set one.
var DefaultColour = Colour{R: 255, G: 255, B: 255}

// RigidBody holds the physical and geometric state of a convex polygon.
//
// Position and rotation are only reachable through methods so that every
// pose change bumps the geometry version. The world-space vertex cache
// records the version it was built from and is stale when they differ.
type RigidBody struct {
	Sides  int
	Radius float64 // circumscribed radius

	vertices []geom.Vec2 // local space, clockwise, centred on centre of mass
	world    []geom.Vec2 // cached world-space vertices

	pose          geom.Transform
	version       uint64
	cachedVersion uint64

	LinearVelocity     geom.Vec2
	LinearAcceleration geom.Vec2
	AngularVelocity    float64
	Force              geom.Vec2

	Mass           float64
	InverseMass    float64
	Inertia        float64
	InverseInertia float64

	Restitution float64
	Colour      Colour

	IsStatic bool
}

// newBody validates the shape and derives mass properties.
// local must already be clockwise and centred on its centroid.
func newBody(local []geom.Vec2, radius, mass float64, static bool) *RigidBody {
	if len(local) < 3 {
		panic(fmt.Sprintf("components: polygon needs at least 3 vertices, got %d", len(local)))
	}
	if !static && mass <= 0 {
		panic(fmt.Sprintf("components: dynamic body needs positive mass, got %v", mass))
	}

	b := &RigidBody{
		Sides:       len(local),
		Radius:      radius,
		vertices:    local,
		version:     1,
		Mass:        mass,
		Restitution: 0.5,
		Colour:      DefaultColour,
		IsStatic:    static,
	}
	if !static {
		b.Inertia = PolygonInertia(local, mass)
	}
	b.updateInverses()
	return b
}

// updateInverses recomputes InverseMass and InverseInertia from the
// current mass, inertia and static flag.
func (b *RigidBody) updateInverses() {
	b.InverseMass = InverseMass(b.Mass, b.IsStatic)
	b.InverseInertia = InverseMass(b.Inertia, b.IsStatic)
}

// SetStatic switches the body between static and dynamic. A body made
// dynamic must already have positive mass.
func (b *RigidBody) SetStatic(static bool) {
	if !static && b.Mass <= 0 {
		panic(fmt.Sprintf("components: dynamic body needs positive mass, got %v", b.Mass))
	}
	b.IsStatic = static
	if !static && b.Inertia == 0 {
		b.Inertia = PolygonInertia(b.vertices, b.Mass)
	}
	if static {
		b.LinearVelocity = geom.Vec2{}
		b.AngularVelocity = 0
	}
	b.updateInverses()
}

// SetMass changes the mass of a dynamic body and rescales its inertia.
func (b *RigidBody) SetMass(mass float64) {
	if mass <= 0 {
		panic(fmt.Sprintf("components: mass must be positive, got %v", mass))
	}
	b.Mass = mass
	b.Inertia = PolygonInertia(b.vertices, mass)
	b.updateInverses()
}

// Position returns the world-space centre of mass.
func (b *RigidBody) Position() geom.Vec2 { return b.pose.Position }

// Rotation returns the orientation in radians.
func (b *RigidBody) Rotation() float64 { return b.pose.Rotation }

// Transform returns the body's current placement.
func (b *RigidBody) Transform() geom.Transform { return b.pose }

// SnapTo places the body at p.
func (b *RigidBody) SnapTo(p geom.Vec2) {
	b.pose.Position = p
	b.version++
}

// Translate moves the body by d.
func (b *RigidBody) Translate(d geom.Vec2) {
	b.pose.Translate(d)
	b.version++
}

// Rotate adds r radians to the orientation.
func (b *RigidBody) Rotate(r float64) {
	b.pose.Rotate(r)
	b.version++
}

// SetRotation sets the orientation to r radians.
func (b *RigidBody) SetRotation(r float64) {
	b.pose.Rotation = r
	b.version++
}

// Vertices returns the local-space vertices. Callers must not modify them.
func (b *RigidBody) Vertices() []geom.Vec2 { return b.vertices }

// WorldVertices returns the cached world-space vertices, which may be
// empty or stale until the cache is refreshed.
func (b *RigidBody) WorldVertices() []geom.Vec2 { return b.world }

// Version identifies the current pose; it changes on every pose mutation.
func (b *RigidBody) Version() uint64 { return b.version }

// NeedsRefresh reports whether the world-space cache is empty or was built
// for an older pose.
func (b *RigidBody) NeedsRefresh() bool {
	return len(b.world) == 0 || b.cachedVersion != b.version
}

// StoreWorldVertices rebuilds the world-space cache from the current pose.
func (b *RigidBody) StoreWorldVertices() {
	b.world = b.pose.ApplyAll(b.world, b.vertices)
	b.cachedVersion = b.version
}

// InvalidateWorldVertices forces the next refresh to rebuild the cache.
func (b *RigidBody) InvalidateWorldVertices() {
	b.version++
}

// KineticEnergy returns linear plus rotational kinetic energy.
func (b *RigidBody) KineticEnergy() float64 {
	if b.IsStatic {
		return 0
	}
	return 0.5*b.Mass*b.LinearVelocity.LengthSq() +
		0.5*b.Inertia*b.AngularVelocity*b.AngularVelocity
}
