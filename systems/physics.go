// Package systems contains the stages of the simulation step: integration,
// world-space refresh, broad phase, narrow phase and collision resolution.
package systems

import (
	"github.com/pthm-cable/rigid/components"
	"github.com/pthm-cable/rigid/geom"
)

// Integrate advances unconstrained motion of every non-static body by dt
// using semi-implicit Euler, and returns how many bodies moved.
func Integrate(bodies []*components.RigidBody, gravity geom.Vec2, dt float64) int {
	n := 0
	for _, b := range bodies {
		if b.IsStatic {
			continue
		}

		// Accumulated forces are not fed into the acceleration yet.
		b.LinearAcceleration = gravity
		b.LinearVelocity = b.LinearVelocity.Add(b.LinearAcceleration.Scale(dt))
		b.Translate(b.LinearVelocity.Scale(dt))
		if b.AngularVelocity != 0 {
			b.Rotate(b.AngularVelocity * dt)
		}
		b.Force = geom.Vec2{}
		n++
	}
	return n
}
