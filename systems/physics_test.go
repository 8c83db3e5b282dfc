package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/rigid/components"
	"github.com/pthm-cable/rigid/geom"
)

func TestIntegrate(t *testing.T) {
	const dt = 0.5
	gravity := geom.V(0, -10)

	floor := components.NewBox(10, 1, 0, true)
	ball := components.NewRegularPolygon(8, 1, 1, false)
	ball.LinearVelocity = geom.V(2, 0)
	ball.AngularVelocity = 1
	ball.Force = geom.V(3, 3)

	floorVersion := floor.Version()
	n := Integrate([]*components.RigidBody{floor, ball}, gravity, dt)
	if n != 1 {
		t.Errorf("Integrate moved %d bodies, want 1", n)
	}

	// semi-implicit: velocity first, then position with the new velocity
	if !approxVec(ball.LinearVelocity, geom.V(2, -5), 1e-12) {
		t.Errorf("velocity = %v, want (2, -5)", ball.LinearVelocity)
	}
	if !approxVec(ball.Position(), geom.V(1, -2.5), 1e-12) {
		t.Errorf("position = %v, want (1, -2.5)", ball.Position())
	}
	if math.Abs(ball.Rotation()-0.5) > 1e-12 {
		t.Errorf("rotation = %f, want 0.5", ball.Rotation())
	}
	if !ball.LinearAcceleration.Eq(gravity) || !ball.Force.Eq(geom.Vec2{}) {
		t.Errorf("acceleration=%v force=%v", ball.LinearAcceleration, ball.Force)
	}
	if !ball.NeedsRefresh() {
		t.Error("moved body should need a cache refresh")
	}

	if floor.Version() != floorVersion || !floor.Position().Eq(geom.Vec2{}) {
		t.Error("static body moved")
	}
}
