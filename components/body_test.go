package components

import (
	"math"
	"testing"

	"github.com/pthm-cable/rigid/geom"
)

func TestNewRegularPolygon(t *testing.T) {
	for _, sides := range []int{3, 4, 6, 10} {
		b := NewRegularPolygon(sides, 1.5, 2, false)

		if b.Sides != sides || len(b.Vertices()) != sides {
			t.Errorf("sides=%d: got Sides=%d, len(vertices)=%d", sides, b.Sides, len(b.Vertices()))
		}
		for i, v := range b.Vertices() {
			if math.Abs(v.Length()-1.5) > 1e-9 {
				t.Errorf("sides=%d: vertex %d at distance %f, want 1.5", sides, i, v.Length())
			}
		}
		if SignedArea(b.Vertices()) >= 0 {
			t.Errorf("sides=%d: vertices should wind clockwise", sides)
		}
		if b.InverseMass != 0.5 {
			t.Errorf("sides=%d: InverseMass = %f, want 0.5", sides, b.InverseMass)
		}
		if b.Inertia <= 0 || math.Abs(b.InverseInertia*b.Inertia-1) > 1e-12 {
			t.Errorf("sides=%d: Inertia=%f InverseInertia=%f", sides, b.Inertia, b.InverseInertia)
		}
	}
}

func TestRegularPolygonInertiaApproachesDisc(t *testing.T) {
	// A 256-gon is close to a disc: I = m r^2 / 2
	b := NewRegularPolygon(256, 2, 3, false)
	want := 3.0 * 4 / 2
	if math.Abs(b.Inertia-want)/want > 0.01 {
		t.Errorf("Inertia = %f, want ~%f", b.Inertia, want)
	}
}

func TestBoxInertia(t *testing.T) {
	b := NewBox(2, 4, 3, false)
	want := 3.0 * (4 + 16) / 12
	if math.Abs(b.Inertia-want) > 1e-9 {
		t.Errorf("Inertia = %f, want %f", b.Inertia, want)
	}
	if SignedArea(b.Vertices()) >= 0 {
		t.Error("box vertices should wind clockwise")
	}
	if math.Abs(b.Radius-math.Hypot(2, 4)/2) > 1e-12 {
		t.Errorf("Radius = %f", b.Radius)
	}
}

func TestStaticBodyHasZeroInverses(t *testing.T) {
	tests := []struct {
		name string
		b    *RigidBody
	}{
		{"static polygon", NewRegularPolygon(5, 1, 10, true)},
		{"static box zero mass", NewBox(30, 1, 0, true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.b.InverseMass != 0 || tt.b.InverseInertia != 0 {
				t.Errorf("InverseMass=%f InverseInertia=%f, want 0, 0", tt.b.InverseMass, tt.b.InverseInertia)
			}
			if tt.b.KineticEnergy() != 0 {
				t.Errorf("static KineticEnergy = %f, want 0", tt.b.KineticEnergy())
			}
		})
	}
}

func TestSetStaticToggles(t *testing.T) {
	b := NewBox(1, 1, 2, false)
	b.LinearVelocity = geom.V(3, 0)
	b.SetStatic(true)
	if b.InverseMass != 0 || b.InverseInertia != 0 || !b.LinearVelocity.Eq(geom.Vec2{}) {
		t.Errorf("after SetStatic(true): %+v", b)
	}
	b.SetStatic(false)
	if b.InverseMass != 0.5 || b.InverseInertia <= 0 {
		t.Errorf("after SetStatic(false): InverseMass=%f InverseInertia=%f", b.InverseMass, b.InverseInertia)
	}
}

func TestPreconditionPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"two sides", func() { NewRegularPolygon(2, 1, 1, false) }},
		{"zero radius", func() { NewRegularPolygon(4, 0, 1, false) }},
		{"dynamic zero mass", func() { NewRegularPolygon(4, 1, 0, false) }},
		{"dynamic negative mass", func() { NewBox(1, 1, -1, false) }},
		{"flat box", func() { NewBox(1, 0, 1, false) }},
		{"degenerate polygon", func() { NewPolygon([]geom.Vec2{{}, {X: 1}, {X: 2}}, 1, false) }},
		{"make dynamic without mass", func() { NewBox(1, 1, 0, true).SetStatic(false) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestNewPolygonRecentresAndRewinds(t *testing.T) {
	// counter-clockwise triangle away from the origin
	pts := []geom.Vec2{{X: 10, Y: 10}, {X: 13, Y: 10}, {X: 10, Y: 13}}
	b := NewPolygon(pts, 1, false)

	if SignedArea(b.Vertices()) >= 0 {
		t.Error("vertices should be rewound clockwise")
	}
	c := Centroid(b.Vertices())
	if math.Abs(c.X) > 1e-9 || math.Abs(c.Y) > 1e-9 {
		t.Errorf("centroid = %v, want origin", c)
	}
}

func TestPoseChangesBumpVersion(t *testing.T) {
	b := NewBox(1, 1, 1, false)
	if !b.NeedsRefresh() {
		t.Fatal("new body should need a refresh")
	}
	b.StoreWorldVertices()
	if b.NeedsRefresh() {
		t.Fatal("freshly cached body should not need a refresh")
	}

	mutations := []struct {
		name string
		fn   func()
	}{
		{"SnapTo", func() { b.SnapTo(geom.V(1, 1)) }},
		{"Translate", func() { b.Translate(geom.V(0.5, 0)) }},
		{"Rotate", func() { b.Rotate(0.1) }},
		{"SetRotation", func() { b.SetRotation(2) }},
		{"Invalidate", func() { b.InvalidateWorldVertices() }},
	}
	for _, m := range mutations {
		m.fn()
		if !b.NeedsRefresh() {
			t.Errorf("%s should make the cache stale", m.name)
		}
		b.StoreWorldVertices()
	}

	if !b.Position().Eq(geom.V(1.5, 1)) || b.Rotation() != 2 {
		t.Errorf("pose = %v / %f, want (1.5, 1) / 2", b.Position(), b.Rotation())
	}
}

func TestKineticEnergy(t *testing.T) {
	b := NewBox(2, 2, 3, false)
	b.LinearVelocity = geom.V(2, 0)
	b.AngularVelocity = 1
	want := 0.5*3*4 + 0.5*b.Inertia
	if math.Abs(b.KineticEnergy()-want) > 1e-12 {
		t.Errorf("KineticEnergy = %f, want %f", b.KineticEnergy(), want)
	}
}
