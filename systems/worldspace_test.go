package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/rigid/components"
	"github.com/pthm-cable/rigid/geom"
)

func TestRefreshWorldSpaceIsIdempotent(t *testing.T) {
	b := components.NewRegularPolygon(5, 1, 1, true)
	b.SnapTo(geom.V(2, 3))
	b.SetRotation(0.4)

	if !RefreshWorldSpace(b) {
		t.Fatal("first refresh should rebuild the cache")
	}
	first := append([]geom.Vec2(nil), b.WorldVertices()...)
	firstPtr := &b.WorldVertices()[0]

	if RefreshWorldSpace(b) {
		t.Error("second refresh without a pose change should be a no-op")
	}
	second := b.WorldVertices()
	if &second[0] != firstPtr {
		t.Error("no-op refresh should not reallocate the cache")
	}
	for i := range first {
		if math.Float64bits(first[i].X) != math.Float64bits(second[i].X) ||
			math.Float64bits(first[i].Y) != math.Float64bits(second[i].Y) {
			t.Errorf("vertex %d changed: %v -> %v", i, first[i], second[i])
		}
	}
}

func TestRefreshWorldSpaceTracksPose(t *testing.T) {
	b := components.NewBox(2, 2, 1, false)
	RefreshWorldSpace(b)

	b.SnapTo(geom.V(10, 0))
	b.SetRotation(math.Pi / 2)
	if !RefreshWorldSpace(b) {
		t.Fatal("refresh after a pose change should rebuild")
	}

	tf := b.Transform()
	for i, local := range b.Vertices() {
		want := tf.Apply(local)
		got := b.WorldVertices()[i]
		if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 {
			t.Errorf("vertex %d = %v, want %v", i, got, want)
		}
	}
	if len(b.WorldVertices()) != len(b.Vertices()) {
		t.Errorf("cache length %d, want %d", len(b.WorldVertices()), len(b.Vertices()))
	}
	if !b.Position().Eq(geom.V(10, 0)) || b.Rotation() != math.Pi/2 {
		t.Error("refresh must not change the pose")
	}
}

func TestRefreshAllCountsRebuilds(t *testing.T) {
	bodies := []*components.RigidBody{
		components.NewBox(1, 1, 1, false),
		components.NewBox(1, 1, 1, true),
	}
	if n := RefreshAll(bodies); n != 2 {
		t.Errorf("first RefreshAll = %d, want 2", n)
	}
	bodies[0].Translate(geom.V(1, 0))
	if n := RefreshAll(bodies); n != 1 {
		t.Errorf("second RefreshAll = %d, want 1", n)
	}
}
