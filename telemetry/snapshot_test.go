package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/rigid/components"
	"github.com/pthm-cable/rigid/geom"
	"github.com/pthm-cable/rigid/world"
)

func testWorld() *world.World {
	w := world.New(world.DefaultOptions())

	floor := components.NewBox(20, 1, 0, true)
	floor.SnapTo(geom.V(0, -0.5))
	floor.Colour = components.Colour{R: 150, G: 255, B: 255}
	w.Add(floor)

	for i := 0; i < 5; i++ {
		b := components.NewRegularPolygon(3+i, 0.5, 1+float64(i), false)
		b.SnapTo(geom.V(float64(i)*1.2-2.4, 1+float64(i)*0.3))
		b.SetRotation(float64(i) * 0.4)
		b.LinearVelocity = geom.V(0.5, 0)
		b.AngularVelocity = 0.2 * float64(i)
		b.Restitution = 0.3
		w.Add(b)
	}
	return w
}

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	w := testWorld()
	for i := 0; i < 30; i++ {
		w.Advance(1.0 / 60)
	}

	bm := &Bookmark{Type: BookmarkSettled, Tick: 30, Description: "Test bookmark"}
	snapshot := CaptureSnapshot(w, bm)

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if filepath.Base(path) != "snapshot_30_settled.json" {
		t.Errorf("snapshot name = %s", filepath.Base(path))
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.Version != SnapshotVersion || loaded.Tick != 30 {
		t.Errorf("Version=%d Tick=%d", loaded.Version, loaded.Tick)
	}
	if loaded.GravityY != -9.81 || loaded.CorrectionPercent != 0.4 || loaded.CorrectionSlop != 0.01 {
		t.Errorf("world settings = %v %v %v", loaded.GravityY, loaded.CorrectionPercent, loaded.CorrectionSlop)
	}
	if len(loaded.Bodies) != 6 {
		t.Fatalf("len(Bodies) = %d, want 6", len(loaded.Bodies))
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkSettled {
		t.Errorf("Bookmark = %+v", loaded.Bookmark)
	}

	for i, got := range loaded.Bodies {
		want := snapshot.Bodies[i]
		if got.X != want.X || got.Y != want.Y || got.Rotation != want.Rotation ||
			got.VelX != want.VelX || got.VelY != want.VelY || got.AngularVelocity != want.AngularVelocity {
			t.Errorf("body %d state mismatch: %+v vs %+v", i, got, want)
		}
		if len(got.Vertices) != len(want.Vertices) || got.Colour != want.Colour || got.Static != want.Static {
			t.Errorf("body %d shape mismatch", i)
		}
	}
}

func TestSnapshotRestoreReplays(t *testing.T) {
	w := testWorld()
	for i := 0; i < 20; i++ {
		w.Advance(1.0 / 60)
	}

	path, err := SaveSnapshot(CaptureSnapshot(w, nil), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, "snapshot_20.json") {
		t.Errorf("path = %s", path)
	}
	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := loaded.Restore(world.Options{})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	defer restored.Close()

	if restored.Tick() != 20 || restored.Len() != w.Len() || !restored.Gravity().Eq(w.Gravity()) {
		t.Fatalf("restored tick %d len %d gravity %v", restored.Tick(), restored.Len(), restored.Gravity())
	}

	for i := 0; i < 60; i++ {
		w.Advance(1.0 / 60)
		restored.Advance(1.0 / 60)
	}
	for i, b := range w.Bodies() {
		r := restored.Body(components.Handle(i))
		if !b.Position().Eq(r.Position()) || b.Rotation() != r.Rotation() || !b.LinearVelocity.Eq(r.LinearVelocity) {
			t.Errorf("body %d diverged after restore: %v vs %v", i, b.Position(), r.Position())
		}
		if b.Inertia != r.Inertia || b.InverseMass != r.InverseMass {
			t.Errorf("body %d mass properties differ", i)
		}
	}
}

func TestSnapshotRestoreErrors(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"wrong version", Snapshot{Version: SnapshotVersion + 1}},
		{"degenerate body", Snapshot{Version: SnapshotVersion, Bodies: []BodyState{{Vertices: []geom.Vec2{{}, {X: 1}}}}}},
		{"massless dynamic", Snapshot{Version: SnapshotVersion, Bodies: []BodyState{{
			Vertices: components.BoxVertices(1, 1),
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.snap.Restore(world.Options{}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadSnapshotErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadSnapshot(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(bad); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
