package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/rigid/components"
	"github.com/pthm-cable/rigid/geom"
	"github.com/pthm-cable/rigid/systems"
	"github.com/pthm-cable/rigid/world"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete simulation state for replay.
type Snapshot struct {
	Version int `json:"version"`

	GravityX          float64 `json:"gravity_x"`
	GravityY          float64 `json:"gravity_y"`
	CorrectionPercent float64 `json:"correction_percent"`
	CorrectionSlop    float64 `json:"correction_slop"`

	Tick int32 `json:"tick"`

	Bodies []BodyState `json:"bodies"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// BodyState holds one body's complete state.
type BodyState struct {
	// Local vertices, clockwise around the centre of mass
	Vertices []geom.Vec2 `json:"vertices"`
	Radius   float64     `json:"radius"`

	Mass   float64 `json:"mass"`
	Static bool    `json:"static"`

	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`

	VelX            float64 `json:"vel_x"`
	VelY            float64 `json:"vel_y"`
	AngularVelocity float64 `json:"angular_velocity"`

	Restitution float64           `json:"restitution"`
	Colour      components.Colour `json:"colour"`
}

// CaptureSnapshot records the state of every body in w, in handle order.
func CaptureSnapshot(w *world.World, bookmark *Bookmark) *Snapshot {
	opts := w.Options()
	s := &Snapshot{
		Version:           SnapshotVersion,
		GravityX:          opts.Gravity.X,
		GravityY:          opts.Gravity.Y,
		CorrectionPercent: opts.Resolver.Percent,
		CorrectionSlop:    opts.Resolver.Slop,
		Tick:              w.Tick(),
		Bodies:            make([]BodyState, 0, w.Len()),
		Bookmark:          bookmark,
	}

	for _, b := range w.Bodies() {
		pos := b.Position()
		s.Bodies = append(s.Bodies, BodyState{
			Vertices:        append([]geom.Vec2(nil), b.Vertices()...),
			Radius:          b.Radius,
			Mass:            b.Mass,
			Static:          b.IsStatic,
			X:               pos.X,
			Y:               pos.Y,
			Rotation:        b.Rotation(),
			VelX:            b.LinearVelocity.X,
			VelY:            b.LinearVelocity.Y,
			AngularVelocity: b.AngularVelocity,
			Restitution:     b.Restitution,
			Colour:          b.Colour,
		})
	}
	return s
}

// Restore builds a new world from the snapshot. Gravity, the resolver
// policy and the tick counter come from the snapshot; the remaining
// options (parallelism) from opts.
func (s *Snapshot) Restore(opts world.Options) (*world.World, error) {
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", s.Version, SnapshotVersion)
	}

	opts.Gravity = geom.V(s.GravityX, s.GravityY)
	opts.Resolver = systems.ResolverOptions{Percent: s.CorrectionPercent, Slop: s.CorrectionSlop}
	w := world.New(opts)

	for i, bs := range s.Bodies {
		if len(bs.Vertices) < 3 {
			w.Close()
			return nil, fmt.Errorf("body %d: %d vertices", i, len(bs.Vertices))
		}
		if !bs.Static && bs.Mass <= 0 {
			w.Close()
			return nil, fmt.Errorf("body %d: dynamic body with mass %v", i, bs.Mass)
		}

		b := components.FromLocalVertices(bs.Vertices, bs.Mass, bs.Static)
		b.Radius = bs.Radius
		b.SnapTo(geom.V(bs.X, bs.Y))
		b.SetRotation(bs.Rotation)
		b.LinearVelocity = geom.V(bs.VelX, bs.VelY)
		b.AngularVelocity = bs.AngularVelocity
		b.Restitution = bs.Restitution
		b.Colour = bs.Colour
		w.Add(b)
	}
	w.SetTick(s.Tick)
	return w, nil
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}
