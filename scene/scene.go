// Package scene describes worlds as YAML body lists and populates a World
// from them.
package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/rigid/components"
	"github.com/pthm-cable/rigid/geom"
	"github.com/pthm-cable/rigid/world"
)

//go:embed default.yaml
var defaultYAML []byte

// Body kinds.
const (
	KindPolygon = "polygon"
	KindBox     = "box"
)

// Point is a 2-D value in scene files.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vec converts p to a geom.Vec2.
func (p Point) Vec() geom.Vec2 { return geom.V(p.X, p.Y) }

// Scene is a named list of body descriptions.
type Scene struct {
	Name string `yaml:"name"`
	// Gravity overrides the world's gravity when set.
	Gravity *Point     `yaml:"gravity,omitempty"`
	Bodies  []BodySpec `yaml:"bodies"`
}

// BodySpec describes one body, or a row of identical bodies when Repeat > 1.
type BodySpec struct {
	Name string `yaml:"name,omitempty"`
	Kind string `yaml:"kind"`

	// polygon
	Sides  int     `yaml:"sides,omitempty"`
	Radius float64 `yaml:"radius,omitempty"`
	// box
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`

	Mass   float64 `yaml:"mass,omitempty"`
	Static bool    `yaml:"static,omitempty"`

	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation,omitempty"`

	Restitution     *float64           `yaml:"restitution,omitempty"`
	Velocity        Point              `yaml:"velocity,omitempty"`
	AngularVelocity float64            `yaml:"angular_velocity,omitempty"`
	Colour          *components.Colour `yaml:"colour,omitempty"`

	// Repeat places this many copies, each shifted by Offset from the last.
	Repeat int   `yaml:"repeat,omitempty"`
	Offset Point `yaml:"offset,omitempty"`
}

// Default returns the built-in demo scene.
func Default() (*Scene, error) {
	s, err := Parse(defaultYAML)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded scene: %w", err)
	}
	return s, nil
}

// Load reads a scene file. An empty path returns the default scene.
func Load(path string) (*Scene, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scene.
func Parse(data []byte) (*Scene, error) {
	s := &Scene{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks every body description.
func (s *Scene) Validate() error {
	if len(s.Bodies) == 0 {
		return errors.New("scene has no bodies")
	}
	var errs []error
	for i := range s.Bodies {
		if err := s.Bodies[i].validate(); err != nil {
			errs = append(errs, fmt.Errorf("body %d (%s): %w", i, s.Bodies[i].Name, err))
		}
	}
	return errors.Join(errs...)
}

func (b *BodySpec) validate() error {
	switch b.Kind {
	case KindPolygon:
		if b.Sides < 3 {
			return fmt.Errorf("polygon needs at least 3 sides, got %d", b.Sides)
		}
		if b.Radius <= 0 {
			return fmt.Errorf("polygon radius must be positive, got %v", b.Radius)
		}
	case KindBox:
		if b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("box extents must be positive, got %vx%v", b.Width, b.Height)
		}
	default:
		return fmt.Errorf("unknown kind %q", b.Kind)
	}
	if !b.Static && b.Mass <= 0 {
		return fmt.Errorf("dynamic body needs a positive mass, got %v", b.Mass)
	}
	if b.Restitution != nil && (*b.Restitution < 0 || *b.Restitution > 1) {
		return fmt.Errorf("restitution must be in [0, 1], got %v", *b.Restitution)
	}
	if b.Repeat < 0 {
		return fmt.Errorf("repeat must not be negative, got %d", b.Repeat)
	}
	return nil
}

// Count returns the number of bodies the spec places.
func (b *BodySpec) Count() int {
	return max(b.Repeat, 1)
}

// NewBody builds copy i of the spec (i < Count()).
func (b *BodySpec) NewBody(i int) *components.RigidBody {
	var body *components.RigidBody
	switch b.Kind {
	case KindBox:
		body = components.NewBox(b.Width, b.Height, b.Mass, b.Static)
	default:
		body = components.NewRegularPolygon(b.Sides, b.Radius, b.Mass, b.Static)
	}

	pos := geom.V(b.X, b.Y).Add(b.Offset.Vec().Scale(float64(i)))
	body.SnapTo(pos)
	body.SetRotation(b.Rotation)
	if b.Restitution != nil {
		body.Restitution = *b.Restitution
	}
	if b.Colour != nil {
		body.Colour = *b.Colour
	}
	if !b.Static {
		body.LinearVelocity = b.Velocity.Vec()
		body.AngularVelocity = b.AngularVelocity
	}
	return body
}

// Len returns the number of bodies Build adds.
func (s *Scene) Len() int {
	n := 0
	for i := range s.Bodies {
		n += s.Bodies[i].Count()
	}
	return n
}

// Build adds the scene's bodies to w in file order and returns their handles.
func (s *Scene) Build(w *world.World) ([]components.Handle, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Gravity != nil {
		w.SetGravity(s.Gravity.Vec())
	}

	handles := make([]components.Handle, 0, s.Len())
	static := 0
	for i := range s.Bodies {
		spec := &s.Bodies[i]
		for j := 0; j < spec.Count(); j++ {
			handles = append(handles, w.Add(spec.NewBody(j)))
		}
		if spec.Static {
			static += spec.Count()
		}
	}

	slog.Info("scene loaded",
		"name", s.Name,
		"bodies", len(handles),
		"static", static,
	)
	return handles, nil
}
