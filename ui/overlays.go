package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayFill         OverlayID = "fill"
	OverlayCentres      OverlayID = "centres"
	OverlayVelocity     OverlayID = "velocity"
	OverlayContacts     OverlayID = "contacts"
	OverlayNormals      OverlayID = "normals"
	OverlayAABBs        OverlayID = "aabbs"
	OverlayBoundCircles OverlayID = "bound_circles"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID        OverlayID
	Name      string
	Key       int32 // 0 = no key
	KeyLabel  string
	Category  string // "shapes" or "collision"
	Exclusive []OverlayID
	Default   bool
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{ID: OverlayFill, Name: "Filled Shapes", Key: rl.KeyF, KeyLabel: "F", Category: "shapes"})
	r.Register(OverlayDescriptor{ID: OverlayCentres, Name: "Centres", Key: rl.KeyO, KeyLabel: "O", Category: "shapes"})
	r.Register(OverlayDescriptor{ID: OverlayVelocity, Name: "Velocity", Key: rl.KeyV, KeyLabel: "V", Category: "shapes"})

	r.Register(OverlayDescriptor{ID: OverlayContacts, Name: "Contacts", Key: rl.KeyC, KeyLabel: "C", Category: "collision", Default: true})
	r.Register(OverlayDescriptor{ID: OverlayNormals, Name: "Normals", Key: rl.KeyN, KeyLabel: "N", Category: "collision"})
	r.Register(OverlayDescriptor{
		ID:        OverlayAABBs,
		Name:      "AABBs",
		Key:       rl.KeyB,
		KeyLabel:  "B",
		Category:  "collision",
		Exclusive: []OverlayID{OverlayBoundCircles},
	})
	r.Register(OverlayDescriptor{
		ID:        OverlayBoundCircles,
		Name:      "Bounding Circles",
		Key:       rl.KeyX,
		KeyLabel:  "X",
		Category:  "collision",
		Exclusive: []OverlayID{OverlayAABBs},
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state. Enabling an overlay
// disables the ones it excludes.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}
	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeys toggles every overlay whose key was pressed this frame.
func (r *OverlayRegistry) HandleKeys() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.Toggle(desc.ID)
		}
	}
}
