package systems

import "github.com/pthm-cable/rigid/components"

// RefreshWorldSpace brings b's world-space vertex cache up to date.
// It is a no-op when the cache already matches the body's pose and
// returns whether a rebuild happened. Position and rotation are not
// touched.
func RefreshWorldSpace(b *components.RigidBody) bool {
	if !b.NeedsRefresh() {
		return false
	}
	b.StoreWorldVertices()
	return true
}

// RefreshAll refreshes every body and returns how many caches were rebuilt.
func RefreshAll(bodies []*components.RigidBody) int {
	n := 0
	for _, b := range bodies {
		if RefreshWorldSpace(b) {
			n++
		}
	}
	return n
}
