package systems

import "github.com/pthm-cable/rigid/components"

// Pair names two bodies by handle, with A < B.
type Pair struct {
	A, B components.Handle
}

// CandidatePairs enumerates every unordered pair of bodies in insertion
// order (i < j), skipping pairs where both bodies are static.
//
// This is an O(n²) scan with no spatial index, which limits the world to
// small body counts.
func CandidatePairs(dst []Pair, bodies []*components.RigidBody) []Pair {
	dst = dst[:0]
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if bodies[i].IsStatic && bodies[j].IsStatic {
				continue
			}
			dst = append(dst, Pair{A: components.Handle(i), B: components.Handle(j)})
		}
	}
	return dst
}

// BroadPhase keeps the candidate pairs whose bounding boxes overlap,
// refreshing world-space caches as it goes. The returned count is the
// number of cache rebuilds it triggered.
func BroadPhase(dst []Pair, bodies []*components.RigidBody, pairs []Pair) ([]Pair, int) {
	dst = dst[:0]
	rebuilt := 0
	for _, p := range pairs {
		a, b := bodies[p.A], bodies[p.B]
		if RefreshWorldSpace(a) {
			rebuilt++
		}
		if RefreshWorldSpace(b) {
			rebuilt++
		}
		if Overlaps(ComputeAABB(a), ComputeAABB(b)) {
			dst = append(dst, p)
		}
	}
	return dst, rebuilt
}
