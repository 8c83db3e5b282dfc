package world

// StepStats counts the work done by one call to Advance.
type StepStats struct {
	// BodyUpdates is the number of non-static bodies integrated.
	BodyUpdates int
	// CacheRebuilds is the number of world-space caches rebuilt.
	CacheRebuilds int
	// BroadChecks is the number of candidate pairs given to the broad phase.
	BroadChecks int
	// NarrowChecks is the number of pairs whose bounds overlapped.
	NarrowChecks int
	// Collisions is the number of manifolds with InCollision set.
	Collisions int
	// ContactsResolved is the number of contacts that received an impulse.
	ContactsResolved int
	// MaxPenetration is the deepest overlap seen this step, before correction.
	MaxPenetration float64
}

// Work returns the number of items the named phase processed: bodies
// integrated, candidate pairs bounded, overlapping pairs tested, or
// manifolds resolved. Unknown phases report 0.
func (s StepStats) Work(phase string) int {
	switch phase {
	case PhaseIntegrate:
		return s.BodyUpdates
	case PhaseBroadPhase:
		return s.BroadChecks
	case PhaseNarrowPhase:
		return s.NarrowChecks
	case PhaseResolve:
		return s.Collisions
	}
	return 0
}

// Stats accumulates StepStats across steps until reset.
type Stats struct {
	Steps            uint64
	BodyUpdates      uint64
	CacheRebuilds    uint64
	BroadChecks      uint64
	NarrowChecks     uint64
	Collisions       uint64
	ContactsResolved uint64
}

func (s *Stats) add(step StepStats) {
	s.Steps++
	s.BodyUpdates += uint64(step.BodyUpdates)
	s.CacheRebuilds += uint64(step.CacheRebuilds)
	s.BroadChecks += uint64(step.BroadChecks)
	s.NarrowChecks += uint64(step.NarrowChecks)
	s.Collisions += uint64(step.Collisions)
	s.ContactsResolved += uint64(step.ContactsResolved)
}

// Reset zeroes every counter.
func (s *Stats) Reset() {
	*s = Stats{}
}
