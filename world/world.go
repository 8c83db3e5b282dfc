// Package world owns the bodies of a simulation and advances them one tick
// at a time through the integrate, broad phase, narrow phase and resolve
// stages.
package world

import (
	"fmt"

	"github.com/pthm-cable/rigid/components"
	"github.com/pthm-cable/rigid/config"
	"github.com/pthm-cable/rigid/geom"
	"github.com/pthm-cable/rigid/systems"
)

// Phase names reported to a PhaseTimer.
const (
	PhaseIntegrate   = "integrate"
	PhaseBroadPhase  = "broad_phase"
	PhaseNarrowPhase = "narrow_phase"
	PhaseResolve     = "resolve"
)

// Phases lists the step phases in execution order.
var Phases = [...]string{PhaseIntegrate, PhaseBroadPhase, PhaseNarrowPhase, PhaseResolve}

// PhaseIndex returns the position of phase in Phases, or -1.
func PhaseIndex(phase string) int {
	for i, p := range Phases {
		if p == phase {
			return i
		}
	}
	return -1
}

// PhaseTimer receives phase boundaries during Advance. EndTick is given
// the step's counters so that timings can be related to the work done.
// telemetry.PerfCollector satisfies it.
type PhaseTimer interface {
	StartTick()
	StartPhase(phase string)
	EndTick(st StepStats)
}

// Options configures a World.
type Options struct {
	Gravity  geom.Vec2
	Resolver systems.ResolverOptions

	// ParallelThreshold is the pair count at which the narrow phase moves
	// onto worker goroutines. Zero or negative keeps it serial.
	ParallelThreshold int
	// Workers is the narrow-phase worker count (0 = GOMAXPROCS).
	Workers int
}

// DefaultOptions returns standard gravity, the default resolver policy and
// a serial narrow phase.
func DefaultOptions() Options {
	return Options{
		Gravity:  geom.V(0, -9.81),
		Resolver: systems.DefaultResolverOptions(),
	}
}

// OptionsFromConfig builds Options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Gravity: cfg.Derived.Gravity,
		Resolver: systems.ResolverOptions{
			Percent: cfg.Physics.CorrectionPercent,
			Slop:    cfg.Physics.CorrectionSlop,
		},
		ParallelThreshold: cfg.Physics.ParallelThreshold,
		Workers:           cfg.Physics.Workers,
	}
}

// World holds bodies in insertion order. Handles returned by Add index
// into that order and stay valid for the life of the world.
type World struct {
	bodies []*components.RigidBody
	opts   Options
	pool   *systems.NarrowPool
	timer  PhaseTimer

	tick  int32
	stats Stats

	// scratch reused across steps
	candidates []systems.Pair
	overlaps   []systems.Pair
	manifolds  []systems.Manifold
}

// New creates an empty world.
func New(opts Options) *World {
	w := &World{opts: opts}
	if opts.ParallelThreshold > 0 {
		w.pool = systems.NewNarrowPool(opts.Workers, opts.ParallelThreshold)
	}
	return w
}

// Add appends b and returns its handle.
func (w *World) Add(b *components.RigidBody) components.Handle {
	w.bodies = append(w.bodies, b)
	return components.Handle(len(w.bodies) - 1)
}

// Bodies returns the bodies in insertion order. The slice is shared with
// the world; callers must not append to it.
func (w *World) Bodies() []*components.RigidBody { return w.bodies }

// Body returns the body for h.
func (w *World) Body(h components.Handle) *components.RigidBody {
	if h < 0 || int(h) >= len(w.bodies) {
		panic(fmt.Sprintf("world: handle %d out of range [0, %d)", h, len(w.bodies)))
	}
	return w.bodies[h]
}

// Len returns the number of bodies.
func (w *World) Len() int { return len(w.bodies) }

// Gravity returns the world's gravity.
func (w *World) Gravity() geom.Vec2 { return w.opts.Gravity }

// SetGravity replaces the world's gravity.
func (w *World) SetGravity(g geom.Vec2) { w.opts.Gravity = g }

// Options returns the options the world runs with.
func (w *World) Options() Options { return w.opts }

// SetResolver replaces the positional correction policy.
func (w *World) SetResolver(r systems.ResolverOptions) { w.opts.Resolver = r }

// SetPhaseTimer installs a timer notified of every step phase; nil removes it.
func (w *World) SetPhaseTimer(t PhaseTimer) { w.timer = t }

// Tick returns the number of completed steps.
func (w *World) Tick() int32 { return w.tick }

// SetTick overrides the step counter, used when restoring a snapshot.
func (w *World) SetTick(t int32) { w.tick = t }

// Stats returns the counters accumulated since the last ResetStats.
func (w *World) Stats() Stats { return w.stats }

// ResetStats zeroes the accumulated counters.
func (w *World) ResetStats() { w.stats.Reset() }

// Manifolds returns the colliding manifolds of the last step. The slice is
// overwritten by the next call to Advance.
func (w *World) Manifolds() []systems.Manifold { return w.manifolds }

// Close stops the narrow-phase workers, if any.
func (w *World) Close() {
	w.pool.Close()
}

// Advance runs one fixed step of length dt.
func (w *World) Advance(dt float64) StepStats {
	var st StepStats
	if w.timer != nil {
		w.timer.StartTick()
		w.timer.StartPhase(PhaseIntegrate)
	}
	st.BodyUpdates = systems.Integrate(w.bodies, w.opts.Gravity, dt)

	if w.timer != nil {
		w.timer.StartPhase(PhaseBroadPhase)
	}
	w.candidates = systems.CandidatePairs(w.candidates, w.bodies)
	w.overlaps, st.CacheRebuilds = systems.BroadPhase(w.overlaps, w.bodies, w.candidates)
	st.BroadChecks = len(w.candidates)
	st.NarrowChecks = len(w.overlaps)

	if w.timer != nil {
		w.timer.StartPhase(PhaseNarrowPhase)
	}
	w.manifolds = systems.NarrowPhase(w.manifolds, w.bodies, w.overlaps, w.pool)
	st.Collisions = len(w.manifolds)
	for i := range w.manifolds {
		if p := w.manifolds[i].Penetration; p > st.MaxPenetration {
			st.MaxPenetration = p
		}
	}

	if w.timer != nil {
		w.timer.StartPhase(PhaseResolve)
	}
	st.ContactsResolved = systems.Resolve(w.bodies, w.manifolds, w.opts.Resolver)

	if w.timer != nil {
		w.timer.EndTick(st)
	}
	w.tick++
	w.stats.add(st)
	return st
}

// KineticEnergy returns the total kinetic energy of the dynamic bodies.
func (w *World) KineticEnergy() float64 {
	var e float64
	for _, b := range w.bodies {
		e += b.KineticEnergy()
	}
	return e
}
