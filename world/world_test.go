package world

import (
	"math"
	"testing"

	"github.com/pthm-cable/rigid/components"
	"github.com/pthm-cable/rigid/geom"
	"github.com/pthm-cable/rigid/systems"
)

const dt = 1.0 / 60

// boxOnFloor returns a world with a 10x1 static floor whose top is at y=0
// and a unit box of mass 1 whose bottom is one unit above it.
func boxOnFloor(opts Options) (*World, *components.RigidBody, *components.RigidBody) {
	w := New(opts)
	floor := components.NewBox(10, 1, 0, true)
	floor.SnapTo(geom.V(0, -0.5))
	box := components.NewBox(1, 1, 1, false)
	box.SnapTo(geom.V(0, 1.5))
	w.Add(floor)
	w.Add(box)
	return w, floor, box
}

func TestBoxSettlesOnFloor(t *testing.T) {
	w, floor, box := boxOnFloor(DefaultOptions())
	defer w.Close()

	floorPos, floorVersion := floor.Position(), floor.Version()

	var last StepStats
	var minY, maxY = math.Inf(1), math.Inf(-1)
	for i := 0; i < 600; i++ {
		last = w.Advance(dt)
		if i >= 540 {
			y := box.Position().Y
			minY = math.Min(minY, y)
			maxY = math.Max(maxY, y)
		}
	}

	if last.Collisions != 1 {
		t.Fatalf("Collisions = %d, want the box resting on the floor", last.Collisions)
	}
	if last.MaxPenetration > 0.05 {
		t.Errorf("penetration %f, want near the slop", last.MaxPenetration)
	}
	if maxY-minY > 1e-3 {
		t.Errorf("box still moving: y in [%f, %f]", minY, maxY)
	}
	if y := box.Position().Y; y < 0.45 || y > 0.5 {
		t.Errorf("box centre at y=%f, want resting on the floor", y)
	}
	if v := box.LinearVelocity.Length(); v > 0.2 {
		t.Errorf("box speed %f, want near zero", v)
	}
	if math.Abs(box.AngularVelocity) > 1e-9 || math.Abs(box.Rotation()) > 1e-9 {
		t.Errorf("box spun: ω=%f θ=%f", box.AngularVelocity, box.Rotation())
	}

	if !floor.Position().Eq(floorPos) || floor.Version() != floorVersion || floor.Rotation() != 0 {
		t.Error("static floor moved")
	}
	if !floor.LinearVelocity.Eq(geom.Vec2{}) || floor.AngularVelocity != 0 {
		t.Error("static floor gained velocity")
	}
}

func TestFreeFall(t *testing.T) {
	w := New(Options{Gravity: geom.V(0, -10), Resolver: systems.DefaultResolverOptions()})
	b := components.NewRegularPolygon(5, 1, 2, false)
	w.Add(b)

	st := w.Advance(0.1)
	if st.BodyUpdates != 1 || st.BroadChecks != 0 || st.Collisions != 0 {
		t.Errorf("StepStats = %+v", st)
	}
	if !b.LinearVelocity.Eq(geom.V(0, -1)) {
		t.Errorf("velocity = %v, want (0, -1)", b.LinearVelocity)
	}
	if math.Abs(b.Position().Y+0.1) > 1e-12 {
		t.Errorf("y = %f, want -0.1", b.Position().Y)
	}
}

func TestAddAndBody(t *testing.T) {
	w := New(DefaultOptions())
	a := components.NewBox(1, 1, 1, false)
	b := components.NewBox(2, 2, 1, false)

	if h := w.Add(a); h != 0 {
		t.Errorf("first handle = %d", h)
	}
	hb := w.Add(b)
	if hb != 1 || w.Body(hb) != b || w.Len() != 2 {
		t.Errorf("handle %d body %p len %d", hb, w.Body(hb), w.Len())
	}
	if got := w.Bodies(); got[0] != a || got[1] != b {
		t.Error("Bodies not in insertion order")
	}

	for _, h := range []components.Handle{-1, 2} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Body(%d) should panic", h)
				}
			}()
			w.Body(h)
		}()
	}
}

func TestStaticPairsAreNeverChecked(t *testing.T) {
	w := New(DefaultOptions())
	for i := 0; i < 3; i++ {
		b := components.NewBox(4, 1, 0, true)
		b.SnapTo(geom.V(float64(i), 0))
		w.Add(b)
	}
	st := w.Advance(dt)
	if st.BroadChecks != 0 || st.NarrowChecks != 0 || st.BodyUpdates != 0 {
		t.Errorf("StepStats = %+v, want no work", st)
	}
	if st.CacheRebuilds != 0 {
		t.Errorf("CacheRebuilds = %d", st.CacheRebuilds)
	}
}

func TestStatsAccumulate(t *testing.T) {
	w, _, _ := boxOnFloor(DefaultOptions())
	var sum Stats
	for i := 0; i < 120; i++ {
		sum.add(w.Advance(dt))
	}
	got := w.Stats()
	if got != sum || got.Steps != 120 || w.Tick() != 120 {
		t.Errorf("Stats = %+v, want %+v", got, sum)
	}
	if got.ContactsResolved == 0 || got.NarrowChecks == 0 {
		t.Errorf("expected contacts by tick 120: %+v", got)
	}

	w.ResetStats()
	if w.Stats() != (Stats{}) {
		t.Error("ResetStats left counters")
	}
	if w.Tick() != 120 {
		t.Error("ResetStats must not touch the tick counter")
	}
}

func TestParallelNarrowPhaseMatchesSerial(t *testing.T) {
	build := func(opts Options) *World {
		w := New(opts)
		floor := components.NewBox(40, 1, 0, true)
		floor.SnapTo(geom.V(0, -0.5))
		w.Add(floor)
		for i := 0; i < 30; i++ {
			b := components.NewRegularPolygon(3+i%4, 0.5, 1, false)
			b.SnapTo(geom.V(float64(i%10)-5, 1+float64(i/10)*0.9))
			b.SetRotation(float64(i) * 0.3)
			w.Add(b)
		}
		return w
	}

	serial := build(DefaultOptions())
	opts := DefaultOptions()
	opts.ParallelThreshold = 1
	opts.Workers = 4
	parallel := build(opts)
	defer parallel.Close()

	for i := 0; i < 120; i++ {
		a := serial.Advance(dt)
		b := parallel.Advance(dt)
		if a != b {
			t.Fatalf("tick %d: serial %+v parallel %+v", i, a, b)
		}
	}
	for i, b := range serial.Bodies() {
		p := parallel.Body(components.Handle(i))
		if !b.Position().Eq(p.Position()) || b.Rotation() != p.Rotation() {
			t.Errorf("body %d diverged: %v/%f vs %v/%f", i, b.Position(), b.Rotation(), p.Position(), p.Rotation())
		}
	}
}

type recordingTimer struct {
	ticks  int
	phases []string
	open   bool
	last   StepStats
}

func (r *recordingTimer) StartTick()          { r.ticks++; r.phases = r.phases[:0]; r.open = true }
func (r *recordingTimer) StartPhase(p string) { r.phases = append(r.phases, p) }
func (r *recordingTimer) EndTick(st StepStats) {
	r.open = false
	r.last = st
}

func TestPhaseTimerSeesEveryPhase(t *testing.T) {
	w, _, _ := boxOnFloor(DefaultOptions())
	timer := &recordingTimer{}
	w.SetPhaseTimer(timer)

	w.Advance(dt)
	st := w.Advance(dt)
	if timer.last != st {
		t.Errorf("EndTick got %+v, Advance returned %+v", timer.last, st)
	}
	if timer.ticks != 2 || timer.open {
		t.Errorf("ticks=%d open=%v", timer.ticks, timer.open)
	}
	if len(timer.phases) != len(Phases) {
		t.Fatalf("phases = %v, want %v", timer.phases, Phases)
	}
	for i, p := range Phases {
		if timer.phases[i] != p {
			t.Errorf("phase %d = %s, want %s", i, timer.phases[i], p)
		}
	}

	w.SetPhaseTimer(nil)
	w.Advance(dt)
	if timer.ticks != 2 {
		t.Error("removed timer still called")
	}
}

func TestStepStatsWork(t *testing.T) {
	st := StepStats{BodyUpdates: 3, BroadChecks: 6, NarrowChecks: 2, Collisions: 1, ContactsResolved: 2}
	tests := []struct {
		phase string
		want  int
	}{
		{PhaseIntegrate, 3},
		{PhaseBroadPhase, 6},
		{PhaseNarrowPhase, 2},
		{PhaseResolve, 1},
		{"render", 0},
	}
	for _, tt := range tests {
		if got := st.Work(tt.phase); got != tt.want {
			t.Errorf("Work(%q) = %d, want %d", tt.phase, got, tt.want)
		}
	}
	if PhaseIndex(PhaseNarrowPhase) != 2 || PhaseIndex("render") != -1 {
		t.Error("PhaseIndex does not follow Phases")
	}
}

func TestKineticEnergy(t *testing.T) {
	w := New(DefaultOptions())
	b := components.NewBox(1, 1, 2, false)
	b.LinearVelocity = geom.V(3, 0)
	w.Add(b)
	w.Add(components.NewBox(5, 1, 0, true))
	if got := w.KineticEnergy(); math.Abs(got-9) > 1e-12 {
		t.Errorf("KineticEnergy = %f, want 9", got)
	}
}
