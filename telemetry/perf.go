package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/rigid/world"
)

const numPhases = len(world.Phases)

// stepSample is the cost of one Advance call. Arrays are indexed like
// world.Phases.
type stepSample struct {
	total time.Duration
	phase [numPhases]time.Duration
	work  [numPhases]int
}

// PerfCollector times the phases of each step over a rolling window and
// pairs each timing with the number of items the phase processed.
// It implements world.PhaseTimer.
type PerfCollector struct {
	now func() time.Time

	window []stepSample
	next   int
	filled int

	cur        stepSample
	tickStart  time.Time
	phaseStart time.Time
	open       int // index of the running phase, -1 when none

	lastFrame time.Time
	frameTime time.Duration
}

// NewPerfCollector returns a collector averaging over the last windowSize
// steps. Non-positive sizes default to 60.
func NewPerfCollector(windowSize int) *PerfCollector {
	return newPerfCollectorWithClock(windowSize, time.Now)
}

func newPerfCollectorWithClock(windowSize int, now func() time.Time) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		now:    now,
		window: make([]stepSample, windowSize),
		open:   -1,
	}
}

// StartTick begins a new step.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.cur = stepSample{}
	p.open = -1
}

// StartPhase closes the running phase, if any, and starts timing phase.
// Names outside world.Phases still close the previous phase but are not
// recorded.
func (p *PerfCollector) StartPhase(phase string) {
	t := p.now()
	p.closePhase(t)
	p.phaseStart = t
	p.open = world.PhaseIndex(phase)
}

func (p *PerfCollector) closePhase(t time.Time) {
	if p.open >= 0 {
		p.cur.phase[p.open] += t.Sub(p.phaseStart)
	}
	p.open = -1
}

// EndTick closes the step and stores it with the step's work counters.
func (p *PerfCollector) EndTick(st world.StepStats) {
	t := p.now()
	p.closePhase(t)
	p.cur.total = t.Sub(p.tickStart)
	for i, name := range world.Phases {
		p.cur.work[i] = st.Work(name)
	}

	p.window[p.next] = p.cur
	p.next = (p.next + 1) % len(p.window)
	if p.filled < len(p.window) {
		p.filled++
	}
}

// RecordFrame marks a rendered frame; graphics mode only.
func (p *PerfCollector) RecordFrame() {
	t := p.now()
	if !p.lastFrame.IsZero() {
		p.frameTime = t.Sub(p.lastFrame)
	}
	p.lastFrame = t
}

// PhaseStats is the averaged cost of one step phase.
type PhaseStats struct {
	Avg  time.Duration // mean time per step
	Pct  float64       // share of the mean step time
	Work float64       // mean items processed per step
}

// PerItem returns the mean time spent per processed item, or 0 when the
// phase did no work.
func (s PhaseStats) PerItem() time.Duration {
	if s.Work <= 0 {
		return 0
	}
	return time.Duration(float64(s.Avg) / s.Work)
}

// PerfStats summarises the collector's window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	TicksPerSecond  float64

	// Phases is indexed like world.Phases.
	Phases [numPhases]PhaseStats

	FrameDuration time.Duration
	FPS           float64
}

// Phase returns the stats for a named phase; unknown names give zero stats.
func (s PerfStats) Phase(name string) PhaseStats {
	if i := world.PhaseIndex(name); i >= 0 {
		return s.Phases[i]
	}
	return PhaseStats{}
}

// Stats averages the samples currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{FrameDuration: p.frameTime}
	if p.frameTime > 0 {
		s.FPS = float64(time.Second) / float64(p.frameTime)
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [numPhases]time.Duration
	var workSum [numPhases]int
	for i, sample := range p.window[:p.filled] {
		total += sample.total
		if i == 0 || sample.total < s.MinTickDuration {
			s.MinTickDuration = sample.total
		}
		s.MaxTickDuration = max(s.MaxTickDuration, sample.total)
		for j := range phaseSum {
			phaseSum[j] += sample.phase[j]
			workSum[j] += sample.work[j]
		}
	}

	n := p.filled
	s.AvgTickDuration = total / time.Duration(n)
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	for j := range s.Phases {
		ph := &s.Phases[j]
		ph.Avg = phaseSum[j] / time.Duration(n)
		ph.Work = float64(workSum[j]) / float64(n)
		if s.AvgTickDuration > 0 {
			ph.Pct = float64(ph.Avg) / float64(s.AvgTickDuration) * 100
		}
	}
	return s
}

// LogStats logs the window summary, one pct/work pair per phase.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_step_us", s.AvgTickDuration.Microseconds(),
		"max_step_us", s.MaxTickDuration.Microseconds(),
		"steps_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for i, name := range world.Phases {
		ph := s.Phases[i]
		attrs = append(attrs,
			name+"_pct", float64(int(ph.Pct*10))/10,
			name+"_work", ph.Work,
		)
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_step_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_step_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_step_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("steps_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for i, name := range world.Phases {
		ph := s.Phases[i]
		attrs = append(attrs, slog.Group(name,
			slog.Float64("pct", ph.Pct),
			slog.Float64("work", ph.Work),
			slog.Int64("ns_per_item", ph.PerItem().Nanoseconds()),
		))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd      int32   `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	FPS            float64 `csv:"fps"`
	IntegratePct   float64 `csv:"integrate_pct"`
	BroadPhasePct  float64 `csv:"broad_phase_pct"`
	NarrowPhasePct float64 `csv:"narrow_phase_pct"`
	ResolvePct     float64 `csv:"resolve_pct"`
	Bodies         float64 `csv:"bodies_integrated"`
	BroadChecks    float64 `csv:"broad_checks"`
	NarrowChecks   float64 `csv:"narrow_checks"`
	Manifolds      float64 `csv:"manifolds"`
	NarrowNSPer    int64   `csv:"narrow_ns_per_check"`
}

// ToCSV flattens the stats into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	integrate := s.Phase(world.PhaseIntegrate)
	broad := s.Phase(world.PhaseBroadPhase)
	narrow := s.Phase(world.PhaseNarrowPhase)
	resolve := s.Phase(world.PhaseResolve)
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		MinTickUS:      s.MinTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		FPS:            s.FPS,
		IntegratePct:   integrate.Pct,
		BroadPhasePct:  broad.Pct,
		NarrowPhasePct: narrow.Pct,
		ResolvePct:     resolve.Pct,
		Bodies:         integrate.Work,
		BroadChecks:    broad.Work,
		NarrowChecks:   narrow.Work,
		Manifolds:      resolve.Work,
		NarrowNSPer:    narrow.PerItem().Nanoseconds(),
	}
}
