// Package telemetry provides windowed simulation statistics, performance
// timing, CSV output, bookmarks and snapshots.
package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/rigid/components"
	"github.com/pthm-cable/rigid/world"
)

// Collector accumulates step statistics within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Counters for current window
	steps            int
	bodyUpdates      int
	cacheRebuilds    int
	broadChecks      int
	narrowChecks     int
	collisions       int
	contactsResolved int

	// Per-step samples for the current window
	energies     []float64
	penetrations []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec/dt + 0.5)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		energies:            make([]float64, 0, ticksPerWindow),
		penetrations:        make([]float64, 0, ticksPerWindow),
	}
}

// Record adds one step. kineticEnergy is the world's total after the step.
func (c *Collector) Record(st world.StepStats, kineticEnergy float64) {
	c.steps++
	c.bodyUpdates += st.BodyUpdates
	c.cacheRebuilds += st.CacheRebuilds
	c.broadChecks += st.BroadChecks
	c.narrowChecks += st.NarrowChecks
	c.collisions += st.Collisions
	c.contactsResolved += st.ContactsResolved

	c.energies = append(c.energies, kineticEnergy)
	if st.Collisions > 0 {
		c.penetrations = append(c.penetrations, st.MaxPenetration)
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// bodies is sampled for the end-of-window speed distribution.
func (c *Collector) Flush(currentTick int32, bodies []*components.RigidBody) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Bodies: len(bodies),

		Steps:            c.steps,
		BodyUpdates:      c.bodyUpdates,
		CacheRebuilds:    c.cacheRebuilds,
		BroadChecks:      c.broadChecks,
		NarrowChecks:     c.narrowChecks,
		Collisions:       c.collisions,
		ContactsResolved: c.contactsResolved,
	}
	if c.steps > 0 {
		stats.ContactsPerStep = float64(c.contactsResolved) / float64(c.steps)
	}

	stats.EnergyMean, stats.EnergyStd = MeanStd(c.energies)
	if n := len(c.energies); n > 0 {
		stats.EnergyEnd = c.energies[n-1]
	}

	speeds := make([]float64, 0, len(bodies))
	for _, b := range bodies {
		if b.IsStatic {
			continue
		}
		speeds = append(speeds, b.LinearVelocity.Length())
	}
	stats.Dynamic = len(speeds)
	stats.SpeedMean, _ = MeanStd(speeds)
	if len(speeds) > 0 {
		stats.SpeedMax = floats.Max(speeds)
	}

	if len(c.penetrations) > 0 {
		stats.PenetrationMax = floats.Max(c.penetrations)
		stats.PenetrationP50 = Quantile(c.penetrations, 0.5)
		stats.PenetrationP90 = Quantile(c.penetrations, 0.9)
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.steps = 0
	c.bodyUpdates = 0
	c.cacheRebuilds = 0
	c.broadChecks = 0
	c.narrowChecks = 0
	c.collisions = 0
	c.contactsResolved = 0
	c.energies = c.energies[:0]
	c.penetrations = c.penetrations[:0]

	return stats
}

// StartAt discards the current window and starts a new one at tick, for
// runs resumed from a snapshot.
func (c *Collector) StartAt(tick int32) {
	c.Flush(tick, nil)
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

// MeanStd returns the mean and sample standard deviation of values.
// Empty input gives zeros; a single value has zero deviation.
func MeanStd(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// Quantile returns the empirical p-quantile of values, which need not be
// sorted. Returns 0 for empty input.
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}
