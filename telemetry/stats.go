package telemetry

import "log/slog"

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Bodies  int `csv:"bodies"`
	Dynamic int `csv:"dynamic"`

	// Pipeline work during window
	Steps            int     `csv:"steps"`
	BodyUpdates      int     `csv:"body_updates"`
	CacheRebuilds    int     `csv:"cache_rebuilds"`
	BroadChecks      int     `csv:"broad_checks"`
	NarrowChecks     int     `csv:"narrow_checks"`
	Collisions       int     `csv:"collisions"`
	ContactsResolved int     `csv:"contacts_resolved"`
	ContactsPerStep  float64 `csv:"contacts_per_step"`

	// Total kinetic energy, sampled every step
	EnergyMean float64 `csv:"energy_mean"`
	EnergyStd  float64 `csv:"energy_std"`
	EnergyEnd  float64 `csv:"energy_end"`

	// Dynamic body speeds at window end
	SpeedMean float64 `csv:"speed_mean"`
	SpeedMax  float64 `csv:"speed_max"`

	// Deepest overlap per colliding step
	PenetrationMax float64 `csv:"penetration_max"`
	PenetrationP50 float64 `csv:"penetration_p50"`
	PenetrationP90 float64 `csv:"penetration_p90"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("bodies", s.Bodies),
		slog.Int("dynamic", s.Dynamic),
		slog.Int("steps", s.Steps),
		slog.Int("body_updates", s.BodyUpdates),
		slog.Int("cache_rebuilds", s.CacheRebuilds),
		slog.Int("broad_checks", s.BroadChecks),
		slog.Int("narrow_checks", s.NarrowChecks),
		slog.Int("collisions", s.Collisions),
		slog.Int("contacts_resolved", s.ContactsResolved),
		slog.Float64("contacts_per_step", s.ContactsPerStep),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_std", s.EnergyStd),
		slog.Float64("energy_end", s.EnergyEnd),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("penetration_max", s.PenetrationMax),
		slog.Float64("penetration_p50", s.PenetrationP50),
		slog.Float64("penetration_p90", s.PenetrationP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"bodies", s.Bodies,
		"dynamic", s.Dynamic,
		"broad_checks", s.BroadChecks,
		"narrow_checks", s.NarrowChecks,
		"collisions", s.Collisions,
		"contacts_resolved", s.ContactsResolved,
		"energy_mean", s.EnergyMean,
		"energy_end", s.EnergyEnd,
		"speed_max", s.SpeedMax,
		"penetration_max", s.PenetrationMax,
		"penetration_p90", s.PenetrationP90,
	)
}
