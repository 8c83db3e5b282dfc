// Package game runs a world either headless or in a raylib window with
// a camera, overlays and control panels. Telemetry, bookmarks and
// snapshots are wired the same way in both modes.
package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/rigid/config"
	"github.com/pthm-cable/rigid/scene"
	"github.com/pthm-cable/rigid/telemetry"
	"github.com/pthm-cable/rigid/world"
)

// Options configures a Game.
type Options struct {
	ScenePath      string // empty = built-in demo scene
	RestorePath    string // snapshot to resume from; overrides ScenePath
	LogStats       bool
	StatsWindowSec float64 // 0 = config value
	SnapshotDir    string  // empty disables snapshots on bookmarks
	OutputDir      string  // empty disables CSV output
	Headless       bool
	StepsPerUpdate int
}

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	opts  Options
	world *world.World
	dt    float64

	paused         bool
	stepsPerUpdate int
	lastStep       world.StepStats

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)

	// Viewer state, nil when headless
	view *view
}

// NewGameWithOptions builds the world from the scene or snapshot in opts.
// In graphical mode the raylib window must already be open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	g := &Game{
		cfg:              cfg,
		opts:             opts,
		dt:               cfg.Physics.DT,
		stepsPerUpdate:   max(opts.StepsPerUpdate, 1),
		collector:        telemetry.NewCollector(statsWindow, cfg.Physics.DT),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(10, telemetry.DefaultBookmarkThresholds()),
	}

	w, err := g.load()
	if err != nil {
		return nil, err
	}
	g.attach(w)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			g.world.Close()
			return nil, fmt.Errorf("create output manager: %w", err)
		}
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
		g.outputManager = om
	}

	if !opts.Headless {
		g.view = newView(cfg, g.world)
	}
	return g, nil
}

// load builds a fresh world from the snapshot or scene named in the options.
func (g *Game) load() (*world.World, error) {
	opts := world.OptionsFromConfig(g.cfg)

	if g.opts.RestorePath != "" {
		snap, err := telemetry.LoadSnapshot(g.opts.RestorePath)
		if err != nil {
			return nil, err
		}
		w, err := snap.Restore(opts)
		if err != nil {
			return nil, fmt.Errorf("restore %s: %w", g.opts.RestorePath, err)
		}
		slog.Info("snapshot restored", "path", g.opts.RestorePath, "tick", w.Tick(), "bodies", w.Len())
		return w, nil
	}

	sc, err := scene.Load(g.opts.ScenePath)
	if err != nil {
		return nil, err
	}
	w := world.New(opts)
	if _, err := sc.Build(w); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// attach makes w the current world and starts a telemetry window at its tick.
func (g *Game) attach(w *world.World) {
	g.world = w
	w.SetPhaseTimer(g.perfCollector)
	g.collector.StartAt(w.Tick())
	g.lastStep = world.StepStats{}
}

// Reset reloads the scene or snapshot, discarding the current world.
func (g *Game) Reset() error {
	w, err := g.load()
	if err != nil {
		return err
	}
	g.world.Close()
	g.attach(w)
	if g.view != nil {
		g.view.clearSelection()
	}
	return nil
}

// step advances the world one tick and feeds telemetry.
func (g *Game) step() {
	g.lastStep = g.world.Advance(g.dt)
	g.collector.Record(g.lastStep, g.world.KineticEnergy())
	g.flushTelemetry()
}

// UpdateHeadless runs StepsPerUpdate ticks without any rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.world.Tick()
}

// World returns the current world. Reset replaces it.
func (g *Game) World() *world.World {
	return g.world
}

// SetStatsCallback registers fn to receive every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Unload releases workers and flushes output files.
func (g *Game) Unload() {
	g.world.Close()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}
}
