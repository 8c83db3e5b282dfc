package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/rigid/config"
	"github.com/pthm-cable/rigid/scene"
	"github.com/pthm-cable/rigid/telemetry"
	"github.com/pthm-cable/rigid/world"
)

// Fitness weights. Penetration is in world units and speed in m/s, so
// penetration is weighted up to be comparable with resting jitter.
const (
	weightPenetration = 10.0
	weightSpeed       = 1.0
	weightEnergy      = 1.0

	// penalty for a run that blows up or lets a body fall through the floor
	failurePenalty = 1e3
	// the floor's top is y = 0 in every scenario
	escapeDepth = -1.0

	warmupWindows = 2 // skip first N windows while bodies land
)

// scenarioResult summarises one scenario run after warmup.
type scenarioResult struct {
	penetration float64 // mean per-window p90 penetration
	speed       float64 // mean end-of-window dynamic speed
	energyStd   float64 // mean per-window kinetic energy deviation
	failed      bool
}

// score combines the result into one number, lower = better.
func (r scenarioResult) score() float64 {
	if r.failed {
		return failurePenalty
	}
	return weightPenetration*r.penetration + weightSpeed*r.speed + weightEnergy*r.energyStd
}

// FitnessEvaluator runs the scenarios headless and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	ticks       int32
	scenarios   map[string]*scene.Scene
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	lastResults map[string]scenarioResult
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, ticks int32, scenarios map[string]*scene.Scene, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		ticks:       ticks,
		scenarios:   scenarios,
		baseConfig:  baseCfg,
		statsWindow: 1.0,
	}
}

// LastResults returns the per-scenario results of the most recent evaluation.
func (fe *FitnessEvaluator) LastResults() map[string]scenarioResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastResults
}

// Evaluate computes fitness for a raw parameter vector (lower = better):
// the mean score over all scenarios.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Run all scenarios in parallel; each owns its world
	results := make([]scenarioResult, len(scenarioNames))
	var wg sync.WaitGroup
	for i, name := range scenarioNames {
		wg.Add(1)
		go func(idx int, sc *scene.Scene) {
			defer wg.Done()
			results[idx] = fe.runScenario(cfg, sc)
		}(i, fe.scenarios[name])
	}
	wg.Wait()

	var total float64
	byName := make(map[string]scenarioResult, len(results))
	for i, r := range results {
		total += r.score()
		byName[scenarioNames[i]] = r
	}

	fe.mu.Lock()
	fe.lastResults = byName
	fe.mu.Unlock()

	return total / float64(len(results))
}

// runScenario steps one scenario for the configured number of ticks,
// collecting window stats after warmup.
func (fe *FitnessEvaluator) runScenario(cfg *config.Config, sc *scene.Scene) scenarioResult {
	w := world.New(world.OptionsFromConfig(cfg))
	defer w.Close()
	if _, err := sc.Build(w); err != nil {
		return scenarioResult{failed: true}
	}

	dt := cfg.Physics.DT
	collector := telemetry.NewCollector(fe.statsWindow, dt)
	var windows []telemetry.WindowStats

	for w.Tick() < fe.ticks {
		st := w.Advance(dt)
		collector.Record(st, w.KineticEnergy())
		if collector.ShouldFlush(w.Tick()) {
			windows = append(windows, collector.Flush(w.Tick(), w.Bodies()))
		}
	}

	for _, b := range w.Bodies() {
		p := b.Position()
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || p.Y < escapeDepth {
			return scenarioResult{failed: true}
		}
	}
	return summarize(windows)
}

// summarize averages the windows past warmup.
func summarize(windows []telemetry.WindowStats) scenarioResult {
	if len(windows) <= warmupWindows {
		return scenarioResult{failed: true}
	}
	valid := windows[warmupWindows:]

	var r scenarioResult
	for _, w := range valid {
		r.penetration += w.PenetrationP90
		r.speed += w.SpeedMean
		r.energyStd += w.EnergyStd
	}
	n := float64(len(valid))
	r.penetration /= n
	r.speed /= n
	r.energyStd /= n
	return r
}

// copyConfig returns a copy of the base config. All sections are plain
// values, so a struct copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
