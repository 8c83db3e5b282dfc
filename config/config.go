// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/rigid/geom"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	View      ViewConfig      `yaml:"view"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ViewConfig holds the initial viewer camera.
type ViewConfig struct {
	Zoom     float64 `yaml:"zoom"`      // max initial pixels per world unit; the view fits the scene
	PanSpeed float64 `yaml:"pan_speed"` // screen pixels per second
}

// PhysicsConfig holds stepper and resolver parameters.
type PhysicsConfig struct {
	DT                float64 `yaml:"dt"`
	GravityX          float64 `yaml:"gravity_x"`
	GravityY          float64 `yaml:"gravity_y"`
	CorrectionPercent float64 `yaml:"correction_percent"` // fraction of overlap removed per step
	CorrectionSlop    float64 `yaml:"correction_slop"`    // overlap left alone
	ParallelThreshold int     `yaml:"parallel_threshold"` // 0 keeps the narrow phase serial
	Workers           int     `yaml:"workers"`            // 0 = GOMAXPROCS
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds of simulated time per stats window
	PerfWindow  int     `yaml:"perf_window"`  // ticks averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Gravity        geom.Vec2 // (Physics.GravityX, Physics.GravityY)
	TicksPerWindow int       // Telemetry.StatsWindow / Physics.DT, at least 1
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Set replaces the global configuration, for tools that build a Config
// in memory.
func Set(cfg *Config) {
	cfg.computeDerived()
	global = cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Defaults returns the embedded defaults.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Physics.CorrectionPercent < 0 || c.Physics.CorrectionPercent > 1 {
		return fmt.Errorf("physics.correction_percent must be in [0, 1], got %v", c.Physics.CorrectionPercent)
	}
	if c.Physics.CorrectionSlop < 0 {
		return fmt.Errorf("physics.correction_slop must not be negative, got %v", c.Physics.CorrectionSlop)
	}
	if c.View.Zoom <= 0 {
		return fmt.Errorf("view.zoom must be positive, got %v", c.View.Zoom)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Gravity = geom.V(c.Physics.GravityX, c.Physics.GravityY)

	ticks := 1
	if c.Physics.DT > 0 {
		ticks = int(math.Round(c.Telemetry.StatsWindow / c.Physics.DT))
	}
	c.Derived.TicksPerWindow = max(ticks, 1)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
