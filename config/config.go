// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/forage/genetic"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
// It must not change while a simulation built from it is running.
type Config struct {
	Eye        EyeConfig        `yaml:"eye"`
	Brain      BrainConfig      `yaml:"brain"`
	Motion     MotionConfig     `yaml:"motion"`
	World      WorldConfig      `yaml:"world"`
	Evolution  EvolutionConfig  `yaml:"evolution"`
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Screen     ScreenConfig     `yaml:"screen"`
}

// EyeConfig holds the vision sensor parameters.
type EyeConfig struct {
	FOV   float64 `yaml:"fov"`   // Field of view angle in radians
	Range float64 `yaml:"range"` // Sight distance in world units
	Cells int     `yaml:"cells"` // Angular resolution
}

// BrainConfig holds the controller network parameters.
type BrainConfig struct {
	Neurons int `yaml:"neurons"` // Hidden layer size
}

// MotionConfig holds per-tick movement limits.
type MotionConfig struct {
	SpeedMin   float64 `yaml:"speed_min"`
	SpeedMax   float64 `yaml:"speed_max"`
	SpeedAccel float64 `yaml:"speed_accel"` // Max speed change per tick
	RotAccel   float64 `yaml:"rot_accel"`   // Max heading change per tick (radians)
}

// WorldConfig holds population sizes.
type WorldConfig struct {
	Animals         int     `yaml:"animals"`
	Food            int     `yaml:"food"`
	CollisionRadius float64 `yaml:"collision_radius"`
}

// EvolutionConfig holds genetic algorithm parameters.
type EvolutionConfig struct {
	GenerationLength int               `yaml:"generation_length"` // Ticks per generation
	Selection        genetic.Selection `yaml:"selection"`
	Crossover        genetic.Crossover `yaml:"crossover"`
	Mutation         genetic.Mutation  `yaml:"mutation"`
}

// SimulationConfig holds execution parameters.
type SimulationConfig struct {
	Workers int `yaml:"workers"` // Brain pass workers, 0 = GOMAXPROCS
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow    int `yaml:"perf_window"`    // Ticks per perf.csv row
	SnapshotEvery int `yaml:"snapshot_every"` // Generations between world snapshots, 0 = off
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width         int `yaml:"width"`
	Height        int `yaml:"height"`
	TargetFPS     int `yaml:"target_fps"`
	TicksPerFrame int `yaml:"ticks_per_frame"`
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

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate reports every parameter that would make a simulation unusable.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Eye.FOV > 0, "eye.fov must be positive, got %v", c.Eye.FOV)
	check(c.Eye.Range > 0, "eye.range must be positive, got %v", c.Eye.Range)
	check(c.Eye.Cells > 0, "eye.cells must be positive, got %d", c.Eye.Cells)
	check(c.Brain.Neurons > 0, "brain.neurons must be positive, got %d", c.Brain.Neurons)
	check(c.Motion.SpeedMin >= 0, "motion.speed_min must not be negative, got %v", c.Motion.SpeedMin)
	check(c.Motion.SpeedMin <= c.Motion.SpeedMax, "motion.speed_min %v exceeds speed_max %v", c.Motion.SpeedMin, c.Motion.SpeedMax)
	check(c.Motion.SpeedAccel >= 0, "motion.speed_accel must not be negative, got %v", c.Motion.SpeedAccel)
	check(c.Motion.RotAccel >= 0, "motion.rot_accel must not be negative, got %v", c.Motion.RotAccel)
	check(c.World.Animals > 0, "world.animals must be positive, got %d", c.World.Animals)
	check(c.World.Food >= 0, "world.food must not be negative, got %d", c.World.Food)
	check(c.World.CollisionRadius >= 0, "world.collision_radius must not be negative, got %v", c.World.CollisionRadius)
	check(c.Evolution.GenerationLength >= 0, "evolution.generation_length must not be negative, got %d", c.Evolution.GenerationLength)
	check(c.Simulation.Workers >= 0, "simulation.workers must not be negative, got %d", c.Simulation.Workers)
	if err := c.Evolution.Mutation.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("evolution.mutation: %w", err))
	}

	return errors.Join(errs...)
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
