// Package config provides configuration loading and access for the planner.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/pathplan/mapgen"
	"github.com/pthm-cable/pathplan/planner"
	"github.com/pthm-cable/pathplan/world"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all planner configuration parameters.
type Config struct {
	Map         MapConfig         `yaml:"map"`
	Search      SearchConfig      `yaml:"search"`
	Generator   GeneratorConfig   `yaml:"generator"`
	Environment EnvironmentConfig `yaml:"environment"`
	Dynamic     DynamicConfig     `yaml:"dynamic"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// MapConfig selects the map to plan on.
type MapConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Preset string `yaml:"preset"`
	Seed   int64  `yaml:"seed"` // 0 = time-based
}

// SearchConfig holds search and post-processing parameters.
type SearchConfig struct {
	Algorithm      string `yaml:"algorithm"`
	Heuristic      string `yaml:"heuristic"`
	Runs           int    `yaml:"runs"` // endpoint pairs searched per invocation
	Smooth         bool   `yaml:"smooth"`
	SmoothWindow   int    `yaml:"smooth_window"`
	CheckCollision bool   `yaml:"check_collision"`
	SafetyDistance int    `yaml:"safety_distance"` // cells, Chebyshev
}

// GeneratorConfig tunes the simple preset.
type GeneratorConfig struct {
	RandomDensity float64 `yaml:"random_density"`
	MaxUShapes    int     `yaml:"max_u_shapes"`
}

// EnvironmentConfig tunes the advanced preset.
type EnvironmentConfig struct {
	Weather      string  `yaml:"weather"`
	LightLevel   float64 `yaml:"light_level"`
	MaxElevation float64 `yaml:"max_elevation"`
}

// DynamicConfig controls moving obstacles between runs.
type DynamicConfig struct {
	TickDT      float64 `yaml:"tick_dt"`
	TicksPerRun int     `yaml:"ticks_per_run"`
}

// TelemetryConfig controls output.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"` // empty disables CSV output
	LogRuns   bool   `yaml:"log_runs"`
}

// DerivedConfig holds the parsed forms of the string settings.
type DerivedConfig struct {
	Preset    mapgen.Preset
	Algorithm planner.Algorithm
	Heuristic planner.HeuristicKind
	Weather   world.Weather
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
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize validates the config and recomputes Derived. Call it again after
// changing fields, e.g. from command-line overrides.
func (c *Config) Finalize() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// Validate checks ranges and enum names.
func (c *Config) Validate() error {
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		return fmt.Errorf("%w: map size %dx%d", ErrInvalid, c.Map.Width, c.Map.Height)
	}
	if c.Search.Runs <= 0 {
		return fmt.Errorf("%w: search.runs = %d", ErrInvalid, c.Search.Runs)
	}
	if c.Search.SafetyDistance < 0 {
		return fmt.Errorf("%w: search.safety_distance = %d", ErrInvalid, c.Search.SafetyDistance)
	}
	if d := c.Generator.RandomDensity; d < 0 || d > 1 {
		return fmt.Errorf("%w: generator.random_density = %g", ErrInvalid, d)
	}
	if c.Generator.MaxUShapes < 0 {
		return fmt.Errorf("%w: generator.max_u_shapes = %d", ErrInvalid, c.Generator.MaxUShapes)
	}
	if e := c.Environment.MaxElevation; e < 0 {
		return fmt.Errorf("%w: environment.max_elevation = %g", ErrInvalid, e)
	}
	if l := c.Environment.LightLevel; l < 0 || l > 1 {
		return fmt.Errorf("%w: environment.light_level = %g", ErrInvalid, l)
	}
	if c.Dynamic.TickDT < 0 || c.Dynamic.TicksPerRun < 0 {
		return fmt.Errorf("%w: negative dynamic tick settings", ErrInvalid)
	}

	if _, err := mapgen.ParsePreset(c.Map.Preset); err != nil {
		return fmt.Errorf("%w: map.preset: %w", ErrInvalid, err)
	}
	if _, err := planner.ParseAlgorithm(c.Search.Algorithm); err != nil {
		return fmt.Errorf("%w: search.algorithm: %w", ErrInvalid, err)
	}
	if _, err := planner.ParseHeuristic(c.Search.Heuristic); err != nil {
		return fmt.Errorf("%w: search.heuristic: %w", ErrInvalid, err)
	}
	if _, err := world.ParseWeather(c.Environment.Weather); err != nil {
		return fmt.Errorf("%w: environment.weather: %w", ErrInvalid, err)
	}
	return nil
}

// computeDerived parses the enum settings. Validate must have passed.
func (c *Config) computeDerived() {
	c.Derived.Preset, _ = mapgen.ParsePreset(c.Map.Preset)
	c.Derived.Algorithm, _ = planner.ParseAlgorithm(c.Search.Algorithm)
	c.Derived.Heuristic, _ = planner.ParseHeuristic(c.Search.Heuristic)
	c.Derived.Weather, _ = world.ParseWeather(c.Environment.Weather)
}

// MapgenOptions returns the preset options described by the config.
func (c *Config) MapgenOptions() mapgen.Options {
	return mapgen.Options{
		RandomDensity: c.Generator.RandomDensity,
		MaxUShapes:    c.Generator.MaxUShapes,
		Weather:       c.Derived.Weather,
		LightLevel:    c.Environment.LightLevel,
		MaxElevation:  c.Environment.MaxElevation,
	}
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
