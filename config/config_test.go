package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/pathplan/mapgen"
	"github.com/pthm-cable/pathplan/planner"
	"github.com/pthm-cable/pathplan/world"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Map.Width)
	assert.Equal(t, 50, cfg.Map.Height)
	assert.Equal(t, mapgen.PresetSimple, cfg.Derived.Preset)
	assert.Equal(t, planner.Standard, cfg.Derived.Algorithm)
	assert.Equal(t, planner.HeuristicEuclidean, cfg.Derived.Heuristic)
	assert.Equal(t, world.WeatherRain, cfg.Derived.Weather)
	assert.Equal(t, 3, cfg.Search.SmoothWindow)
	assert.Equal(t, 1, cfg.Search.SafetyDistance)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeFile(t, `
map:
  preset: maze
search:
  algorithm: adaptive
  heuristic: diagonal
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, mapgen.PresetMaze, cfg.Derived.Preset)
	assert.Equal(t, planner.Adaptive, cfg.Derived.Algorithm)
	assert.Equal(t, planner.HeuristicOctile, cfg.Derived.Heuristic)
	// Untouched keys keep their defaults
	assert.Equal(t, 50, cfg.Map.Width)
	assert.Equal(t, 20, cfg.Search.Runs)
	assert.Equal(t, 0.2, cfg.Generator.RandomDensity)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero width", "map:\n  width: 0\n"},
		{"unknown preset", "map:\n  preset: cave\n"},
		{"unknown heuristic", "search:\n  heuristic: chebyshev\n"},
		{"unknown algorithm", "search:\n  algorithm: dijkstra\n"},
		{"unknown weather", "environment:\n  weather: hail\n"},
		{"density out of range", "generator:\n  random_density: 1.5\n"},
		{"light out of range", "environment:\n  light_level: -0.1\n"},
		{"no runs", "search:\n  runs: 0\n"},
		{"negative u-shapes", "generator:\n  max_u_shapes: -1\n"},
		{"negative elevation", "environment:\n  max_elevation: -2\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tc.body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "map: [not, a, map"))
	assert.Error(t, err)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Map.Preset = "complex"
	cfg.Search.Runs = 7

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, mapgen.PresetComplex, back.Derived.Preset)
	assert.Equal(t, 7, back.Search.Runs)
}

func TestMapgenOptions(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	opts := cfg.MapgenOptions()
	assert.Equal(t, mapgen.DefaultOptions(), opts)
}

func TestZeroSettingsReachTheMap(t *testing.T) {
	cfg, err := Load(writeFile(t, `
generator:
  random_density: 0
  max_u_shapes: 0
environment:
  light_level: 0
  max_elevation: 0
`))
	require.NoError(t, err)

	simple, ok := mapgen.BuildWith(mapgen.PresetSimple, 50, 50, 3, cfg.MapgenOptions()).(*world.Grid)
	require.True(t, ok)
	assert.Zero(t, simple.CountObstacles())

	env, ok := mapgen.BuildWith(mapgen.PresetAdvanced, 30, 30, 3, cfg.MapgenOptions()).(*world.Environment)
	require.True(t, ok)
	assert.Equal(t, 0.0, env.LightLevel())
	assert.Equal(t, 0.0, env.Elevation(10, 10))
}

func TestInitAndCfg(t *testing.T) {
	global = nil
	assert.Panics(t, func() { Cfg() })

	require.NoError(t, Init(""))
	assert.Equal(t, 50, Cfg().Map.Width)

	assert.Panics(t, func() { MustInit(filepath.Join(t.TempDir(), "missing.yaml")) })
}
