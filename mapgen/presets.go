package mapgen

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/pthm-cable/pathplan/world"
)

// Preset names a ready-made test map.
type Preset uint8

const (
	PresetSimple   Preset = iota // random scatter plus a few U-shapes
	PresetMaze                   // perfect maze
	PresetComplex                // terrain regions, a spiral and a radial burst
	PresetAdvanced               // environment with elevation, zones, weather and moving obstacles
)

// ErrUnknownPreset is returned by ParsePreset for unrecognised names.
var ErrUnknownPreset = errors.New("unknown preset")

// Presets lists every preset.
func Presets() []Preset {
	return []Preset{PresetSimple, PresetMaze, PresetComplex, PresetAdvanced}
}

func (p Preset) String() string {
	switch p {
	case PresetSimple:
		return "simple"
	case PresetMaze:
		return "maze"
	case PresetComplex:
		return "complex"
	case PresetAdvanced:
		return "advanced"
	default:
		return fmt.Sprintf("preset(%d)", uint8(p))
	}
}

// ParsePreset converts "simple", "maze", "complex" or "advanced".
func ParsePreset(s string) (Preset, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple":
		return PresetSimple, nil
	case "maze":
		return PresetMaze, nil
	case "complex":
		return PresetComplex, nil
	case "advanced":
		return PresetAdvanced, nil
	}
	return PresetSimple, fmt.Errorf("%w: %q", ErrUnknownPreset, s)
}

// Options tunes the presets. Every field is used as given, so zero means
// zero: no scatter, no U-shapes, full darkness, flat ground.
type Options struct {
	RandomDensity float64       // simple: obstacle probability
	MaxUShapes    int           // simple: upper bound on U-shapes
	Weather       world.Weather // advanced
	LightLevel    float64       // advanced
	MaxElevation  float64       // advanced: elevations are uniform in [0, MaxElevation)
}

// DefaultOptions returns the stock preset settings.
func DefaultOptions() Options {
	return Options{
		RandomDensity: 0.2,
		MaxUShapes:    3,
		Weather:       world.WeatherRain,
		LightLevel:    0.7,
		MaxElevation:  5,
	}
}

// Build creates a width×height map of the given preset with default options.
func Build(p Preset, width, height int, seed int64) world.Traversable {
	return BuildWith(p, width, height, seed, DefaultOptions())
}

// BuildWith creates a width×height map of the given preset. The concrete type
// is *world.Grid for simple and maze, *world.TerrainGrid for complex and
// *world.Environment for advanced.
func BuildWith(p Preset, width, height int, seed int64, opts Options) world.Traversable {
	rng := newRand(seed)

	switch p {
	case PresetMaze:
		g := world.New(width, height)
		Maze(g, subSeed(rng))
		return g
	case PresetComplex:
		return buildComplex(width, height, rng)
	case PresetAdvanced:
		return buildAdvanced(width, height, rng, opts)
	default:
		return buildSimple(width, height, rng, opts)
	}
}

func buildSimple(width, height int, rng *rand.Rand, opts Options) *world.Grid {
	g := world.New(width, height)
	RandomObstacles(g, opts.RandomDensity, subSeed(rng))

	// Side length is drawn from [5, min(15, w/5, h/5)]; maps too small for
	// that range get no U-shapes.
	maxSize := min(15, width/5, height/5)
	if maxSize < 5 || opts.MaxUShapes < 1 {
		return g
	}
	shapes := 1 + rng.Intn(opts.MaxUShapes)
	for range shapes {
		cx := randBetween(rng, width/4, 3*width/4)
		cy := randBetween(rng, height/4, 3*height/4)
		size := randBetween(rng, 5, maxSize)
		UShape(g, cx, cy, size)
	}
	return g
}

func buildComplex(width, height int, rng *rand.Rand) *world.TerrainGrid {
	g := world.NewTerrain(width, height)
	ComplexTerrain(g, subSeed(rng))

	short := min(width, height)
	Spiral(g, width/3, height/3, short/4)
	Radial(g, 2*width/3, 2*height/3, 8, short/5)
	return g
}

func buildAdvanced(width, height int, rng *rand.Rand, opts Options) *world.Environment {
	env := world.NewEnvironment(width, height, subSeed(rng))
	env.AddDynamicObstacle(width/4, height/4, world.MotionLinear, world.MotionParams{Amplitude: 5, Frequency: 0.5})
	env.AddDynamicObstacle(width/2, height/2, world.MotionCircular, world.MotionParams{Radius: 3, Frequency: 0.3})

	zoneW, zoneH := max(1, width/3), max(1, height/3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			env.SetElevation(x, y, rng.Float64()*opts.MaxElevation)
			env.SetZone(x, y, x/zoneW+(y/zoneH)*3)
		}
	}
	env.SetWeather(opts.Weather)
	env.SetLightLevel(opts.LightLevel)
	return env
}

// subSeed draws a non-zero seed so derived generators stay deterministic.
func subSeed(rng *rand.Rand) int64 {
	return rng.Int63() | 1
}

// randBetween returns a uniform int in [lo, hi].
func randBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
