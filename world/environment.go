package world

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/mlange-42/ark/ecs"
)

// Weather is an environment-wide condition that scales every move.
type Weather uint8

const (
	WeatherClear Weather = iota
	WeatherRain
	WeatherSnow
	WeatherFog
)

// ErrUnknownWeather is returned by ParseWeather for unrecognised names.
var ErrUnknownWeather = errors.New("unknown weather")

// Factor returns the movement cost multiplier of the weather.
func (w Weather) Factor() float64 {
	switch w {
	case WeatherRain:
		return 1.5
	case WeatherSnow:
		return 2.0
	case WeatherFog:
		return 1.3
	default:
		return 1.0
	}
}

func (w Weather) String() string {
	switch w {
	case WeatherClear:
		return "clear"
	case WeatherRain:
		return "rain"
	case WeatherSnow:
		return "snow"
	case WeatherFog:
		return "fog"
	default:
		return fmt.Sprintf("weather(%d)", uint8(w))
	}
}

// ParseWeather converts a weather name ("clear", "rain", "snow", "fog").
func ParseWeather(s string) (Weather, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clear", "":
		return WeatherClear, nil
	case "rain":
		return WeatherRain, nil
	case "snow":
		return WeatherSnow, nil
	case "fog":
		return WeatherFog, nil
	}
	return WeatherClear, fmt.Errorf("%w: %q", ErrUnknownWeather, s)
}

// elevationPenalty is the cost added per unit of height difference.
const elevationPenalty = 0.5

// Environment extends TerrainGrid with elevation, zones, weather, light and
// moving obstacles. Moving obstacles live as entities in a private ECS world.
type Environment struct {
	*TerrainGrid

	elevation []float64
	zones     []int
	weather   Weather
	light     float64 // [0,1], 1 = full daylight

	world     *ecs.World
	obstacles *ecs.Map1[DynamicObstacle]
	filter    *ecs.Filter1[DynamicObstacle]
	marks     []cellMark // cells blocked by the last tick, in marking order
	seed      int64
	rng       *rand.Rand
}

// cellMark remembers what a cell looked like before an obstacle covered it.
type cellMark struct {
	cell    Cell
	blocked bool
	cost    float64
}

// NewEnvironment creates a flat, clear, fully lit environment.
// seed drives random-walk obstacles; 0 uses the current time.
func NewEnvironment(width, height int, seed int64) *Environment {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	t := NewTerrain(width, height)
	w := ecs.NewWorld()
	return &Environment{
		TerrainGrid: t,
		elevation:   make([]float64, t.width*t.height),
		zones:       make([]int, t.width*t.height),
		weather:     WeatherClear,
		light:       1.0,
		world:       w,
		obstacles:   ecs.NewMap1[DynamicObstacle](w),
		filter:      ecs.NewFilter1[DynamicObstacle](w),
		seed:        seed,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// SetElevation sets the height of (x, y).
func (e *Environment) SetElevation(x, y int, height float64) {
	if !e.IsValid(x, y) {
		return
	}
	e.elevation[e.index(x, y)] = height
}

// Elevation returns the height of (x, y), +Inf when out of bounds.
func (e *Environment) Elevation(x, y int) float64 {
	if !e.IsValid(x, y) {
		return math.Inf(1)
	}
	return e.elevation[e.index(x, y)]
}

// SetZone assigns a zone id to (x, y).
func (e *Environment) SetZone(x, y int, zone int) {
	if !e.IsValid(x, y) {
		return
	}
	e.zones[e.index(x, y)] = zone
}

// Zone returns the zone id of (x, y), -1 when out of bounds.
func (e *Environment) Zone(x, y int) int {
	if !e.IsValid(x, y) {
		return -1
	}
	return e.zones[e.index(x, y)]
}

// SetWeather sets the current weather.
func (e *Environment) SetWeather(w Weather) { e.weather = w }

// Weather returns the current weather.
func (e *Environment) Weather() Weather { return e.weather }

// SetLightLevel sets the light level, clamped to [0,1]. NaN is ignored.
func (e *Environment) SetLightLevel(level float64) {
	if math.IsNaN(level) {
		return
	}
	e.light = math.Max(0, math.Min(1, level))
}

// LightLevel returns the current light level.
func (e *Environment) LightLevel() float64 { return e.light }

// MovementCost extends the grid cost with a climb penalty, then scales the
// sum by weather and darkness:
//
//	(step × factor(b) + 0.5×|Δelevation|) × weather × (1 + 0.5×(1 − light))
func (e *Environment) MovementCost(a, b Cell) float64 {
	if e.IsObstacle(b.X, b.Y) {
		return math.Inf(1)
	}
	base := e.Grid.MovementCost(a, b)
	climb := math.Abs(e.Elevation(b.X, b.Y)-e.Elevation(a.X, a.Y)) * elevationPenalty
	lightFactor := 1.0 + (1.0-e.light)*0.5
	return (base + climb) * e.weather.Factor() * lightFactor
}

// Reset clears obstacles, terrain, elevation and zones. Weather, light and
// registered moving obstacles are kept; the obstacles re-mark on the next Tick.
func (e *Environment) Reset() {
	e.TerrainGrid.Reset()
	for i := range e.elevation {
		e.elevation[i] = 0
		e.zones[i] = 0
	}
	e.marks = e.marks[:0]
}

// Clone returns a deep copy, including moving obstacles and their marks.
func (e *Environment) Clone() *Environment {
	c := NewEnvironment(e.width, e.height, e.seed)
	c.TerrainGrid = e.TerrainGrid.Clone()
	copy(c.elevation, e.elevation)
	copy(c.zones, e.zones)
	c.weather = e.weather
	c.light = e.light
	c.marks = append(c.marks, e.marks...)

	for _, obs := range e.DynamicObstacles() {
		c.obstacles.NewEntity(&obs)
	}
	return c
}
