package world

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentMovementCostComposition(t *testing.T) {
	env := NewEnvironment(3, 3, 1)
	env.SetElevation(1, 0, 2.0)
	env.SetWeather(WeatherRain)
	env.SetLightLevel(0.5)

	// (1×1 + 0.5×2) × 1.5 × 1.25
	got := env.MovementCost(Cell{0, 0}, Cell{1, 0})
	assert.InDelta(t, 3.75, got, 1e-9)

	// Penalty is additive before the multiplicative factors, so a plain
	// product would give a different answer.
	assert.NotEqual(t, 1.0*1.5*1.25+1.0, got)
}

func TestEnvironmentMatchesGridWhenNeutral(t *testing.T) {
	env := NewEnvironment(3, 3, 1)
	env.SetTerrain(1, 1, TerrainMountain, 2.0)

	got := env.MovementCost(Cell{0, 0}, Cell{1, 1})
	assert.InDelta(t, math.Sqrt2*2.0, got, 1e-9)
	assert.InDelta(t, env.TerrainGrid.MovementCost(Cell{0, 0}, Cell{1, 1}), got, 1e-12)
}

func TestEnvironmentBlockedAndSentinels(t *testing.T) {
	env := NewEnvironment(4, 4, 1)
	env.SetObstacle(2, 2)
	env.SetWeather(WeatherSnow)

	assert.True(t, math.IsInf(env.MovementCost(Cell{1, 1}, Cell{2, 2}), 1))
	assert.True(t, math.IsInf(env.Elevation(-1, 0), 1))
	assert.Equal(t, -1, env.Zone(4, 0))

	env.SetZone(3, 3, 7)
	assert.Equal(t, 7, env.Zone(3, 3))
	env.SetZone(9, 9, 7) // no-op
}

func TestLightLevelClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0.3, 0.3},
		{1.7, 1},
	}
	env := NewEnvironment(1, 1, 1)
	for _, tc := range tests {
		env.SetLightLevel(tc.in)
		assert.Equal(t, tc.want, env.LightLevel(), "SetLightLevel(%v)", tc.in)
	}

	env.SetLightLevel(math.NaN())
	assert.Equal(t, 1.0, env.LightLevel(), "NaN should be ignored")
}

func TestParseWeather(t *testing.T) {
	for _, name := range []string{"clear", "rain", "snow", "fog"} {
		w, err := ParseWeather(name)
		require.NoError(t, err)
		assert.Equal(t, name, w.String())
	}

	_, err := ParseWeather("hail")
	assert.ErrorIs(t, err, ErrUnknownWeather)

	assert.Equal(t, 1.0, Weather(42).Factor(), "unknown weather should not scale cost")
}

func TestDynamicObstacleLinear(t *testing.T) {
	env := NewEnvironment(20, 20, 1)
	env.AddDynamicObstacle(10, 5, MotionLinear, MotionParams{Amplitude: 5, Frequency: 1})

	// Not marked until the first tick
	assert.False(t, env.IsObstacle(10, 5))

	env.Tick(0.25) // sin(π/2) = 1
	assert.True(t, env.IsObstacle(15, 5))
	assert.Equal(t, 1, env.CountObstacles())

	env.Tick(0.25) // sin(π) ≈ 0
	assert.True(t, env.IsObstacle(10, 5))
	assert.False(t, env.IsObstacle(15, 5), "previous cell must be released")
	assert.Equal(t, 1, env.CountObstacles())
}

func TestDynamicObstacleCircular(t *testing.T) {
	env := NewEnvironment(20, 20, 1)
	env.AddDynamicObstacle(10, 10, MotionCircular, MotionParams{Radius: 3, Frequency: 1})

	env.Tick(0.25) // cos = 0, sin = 1
	obs := env.DynamicObstacles()
	require.Len(t, obs, 1)
	assert.Equal(t, Cell{10, 13}, obs[0].Position)
	assert.Equal(t, Cell{10, 10}, obs[0].Origin)
	assert.True(t, env.IsObstacle(10, 13))
}

func TestDynamicObstacleRandomIsSeeded(t *testing.T) {
	run := func() []Cell {
		env := NewEnvironment(30, 30, 99)
		env.AddDynamicObstacle(15, 15, MotionRandom, MotionParams{UpdateInterval: 1})
		var trail []Cell
		for i := 0; i < 10; i++ {
			env.Tick(1)
			trail = append(trail, env.DynamicObstacles()[0].Position)
		}
		return trail
	}

	a, b := run(), run()
	assert.Equal(t, a, b)

	prev := Cell{15, 15}
	for _, c := range a {
		assert.LessOrEqual(t, math.Abs(float64(c.X-prev.X)), 1.0)
		assert.LessOrEqual(t, math.Abs(float64(c.Y-prev.Y)), 1.0)
		prev = c
	}
}

func TestDynamicObstacleRandomWaitsForInterval(t *testing.T) {
	env := NewEnvironment(10, 10, 3)
	env.AddDynamicObstacle(5, 5, MotionRandom, MotionParams{UpdateInterval: 2})

	env.Tick(0.5)
	env.Tick(0.5)
	assert.Equal(t, Cell{5, 5}, env.DynamicObstacles()[0].Position)
	assert.Equal(t, 1.0, env.DynamicObstacles()[0].Elapsed)
}

// TestTickRestoresUnderlyingCell verifies an obstacle passing over terrain or
// a static wall leaves it as it was.
func TestTickRestoresUnderlyingCell(t *testing.T) {
	env := NewEnvironment(20, 3, 1)
	env.SetTerrain(15, 1, TerrainWater, 3.0)
	env.SetObstacle(10, 1)
	env.AddDynamicObstacle(10, 1, MotionLinear, MotionParams{Amplitude: 5, Frequency: 1})

	env.Tick(0.25)
	assert.True(t, env.IsObstacle(15, 1))
	assert.True(t, env.IsObstacle(10, 1), "static wall under the spawn point must survive")

	env.Tick(0.25)
	assert.False(t, env.IsObstacle(15, 1))
	assert.Equal(t, 3.0, env.TerrainCost(15, 1))
	assert.Equal(t, TerrainWater, env.Terrain(15, 1))

	env.Tick(0.5)
	assert.True(t, env.IsObstacle(10, 1))
}

func TestOverlappingObstaclesUnwind(t *testing.T) {
	env := NewEnvironment(10, 10, 1)
	env.SetTerrainCost(4, 4, 2.5)
	first := env.AddDynamicObstacle(4, 4, MotionLinear, MotionParams{Amplitude: 0.1})
	second := env.AddDynamicObstacle(4, 4, MotionLinear, MotionParams{Amplitude: 0.1})

	env.Tick(0.1)
	env.Tick(0.1)
	assert.True(t, env.IsObstacle(4, 4))
	assert.Equal(t, 1, env.CountObstacles())

	env.RemoveDynamicObstacle(first)
	assert.True(t, env.IsObstacle(4, 4), "second obstacle still covers the cell")

	env.RemoveDynamicObstacle(second)
	assert.False(t, env.IsObstacle(4, 4))
	assert.Equal(t, 2.5, env.TerrainCost(4, 4))
}

func TestRemoveDynamicObstacle(t *testing.T) {
	env := NewEnvironment(10, 10, 1)
	keep := env.AddDynamicObstacle(2, 2, MotionLinear, MotionParams{Amplitude: 0.1})
	drop := env.AddDynamicObstacle(7, 7, MotionLinear, MotionParams{Amplitude: 0.1})
	env.Tick(0.1)
	require.True(t, env.IsObstacle(7, 7))

	env.RemoveDynamicObstacle(drop)
	assert.False(t, env.IsObstacle(7, 7))
	assert.True(t, env.IsObstacle(2, 2))
	assert.Len(t, env.DynamicObstacles(), 1)

	// Removing twice is harmless
	env.RemoveDynamicObstacle(drop)
	env.RemoveDynamicObstacle(keep)
	assert.Equal(t, 0, env.CountObstacles())
}

func TestObstacleLeavingGridIsNotMarked(t *testing.T) {
	env := NewEnvironment(5, 5, 1)
	env.AddDynamicObstacle(0, 2, MotionLinear, MotionParams{Amplitude: 3, Frequency: 1})

	env.Tick(0.75) // sin(3π/2) ≈ -1 → x ≈ -3
	assert.Equal(t, 0, env.CountObstacles())
	assert.Less(t, env.DynamicObstacles()[0].Position.X, 0)
}

func TestEnvironmentClone(t *testing.T) {
	env := NewEnvironment(10, 10, 5)
	env.SetElevation(1, 1, 4)
	env.SetZone(1, 1, 2)
	env.SetWeather(WeatherFog)
	env.SetLightLevel(0.2)
	env.AddDynamicObstacle(5, 5, MotionLinear, MotionParams{Amplitude: 2, Frequency: 1})
	env.Tick(0.25)

	c := env.Clone()
	env.Tick(0.25)

	assert.Equal(t, 4.0, c.Elevation(1, 1))
	assert.Equal(t, 2, c.Zone(1, 1))
	assert.Equal(t, WeatherFog, c.Weather())
	assert.Equal(t, 0.2, c.LightLevel())
	assert.True(t, c.IsObstacle(7, 5), "clone keeps its own marks")
	assert.False(t, env.IsObstacle(7, 5))

	c.Tick(0.25)
	assert.True(t, c.IsObstacle(5, 5))
	assert.False(t, c.IsObstacle(7, 5))
}
