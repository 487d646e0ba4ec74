package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/pathplan/planner"
	"github.com/pthm-cable/pathplan/world"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestNewSearchRecord(t *testing.T) {
	g := world.New(5, 5)
	start, goal := world.Cell{X: 0, Y: 0}, world.Cell{X: 4, Y: 4}
	res := planner.Search(g, start, goal, planner.Euclidean)

	r := NewSearchRecord(3, planner.Adaptive, planner.HeuristicOctile, start, goal, res, 1500*time.Microsecond)
	assert.Equal(t, 3, r.Run)
	assert.Equal(t, "adaptive", r.Algorithm)
	assert.Equal(t, "diagonal", r.Heuristic)
	assert.Equal(t, 4, r.GoalX)
	assert.True(t, r.Found)
	assert.Equal(t, 5, r.PathCells)
	assert.InDelta(t, 4*math.Sqrt2, r.PathLength, 1e-9)
	assert.InDelta(t, 4*math.Sqrt2, r.PathCost, 1e-9)
	assert.Equal(t, res.Explored.Size(), r.Explored)
	assert.Equal(t, int64(1500), r.DurationUS)

	g.SetTerrainCost(1, 0, 2)
	r.SetPath(g, []world.Cell{start, {X: 1, Y: 0}})
	assert.Equal(t, 2, r.PathCells)
	assert.Equal(t, 1.0, r.PathLength)
	assert.Equal(t, 2.0, r.PathCost)
}

func TestSummarize(t *testing.T) {
	records := []SearchRecord{
		{Found: true, Explored: 10, DurationUS: 100, PathCost: 4, PathLength: 3},
		{Found: true, Explored: 20, DurationUS: 200, PathCost: 8, PathLength: 5},
		{Found: false, Explored: 30, DurationUS: 300, PathCost: math.Inf(1)},
		{Found: true, Explored: 40, DurationUS: 400, PathCost: 6, PathLength: 4},
	}
	s := Summarize(records)

	assert.Equal(t, 4, s.Runs)
	assert.Equal(t, 3, s.Found)
	assert.InDelta(t, 0.75, s.FoundRatio, 1e-12)
	assert.InDelta(t, 25.0, s.ExploredMean, 1e-12)
	assert.InDelta(t, 25.0, s.ExploredP50, 1e-12)
	assert.InDelta(t, 37.0, s.ExploredP90, 1e-12)
	assert.InDelta(t, 250.0, s.DurationMeanUS, 1e-12)
	assert.InDelta(t, 6.0, s.CostMean, 1e-12, "unfound runs are excluded")
	assert.InDelta(t, 4.0, s.LengthMean, 1e-12)
}

func TestSummarizeEmpty(t *testing.T) {
	require.Equal(t, Summary{}, Summarize(nil))

	s := Summarize([]SearchRecord{{Found: false, Explored: 5, PathCost: math.Inf(1)}})
	assert.Zero(t, s.CostMean)
	assert.Zero(t, s.FoundRatio)
	assert.Equal(t, 5.0, s.ExploredMean)
}
