package planner

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/pathplan/world"
)

// terrainSamples is the number of interior points sampled on the straight
// line from a node to the goal.
const terrainSamples = 5

// AdaptiveWeight scales the heuristic by how far node still is from goal
// relative to the whole trip: close to 2 near the start, 1 at the goal.
func AdaptiveWeight(node, start, goal world.Cell) float64 {
	toGoal := world.StepDistance(node, goal)
	total := world.StepDistance(node, start) + toGoal
	if total == 0 {
		return 1.0
	}
	return 1.0 + toGoal/total
}

// TerrainAwareHeuristic multiplies base by the mean cost factor sampled along
// the segment node→goal. Invalid or blocked samples count as 1, and the
// multiplier never drops below 1.
func TerrainAwareHeuristic(m world.Traversable, node, goal world.Cell, base Heuristic) float64 {
	samples := make([]float64, 0, terrainSamples)
	dx := float64(goal.X - node.X)
	dy := float64(goal.Y - node.Y)
	for i := 1; i <= terrainSamples; i++ {
		t := float64(i) / float64(terrainSamples+1)
		x := int(float64(node.X) + t*dx)
		y := int(float64(node.Y) + t*dy)

		cost := 1.0
		if m.IsValid(x, y) && !m.IsObstacle(x, y) {
			cost = m.TerrainCost(x, y)
		}
		samples = append(samples, cost)
	}
	return base(node, goal) * math.Max(1.0, stat.Mean(samples, nil))
}

// SearchAdaptive runs A* with f = g + w(n)·hT(n), where w is AdaptiveWeight
// and hT is TerrainAwareHeuristic. The estimate is not admissible, so the
// returned path is not guaranteed to be least-cost.
func SearchAdaptive(m world.Traversable, start, goal world.Cell, h Heuristic) Result {
	return search(m, start, goal, h(start, goal), func(n world.Cell, g float64) float64 {
		return g + AdaptiveWeight(n, start, goal)*TerrainAwareHeuristic(m, n, goal, h)
	})
}
