// Package world holds the grid model that route searches run over: static
// obstacles, per-cell traversal cost, terrain classes and the environment
// layer (elevation, zones, weather, light, moving obstacles).
package world

import (
	"math"
)

// DefaultCost is the traversal cost factor of a cleared cell.
const DefaultCost = 1.0

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// Grid stores a blocked flag and a traversal cost factor per cell.
// Out-of-bounds coordinates are treated as blocked.
type Grid struct {
	width   int
	height  int
	blocked []bool    // true = obstacle
	cost    []float64 // +Inf for blocked cells
}

// New creates an obstacle-free grid with every cost factor at DefaultCost.
// Non-positive dimensions yield a grid with no valid cells.
func New(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid{
		width:   width,
		height:  height,
		blocked: make([]bool, width*height),
		cost:    make([]float64, width*height),
	}
	for i := range g.cost {
		g.cost[i] = DefaultCost
	}
	return g
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// IsValid reports whether (x, y) lies inside the grid.
func (g *Grid) IsValid(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

// SetObstacle marks (x, y) as blocked.
func (g *Grid) SetObstacle(x, y int) {
	if !g.IsValid(x, y) {
		return
	}
	i := g.index(x, y)
	g.blocked[i] = true
	g.cost[i] = math.Inf(1)
}

// ClearObstacle unblocks (x, y) and resets its cost factor to DefaultCost.
func (g *Grid) ClearObstacle(x, y int) {
	if !g.IsValid(x, y) {
		return
	}
	i := g.index(x, y)
	g.blocked[i] = false
	g.cost[i] = DefaultCost
}

// IsObstacle returns true if (x, y) is blocked or out of bounds.
func (g *Grid) IsObstacle(x, y int) bool {
	if !g.IsValid(x, y) {
		return true
	}
	return g.blocked[g.index(x, y)]
}

// SetTerrainCost sets the cost factor of an unblocked cell.
// Negative and NaN factors are ignored.
func (g *Grid) SetTerrainCost(x, y int, cost float64) {
	if g.IsObstacle(x, y) || cost < 0 || math.IsNaN(cost) {
		return
	}
	g.cost[g.index(x, y)] = cost
}

// TerrainCost returns the cost factor at (x, y), +Inf when out of bounds.
func (g *Grid) TerrainCost(x, y int) float64 {
	if !g.IsValid(x, y) {
		return math.Inf(1)
	}
	return g.cost[g.index(x, y)]
}

// MovementCost returns the cost of stepping from a to b: step length times
// the cost factor of b, or +Inf if b is blocked.
func (g *Grid) MovementCost(a, b Cell) float64 {
	if g.IsObstacle(b.X, b.Y) {
		return math.Inf(1)
	}
	return StepDistance(a, b) * g.cost[g.index(b.X, b.Y)]
}

// neighborOffsets lists the 8-connected moves.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Neighbors returns the in-bounds, unblocked 8-connected neighbours of c.
// Diagonal steps are allowed even when both flanking cells are blocked.
func (g *Grid) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		nx, ny := c.X+d[0], c.Y+d[1]
		if !g.IsObstacle(nx, ny) {
			out = append(out, Cell{X: nx, Y: ny})
		}
	}
	return out
}

// Reset clears every obstacle and cost factor.
func (g *Grid) Reset() {
	for i := range g.blocked {
		g.blocked[i] = false
		g.cost[i] = DefaultCost
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		width:   g.width,
		height:  g.height,
		blocked: make([]bool, len(g.blocked)),
		cost:    make([]float64, len(g.cost)),
	}
	copy(c.blocked, g.blocked)
	copy(c.cost, g.cost)
	return c
}

// CountObstacles returns the number of blocked cells.
func (g *Grid) CountObstacles() int {
	n := 0
	for _, b := range g.blocked {
		if b {
			n++
		}
	}
	return n
}

// StepDistance is the Euclidean distance between two cells.
func StepDistance(a, b Cell) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
