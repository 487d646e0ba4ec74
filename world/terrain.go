package world

import "fmt"

// TerrainClass identifies the kind of ground in a cell.
type TerrainClass int8

const (
	TerrainInvalid TerrainClass = iota - 1 // out-of-bounds sentinel
	TerrainPlain
	TerrainMountain
	TerrainWater
	TerrainSand
)

// DefaultCost returns the cost factor normally paired with the class.
func (t TerrainClass) DefaultCost() float64 {
	switch t {
	case TerrainMountain:
		return 2.0
	case TerrainWater:
		return 3.0
	case TerrainSand:
		return 1.5
	default:
		return DefaultCost
	}
}

func (t TerrainClass) String() string {
	switch t {
	case TerrainPlain:
		return "plain"
	case TerrainMountain:
		return "mountain"
	case TerrainWater:
		return "water"
	case TerrainSand:
		return "sand"
	case TerrainInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("terrain(%d)", int(t))
	}
}

// TerrainGrid is a Grid that also records a terrain class per cell.
type TerrainGrid struct {
	*Grid
	terrain []TerrainClass
}

// NewTerrain creates a terrain grid where every cell is plain ground.
func NewTerrain(width, height int) *TerrainGrid {
	g := New(width, height)
	return &TerrainGrid{
		Grid:    g,
		terrain: make([]TerrainClass, g.width*g.height),
	}
}

// SetTerrain assigns class and cost factor to an unblocked cell.
func (t *TerrainGrid) SetTerrain(x, y int, class TerrainClass, cost float64) {
	if t.IsObstacle(x, y) {
		return
	}
	t.terrain[t.index(x, y)] = class
	t.SetTerrainCost(x, y, cost)
}

// Terrain returns the class at (x, y), TerrainInvalid when out of bounds.
func (t *TerrainGrid) Terrain(x, y int) TerrainClass {
	if !t.IsValid(x, y) {
		return TerrainInvalid
	}
	return t.terrain[t.index(x, y)]
}

// Reset clears obstacles and returns every cell to plain ground.
func (t *TerrainGrid) Reset() {
	t.Grid.Reset()
	for i := range t.terrain {
		t.terrain[i] = TerrainPlain
	}
}

// Clone returns a deep copy of the terrain grid.
func (t *TerrainGrid) Clone() *TerrainGrid {
	c := &TerrainGrid{
		Grid:    t.Grid.Clone(),
		terrain: make([]TerrainClass, len(t.terrain)),
	}
	copy(c.terrain, t.terrain)
	return c
}
