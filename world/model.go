package world

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"
)

// Traversable is the read-only view a route search needs.
// Grid, TerrainGrid and Environment all satisfy it.
type Traversable interface {
	IsValid(x, y int) bool
	IsObstacle(x, y int) bool
	TerrainCost(x, y int) float64
	MovementCost(a, b Cell) float64
	Neighbors(c Cell) []Cell
}

// ObstacleMap is the mutable view used by obstacle generators.
type ObstacleMap interface {
	Width() int
	Height() int
	IsValid(x, y int) bool
	IsObstacle(x, y int) bool
	SetObstacle(x, y int)
	ClearObstacle(x, y int)
}

// TerrainMap is an ObstacleMap that also accepts terrain classes.
type TerrainMap interface {
	ObstacleMap
	SetTerrain(x, y int, class TerrainClass, cost float64)
}

var (
	_ Traversable = (*Grid)(nil)
	_ Traversable = (*TerrainGrid)(nil)
	_ Traversable = (*Environment)(nil)
	_ ObstacleMap = (*Grid)(nil)
	_ TerrainMap  = (*TerrainGrid)(nil)
	_ TerrainMap  = (*Environment)(nil)
)

// Reachable returns every cell reachable from `from` through Neighbors,
// including `from` itself. A blocked start yields an empty set.
func Reachable(m Traversable, from Cell) mapset.Set[Cell] {
	seen := mapset.New[Cell]()
	if m.IsObstacle(from.X, from.Y) {
		return seen
	}

	work := stack.New[Cell]()
	work.Push(from)
	seen.Put(from)
	for work.Size() > 0 {
		c := work.Pop()
		for _, n := range m.Neighbors(c) {
			if seen.Has(n) {
				continue
			}
			seen.Put(n)
			work.Push(n)
		}
	}
	return seen
}
