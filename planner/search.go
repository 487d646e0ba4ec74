// Package planner finds least-cost routes over a world.Traversable with A*
// and a terrain-aware adaptive variant.
package planner

import (
	"math"

	"github.com/zyedidia/generic/mapset"

	"github.com/pthm-cable/pathplan/world"
)

// Result is the outcome of one search call.
type Result struct {
	Path     []world.Cell           // start..goal inclusive, nil when not found
	Explored mapset.Set[world.Cell] // every cell popped from the frontier
	Trace    []world.Cell           // Explored in pop order
	Found    bool
	Cost     float64 // g of the goal, +Inf when not found
}

// priorityFunc returns the frontier priority of n reached with cost g.
type priorityFunc func(n world.Cell, g float64) float64

// Search runs A* from start to goal with f = g + h.
//
// Start and goal are expected to be valid, unblocked cells; callers check
// that with ValidateEndpoints. No path is a normal outcome reported through
// Result.Found.
func Search(m world.Traversable, start, goal world.Cell, h Heuristic) Result {
	return search(m, start, goal, h(start, goal), func(n world.Cell, g float64) float64 {
		return g + h(n, goal)
	})
}

func search(m world.Traversable, start, goal world.Cell, startF float64, priority priorityFunc) Result {
	res := Result{
		Explored: mapset.New[world.Cell](),
		Cost:     math.Inf(1),
	}

	fr := newFrontier()
	gScore := map[world.Cell]float64{start: 0}
	cameFrom := make(map[world.Cell]world.Cell)
	fr.push(start, 0, startF)

	for {
		cur, ok := fr.pop()
		if !ok {
			return res
		}
		res.Explored.Put(cur.cell)
		res.Trace = append(res.Trace, cur.cell)

		// The first pop of a cell carries its best g: f grows with g for a fixed cell.
		g := cur.g
		if cur.cell == goal {
			res.Path = reconstructPath(cameFrom, start, goal)
			res.Found = true
			res.Cost = g
			return res
		}

		for _, n := range m.Neighbors(cur.cell) {
			if fr.isClosed(n) {
				continue
			}
			step := m.MovementCost(cur.cell, n)
			if math.IsInf(step, 1) {
				continue
			}
			tentative := g + step
			if best, seen := gScore[n]; seen && tentative >= best {
				continue
			}
			// Push a fresh entry on every improvement; the old one goes stale.
			gScore[n] = tentative
			cameFrom[n] = cur.cell
			fr.push(n, tentative, priority(n, tentative))
		}
	}
}

// reconstructPath walks predecessors back from goal and reverses them.
func reconstructPath(cameFrom map[world.Cell]world.Cell, start, goal world.Cell) []world.Cell {
	path := []world.Cell{goal}
	for cur := goal; cur != start; {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
