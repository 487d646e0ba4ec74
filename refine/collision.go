package refine

import (
	"math/rand"
	"time"

	"github.com/pthm-cable/pathplan/world"
)

// repairAttempts is how many random one-cell offsets are tried before a
// flagged waypoint is left where it is.
const repairAttempts = 8

// RepairCollisions moves interior waypoints that sit within safety cells
// (Chebyshev) of an in-bounds obstacle. The replacement is the midpoint of the
// original neighbouring waypoints if that cell is open, otherwise the first
// open cell among random offsets in {-1,0,1}², otherwise the waypoint stays.
//
// safety below 1 checks no cells, so nothing moves. A nil rng uses a
// time-seeded source. Endpoints are never moved and the input is not modified.
func RepairCollisions(m world.Traversable, path []world.Cell, safety int, rng *rand.Rand) []world.Cell {
	out := make([]world.Cell, len(path))
	copy(out, path)
	if len(path) <= 2 {
		return out
	}
	if safety < 1 {
		return out
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for i := 1; i < len(path)-1; i++ {
		p := path[i]
		if !nearObstacle(m, p, safety) {
			continue
		}

		prev, next := path[i-1], path[i+1]
		mid := world.Cell{X: floorHalf(prev.X + next.X), Y: floorHalf(prev.Y + next.Y)}
		if open(m, mid) {
			out[i] = mid
			continue
		}

		for range repairAttempts {
			alt := world.Cell{X: p.X + rng.Intn(3) - 1, Y: p.Y + rng.Intn(3) - 1}
			if open(m, alt) {
				out[i] = alt
				break
			}
		}
	}
	return out
}

// Unsafe returns the indices of interior waypoints still within safety cells
// of an obstacle. safety below 1 flags nothing.
func Unsafe(m world.Traversable, path []world.Cell, safety int) []int {
	var idx []int
	for i := 1; i < len(path)-1; i++ {
		if nearObstacle(m, path[i], safety) {
			idx = append(idx, i)
		}
	}
	return idx
}

// nearObstacle reports whether any in-bounds cell in the square of radius
// safety around c, other than c itself, is blocked. Out-of-bounds cells do not
// count as obstacles here.
func nearObstacle(m world.Traversable, c world.Cell, safety int) bool {
	for dx := -safety; dx <= safety; dx++ {
		for dy := -safety; dy <= safety; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x, y := c.X+dx, c.Y+dy
			if m.IsValid(x, y) && m.IsObstacle(x, y) {
				return true
			}
		}
	}
	return false
}

func open(m world.Traversable, c world.Cell) bool {
	return m.IsValid(c.X, c.Y) && !m.IsObstacle(c.X, c.Y)
}

// floorHalf divides by two rounding toward negative infinity.
func floorHalf(v int) int {
	if v < 0 {
		return (v - 1) / 2
	}
	return v / 2
}
