// Package refine post-processes planned paths: smoothing out grid jaggies
// and nudging waypoints away from obstacles.
package refine

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/pathplan/world"
)

// DefaultWindow is the smoothing window used when a non-positive one is given.
const DefaultWindow = 3

// Smooth replaces every interior waypoint with the weighted centroid of the
// original waypoints within window/2 of it, weight 1/(|j-i|+1). A centroid
// that rounds onto an invalid or blocked cell keeps the original waypoint.
// Endpoints are never moved and the input is not modified.
//
// The result is not re-validated for contiguity: consecutive waypoints may
// end up more than one cell apart.
func Smooth(m world.Traversable, path []world.Cell, window int) []world.Cell {
	out := make([]world.Cell, len(path))
	copy(out, path)
	if len(path) <= 2 {
		return out
	}
	if window < 1 {
		window = DefaultWindow
	}
	half := window / 2

	for i := 1; i < len(path)-1; i++ {
		lo := max(0, i-half)
		hi := min(len(path)-1, i+half)

		var sum r2.Vec
		total := 0.0
		for j := lo; j <= hi; j++ {
			w := 1.0 / float64(absInt(j-i)+1)
			sum = r2.Add(sum, r2.Scale(w, toVec(path[j])))
			total += w
		}
		c := r2.Scale(1/total, sum)

		x, y := int(math.RoundToEven(c.X)), int(math.RoundToEven(c.Y))
		if m.IsValid(x, y) && !m.IsObstacle(x, y) {
			out[i] = world.Cell{X: x, Y: y}
		}
	}
	return out
}

func toVec(c world.Cell) r2.Vec {
	return r2.Vec{X: float64(c.X), Y: float64(c.Y)}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
