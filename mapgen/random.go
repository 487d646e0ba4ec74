// Package mapgen fills grids with obstacles and terrain: random scatter,
// mazes, seeded terrain regions, geometric shapes and named presets.
//
// Every generator takes a seed; the same seed on the same map size always
// produces the same layout. A zero seed uses the current time.
package mapgen

import (
	"math/rand"
	"time"

	"github.com/pthm-cable/pathplan/world"
)

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomObstacles blocks each cell independently with probability density.
// Existing obstacles are kept.
func RandomObstacles(m world.ObstacleMap, density float64, seed int64) {
	rng := newRand(seed)
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if rng.Float64() < density {
				m.SetObstacle(x, y)
			}
		}
	}
}
