package mapgen

import (
	"github.com/pthm-cable/pathplan/world"
)

// terrainClasses are the classes scattered by ComplexTerrain.
var terrainClasses = []world.TerrainClass{world.TerrainPlain, world.TerrainMountain, world.TerrainWater}

const (
	minSeedsPerClass       = 3
	maxSeedsPerClass       = 9
	terrainObstacleDensity = 0.1
)

type terrainSeed struct {
	at    world.Cell
	class world.TerrainClass
}

// ComplexTerrain partitions m into terrain regions and then scatters sparse
// obstacles. Each class gets 3 to 9 random seed points; every cell takes the
// class of its nearest seed by Manhattan distance, the earliest seed winning
// ties.
func ComplexTerrain(m world.TerrainMap, seed int64) {
	w, h := m.Width(), m.Height()
	if w == 0 || h == 0 {
		return
	}
	rng := newRand(seed)

	var seeds []terrainSeed
	for _, class := range terrainClasses {
		n := minSeedsPerClass + rng.Intn(maxSeedsPerClass-minSeedsPerClass+1)
		for range n {
			seeds = append(seeds, terrainSeed{
				at:    world.Cell{X: rng.Intn(w), Y: rng.Intn(h)},
				class: class,
			})
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			class := nearestSeed(seeds, x, y)
			m.SetTerrain(x, y, class, class.DefaultCost())
		}
	}

	RandomObstacles(m, terrainObstacleDensity, seed)
}

func nearestSeed(seeds []terrainSeed, x, y int) world.TerrainClass {
	best := -1
	class := world.TerrainPlain
	for _, s := range seeds {
		d := absInt(x-s.at.X) + absInt(y-s.at.Y)
		if best < 0 || d < best {
			best = d
			class = s.class
		}
	}
	return class
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
