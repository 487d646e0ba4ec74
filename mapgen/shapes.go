package mapgen

import (
	"math"

	"github.com/pthm-cable/pathplan/world"
)

// spiralStep is the angle increment in radians between spiral samples.
const spiralStep = 0.2

// UShape draws a U of side size centred on (cx, cy): the edge at
// y = cy - size/2 plus the two vertical sides. Nothing is drawn unless the
// whole shape fits inside m.
func UShape(m world.ObstacleMap, cx, cy, size int) {
	half := size / 2
	if cx-half < 0 || cx+half >= m.Width() || cy-half < 0 || cy+half >= m.Height() {
		return
	}
	for x := cx - half; x <= cx+half; x++ {
		m.SetObstacle(x, cy-half)
	}
	for y := cy - half; y <= cy+half; y++ {
		m.SetObstacle(cx-half, y)
		m.SetObstacle(cx+half, y)
	}
}

// Spiral draws an Archimedean spiral r = θ/2π out to maxRadius.
// Points outside m are skipped.
func Spiral(m world.ObstacleMap, cx, cy, maxRadius int) {
	limit := float64(maxRadius)
	for theta, r := 0.0, 0.0; r < limit; {
		x := int(float64(cx) + r*math.Cos(theta))
		y := int(float64(cy) + r*math.Sin(theta))
		if m.IsValid(x, y) {
			m.SetObstacle(x, y)
		}
		theta += spiralStep
		r = theta / (2 * math.Pi)
	}
}

// Radial draws the given number of evenly spaced rays from (cx, cy).
// Points outside m are skipped.
func Radial(m world.ObstacleMap, cx, cy, rays, length int) {
	for i := 0; i < rays; i++ {
		angle := 2 * math.Pi * float64(i) / float64(rays)
		for r := 0; r < length; r++ {
			x := int(float64(cx) + float64(r)*math.Cos(angle))
			y := int(float64(cy) + float64(r)*math.Sin(angle))
			if m.IsValid(x, y) {
				m.SetObstacle(x, y)
			}
		}
	}
}
