package mapgen

import (
	"github.com/zyedidia/generic/stack"

	"github.com/pthm-cable/pathplan/world"
)

// mazeSteps are the room-to-room moves, two cells apart.
var mazeSteps = [4]world.Cell{{X: 0, Y: -2}, {X: 2, Y: 0}, {X: 0, Y: 2}, {X: -2, Y: 0}}

// mazeFrame is one room on the carving stack with its shuffled exits.
type mazeFrame struct {
	room  world.Cell
	steps [4]world.Cell
	next  int
}

// Maze fills m with walls and carves a perfect maze (exactly one route between
// any two open cells) by depth-first search from (1,1). Rooms sit two cells
// apart and the wall between a room and its child is opened. Maps too small to
// contain (1,1) are left untouched.
func Maze(m world.ObstacleMap, seed int64) {
	if !m.IsValid(1, 1) {
		return
	}
	rng := newRand(seed)
	w, h := m.Width(), m.Height()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetObstacle(x, y)
		}
	}

	visit := func(c world.Cell) *mazeFrame {
		f := &mazeFrame{room: c, steps: mazeSteps}
		rng.Shuffle(len(f.steps), func(i, j int) {
			f.steps[i], f.steps[j] = f.steps[j], f.steps[i]
		})
		return f
	}

	start := world.Cell{X: 1, Y: 1}
	visited := map[world.Cell]bool{start: true}
	m.ClearObstacle(start.X, start.Y)

	work := stack.New[*mazeFrame]()
	work.Push(visit(start))

outer:
	for work.Size() > 0 {
		f := work.Pop()
		for f.next < len(f.steps) {
			d := f.steps[f.next]
			f.next++

			n := world.Cell{X: f.room.X + d.X, Y: f.room.Y + d.Y}
			if n.X < 0 || n.X >= w || n.Y < 0 || n.Y >= h || visited[n] {
				continue
			}
			visited[n] = true
			m.ClearObstacle(n.X, n.Y)
			m.ClearObstacle(f.room.X+d.X/2, f.room.Y+d.Y/2)

			// Resume this room's remaining exits once the child is done.
			work.Push(f)
			work.Push(visit(n))
			continue outer
		}
	}
}
