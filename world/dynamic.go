package world

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/mlange-42/ark/ecs"
)

// MotionPattern selects how a moving obstacle travels.
type MotionPattern uint8

const (
	MotionLinear   MotionPattern = iota // oscillates along X around its origin
	MotionCircular                      // orbits its origin
	MotionRandom                        // random walk at a fixed interval
)

// ErrUnknownMotion is returned by ParseMotionPattern for unrecognised names.
var ErrUnknownMotion = errors.New("unknown motion pattern")

func (p MotionPattern) String() string {
	switch p {
	case MotionLinear:
		return "linear"
	case MotionCircular:
		return "circular"
	case MotionRandom:
		return "random"
	default:
		return fmt.Sprintf("motion(%d)", uint8(p))
	}
}

// ParseMotionPattern converts "linear", "circular" or "random".
func ParseMotionPattern(s string) (MotionPattern, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return MotionLinear, nil
	case "circular":
		return MotionCircular, nil
	case "random":
		return MotionRandom, nil
	}
	return MotionLinear, fmt.Errorf("%w: %q", ErrUnknownMotion, s)
}

// MotionParams tunes a motion pattern. Zero fields take defaults.
type MotionParams struct {
	Amplitude      float64 `yaml:"amplitude"`       // linear swing in cells (default 5)
	Frequency      float64 `yaml:"frequency"`       // cycles per time unit (default 1)
	Radius         float64 `yaml:"radius"`          // circular radius in cells (default 3)
	UpdateInterval float64 `yaml:"update_interval"` // random step period (default 1)
}

func (p MotionParams) withDefaults() MotionParams {
	if p.Amplitude == 0 {
		p.Amplitude = 5
	}
	if p.Frequency == 0 {
		p.Frequency = 1.0
	}
	if p.Radius == 0 {
		p.Radius = 3
	}
	if p.UpdateInterval == 0 {
		p.UpdateInterval = 1.0
	}
	return p
}

// DynamicObstacle is a single moving blocked cell.
type DynamicObstacle struct {
	Position Cell
	Origin   Cell // spawn point, reference for linear and circular motion
	Pattern  MotionPattern
	Params   MotionParams
	Elapsed  float64
}

// Advance moves the obstacle forward by dt.
// Linear and circular motion depend only on elapsed time; random motion
// takes one step of at most one cell per axis whenever the interval elapses.
func (o *DynamicObstacle) Advance(dt float64, rng *rand.Rand) {
	o.Elapsed += dt
	p := o.Params.withDefaults()

	switch o.Pattern {
	case MotionLinear:
		phase := 2 * math.Pi * p.Frequency * o.Elapsed
		o.Position.X = o.Origin.X + int(p.Amplitude*math.Sin(phase))
	case MotionCircular:
		phase := 2 * math.Pi * p.Frequency * o.Elapsed
		o.Position.X = o.Origin.X + int(p.Radius*math.Cos(phase))
		o.Position.Y = o.Origin.Y + int(p.Radius*math.Sin(phase))
	case MotionRandom:
		if o.Elapsed >= p.UpdateInterval {
			o.Position.X += rng.Intn(3) - 1
			o.Position.Y += rng.Intn(3) - 1
			o.Elapsed = 0
		}
	}
}

// AddDynamicObstacle registers a moving obstacle spawned at (x, y).
// It blocks its cell from the next Tick on.
func (e *Environment) AddDynamicObstacle(x, y int, pattern MotionPattern, params MotionParams) ecs.Entity {
	obs := DynamicObstacle{
		Position: Cell{X: x, Y: y},
		Origin:   Cell{X: x, Y: y},
		Pattern:  pattern,
		Params:   params,
	}
	return e.obstacles.NewEntity(&obs)
}

// RemoveDynamicObstacle unregisters a moving obstacle and releases its cell.
func (e *Environment) RemoveDynamicObstacle(entity ecs.Entity) {
	if !e.world.Alive(entity) {
		return
	}
	e.unmark()
	e.world.RemoveEntity(entity)

	query := e.filter.Query()
	for query.Next() {
		e.mark(query.Get().Position)
	}
}

// DynamicObstacles returns a snapshot of every registered moving obstacle.
func (e *Environment) DynamicObstacles() []DynamicObstacle {
	var out []DynamicObstacle
	query := e.filter.Query()
	for query.Next() {
		out = append(out, *query.Get())
	}
	return out
}

// Tick advances the moving obstacles by dt. Every cell blocked by the
// previous tick is restored before any obstacle is moved and re-marked.
func (e *Environment) Tick(dt float64) {
	e.unmark()

	query := e.filter.Query()
	for query.Next() {
		obs := query.Get()
		obs.Advance(dt, e.rng)
		e.mark(obs.Position)
	}
}

// mark blocks c and records its previous state. Out-of-bounds cells are skipped.
func (e *Environment) mark(c Cell) {
	if !e.IsValid(c.X, c.Y) {
		return
	}
	i := e.index(c.X, c.Y)
	e.marks = append(e.marks, cellMark{cell: c, blocked: e.blocked[i], cost: e.cost[i]})
	e.Grid.SetObstacle(c.X, c.Y)
}

// unmark restores marked cells in reverse order so overlapping obstacles
// unwind to the original state.
func (e *Environment) unmark() {
	for i := len(e.marks) - 1; i >= 0; i-- {
		m := e.marks[i]
		idx := e.index(m.cell.X, m.cell.Y)
		e.blocked[idx] = m.blocked
		e.cost[idx] = m.cost
	}
	e.marks = e.marks[:0]
}
