package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pthm-cable/pathplan/world"
)

// Algorithm selects a search variant.
type Algorithm uint8

const (
	Standard Algorithm = iota
	Adaptive
)

var (
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrInvalidStart     = errors.New("invalid start")
	ErrInvalidGoal      = errors.New("invalid goal")
)

func (a Algorithm) String() string {
	switch a {
	case Standard:
		return "astar"
	case Adaptive:
		return "adaptive"
	default:
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
}

// ParseAlgorithm converts "astar"/"standard" or "adaptive".
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "astar", "a*", "standard":
		return Standard, nil
	case "adaptive":
		return Adaptive, nil
	}
	return Standard, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Run dispatches to Search or SearchAdaptive.
func Run(alg Algorithm, m world.Traversable, start, goal world.Cell, h Heuristic) Result {
	if alg == Adaptive {
		return SearchAdaptive(m, start, goal, h)
	}
	return Search(m, start, goal, h)
}

// ValidateEndpoints reports whether start and goal are in bounds and
// unblocked. Search itself does not check.
func ValidateEndpoints(m world.Traversable, start, goal world.Cell) error {
	if !m.IsValid(start.X, start.Y) || m.IsObstacle(start.X, start.Y) {
		return fmt.Errorf("%w: %v", ErrInvalidStart, start)
	}
	if !m.IsValid(goal.X, goal.Y) || m.IsObstacle(goal.X, goal.Y) {
		return fmt.Errorf("%w: %v", ErrInvalidGoal, goal)
	}
	return nil
}

// PathLength sums the Euclidean length of every segment.
func PathLength(path []world.Cell) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += world.StepDistance(path[i-1], path[i])
	}
	return total
}

// PathCost sums MovementCost along the path. Any blocked step makes it +Inf.
func PathCost(m world.Traversable, path []world.Cell) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += m.MovementCost(path[i-1], path[i])
	}
	return total
}
