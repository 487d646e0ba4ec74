package planner

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/pthm-cable/pathplan/world"
)

// Heuristic estimates the remaining cost from a to b.
type Heuristic func(a, b world.Cell) float64

// Euclidean is the straight-line distance.
func Euclidean(a, b world.Cell) float64 {
	return world.StepDistance(a, b)
}

// Manhattan is the 4-connected distance.
func Manhattan(a, b world.Cell) float64 {
	return float64(absInt(b.X-a.X) + absInt(b.Y-a.Y))
}

// Octile is the 8-connected distance with unit orthogonal and √2 diagonal steps.
func Octile(a, b world.Cell) float64 {
	dx := float64(absInt(b.X - a.X))
	dy := float64(absInt(b.Y - a.Y))
	return math.Max(dx, dy) + (math.Sqrt2-1)*math.Min(dx, dy)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// HeuristicKind names one of the built-in heuristics.
type HeuristicKind uint8

const (
	HeuristicEuclidean HeuristicKind = iota
	HeuristicManhattan
	HeuristicOctile
)

// ErrUnknownHeuristic is returned by ParseHeuristic for unrecognised names.
var ErrUnknownHeuristic = errors.New("unknown heuristic")

// Heuristics lists every built-in heuristic kind.
func Heuristics() []HeuristicKind {
	return []HeuristicKind{HeuristicEuclidean, HeuristicManhattan, HeuristicOctile}
}

// Func returns the heuristic function for the kind. Unknown kinds fall back
// to Euclidean.
func (k HeuristicKind) Func() Heuristic {
	switch k {
	case HeuristicManhattan:
		return Manhattan
	case HeuristicOctile:
		return Octile
	default:
		return Euclidean
	}
}

func (k HeuristicKind) String() string {
	switch k {
	case HeuristicEuclidean:
		return "euclidean"
	case HeuristicManhattan:
		return "manhattan"
	case HeuristicOctile:
		return "diagonal"
	default:
		return fmt.Sprintf("heuristic(%d)", uint8(k))
	}
}

// ParseHeuristic converts "euclidean", "manhattan" or "diagonal"/"octile".
func ParseHeuristic(s string) (HeuristicKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "euclidean":
		return HeuristicEuclidean, nil
	case "manhattan":
		return HeuristicManhattan, nil
	case "diagonal", "octile":
		return HeuristicOctile, nil
	}
	return HeuristicEuclidean, fmt.Errorf("%w: %q", ErrUnknownHeuristic, s)
}
