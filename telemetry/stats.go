package telemetry

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/pathplan/planner"
	"github.com/pthm-cable/pathplan/world"
)

// SearchRecord describes one search run and its post-processing.
type SearchRecord struct {
	Run       int    `csv:"run"`
	Algorithm string `csv:"algorithm"`
	Heuristic string `csv:"heuristic"`
	StartX    int    `csv:"start_x"`
	StartY    int    `csv:"start_y"`
	GoalX     int    `csv:"goal_x"`
	GoalY     int    `csv:"goal_y"`

	Found      bool    `csv:"found"`
	PathCells  int     `csv:"path_len"`    // waypoints, endpoints included
	PathLength float64 `csv:"path_length"` // Euclidean length
	PathCost   float64 `csv:"path_cost"`   // +Inf when not found
	Explored   int     `csv:"explored"`
	DurationUS int64   `csv:"duration_us"` // search only

	Smoothed bool `csv:"smoothed"`
	Repaired bool `csv:"repaired"`
	Unsafe   int  `csv:"unsafe"` // waypoints still near an obstacle after repair
}

// NewSearchRecord fills a record from a search result.
func NewSearchRecord(run int, alg planner.Algorithm, h planner.HeuristicKind, start, goal world.Cell, res planner.Result, elapsed time.Duration) SearchRecord {
	r := SearchRecord{
		Run:        run,
		Algorithm:  alg.String(),
		Heuristic:  h.String(),
		StartX:     start.X,
		StartY:     start.Y,
		GoalX:      goal.X,
		GoalY:      goal.Y,
		Found:      res.Found,
		PathCost:   res.Cost,
		Explored:   res.Explored.Size(),
		DurationUS: elapsed.Microseconds(),
	}
	r.PathCells = len(res.Path)
	r.PathLength = planner.PathLength(res.Path)
	return r
}

// SetPath replaces the path metrics with those of a post-processed path.
func (r *SearchRecord) SetPath(m world.Traversable, path []world.Cell) {
	r.PathCells = len(path)
	r.PathLength = planner.PathLength(path)
	r.PathCost = planner.PathCost(m, path)
}

// LogValue implements slog.LogValuer for structured logging.
func (r SearchRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("run", r.Run),
		slog.String("algorithm", r.Algorithm),
		slog.String("heuristic", r.Heuristic),
		slog.Any("start", [2]int{r.StartX, r.StartY}),
		slog.Any("goal", [2]int{r.GoalX, r.GoalY}),
		slog.Bool("found", r.Found),
		slog.Int("path_len", r.PathCells),
		slog.Float64("path_length", r.PathLength),
		slog.Float64("path_cost", r.PathCost),
		slog.Int("explored", r.Explored),
		slog.Int64("duration_us", r.DurationUS),
		slog.Bool("smoothed", r.Smoothed),
		slog.Bool("repaired", r.Repaired),
		slog.Int("unsafe", r.Unsafe),
	)
}

// Summary aggregates a batch of search records.
type Summary struct {
	Runs       int     `csv:"runs"`
	Found      int     `csv:"found"`
	FoundRatio float64 `csv:"found_ratio"`

	ExploredMean float64 `csv:"explored_mean"`
	ExploredP50  float64 `csv:"explored_p50"`
	ExploredP90  float64 `csv:"explored_p90"`

	DurationMeanUS float64 `csv:"duration_mean_us"`
	DurationP50US  float64 `csv:"duration_p50_us"`
	DurationP90US  float64 `csv:"duration_p90_us"`

	// Over found runs only
	CostMean   float64 `csv:"cost_mean"`
	LengthMean float64 `csv:"length_mean"`
}

// Summarize computes the summary of records. An empty batch yields zeros.
func Summarize(records []SearchRecord) Summary {
	s := Summary{Runs: len(records)}
	if len(records) == 0 {
		return s
	}

	explored := make([]float64, 0, len(records))
	durations := make([]float64, 0, len(records))
	var costs, lengths []float64
	for _, r := range records {
		explored = append(explored, float64(r.Explored))
		durations = append(durations, float64(r.DurationUS))
		if r.Found {
			s.Found++
			if !math.IsInf(r.PathCost, 0) {
				costs = append(costs, r.PathCost)
			}
			lengths = append(lengths, r.PathLength)
		}
	}
	s.FoundRatio = float64(s.Found) / float64(s.Runs)

	s.ExploredMean, s.ExploredP50, s.ExploredP90 = distribution(explored)
	s.DurationMeanUS, s.DurationP50US, s.DurationP90US = distribution(durations)
	if len(costs) > 0 {
		s.CostMean = stat.Mean(costs, nil)
	}
	if len(lengths) > 0 {
		s.LengthMean = stat.Mean(lengths, nil)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("runs", s.Runs),
		slog.Int("found", s.Found),
		slog.Float64("found_ratio", s.FoundRatio),
		slog.Float64("explored_mean", s.ExploredMean),
		slog.Float64("explored_p50", s.ExploredP50),
		slog.Float64("explored_p90", s.ExploredP90),
		slog.Float64("duration_mean_us", s.DurationMeanUS),
		slog.Float64("duration_p50_us", s.DurationP50US),
		slog.Float64("duration_p90_us", s.DurationP90US),
		slog.Float64("cost_mean", s.CostMean),
		slog.Float64("length_mean", s.LengthMean),
	)
}

// distribution returns the mean, median and 90th percentile of values.
func distribution(values []float64) (mean, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Mean(sorted, nil), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
