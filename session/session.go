// Package session runs batches of route searches over a generated map and
// reports them through telemetry.
package session

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/pthm-cable/pathplan/config"
	"github.com/pthm-cable/pathplan/mapgen"
	"github.com/pthm-cable/pathplan/planner"
	"github.com/pthm-cable/pathplan/refine"
	"github.com/pthm-cable/pathplan/telemetry"
	"github.com/pthm-cable/pathplan/termview"
	"github.com/pthm-cable/pathplan/world"
)

// ErrNoOpenCells is returned when the map has nowhere to start a search.
var ErrNoOpenCells = errors.New("map has no open cells")

// Options configures a session.
type Options struct {
	Config    *config.Config
	Seed      int64  // overrides map.seed when non-zero
	OutputDir string // overrides telemetry.output_dir when non-empty

	// RecordCallback, if set, receives every record as it is produced.
	RecordCallback func(telemetry.SearchRecord)
}

// Session owns one generated map and the search runs made on it.
type Session struct {
	cfg  *config.Config
	seed int64
	rng  *rand.Rand

	model termview.Map
	env   *world.Environment // nil unless the preset has an environment layer

	heuristic planner.Heuristic
	runs      int
	records   []telemetry.SearchRecord
	last      planner.Result
	lastPath  []world.Cell

	perf           *telemetry.PerfCollector
	outputManager  *telemetry.OutputManager
	recordCallback func(telemetry.SearchRecord)
}

// New builds the configured map and opens the output directory.
func New(opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	seed := cmp.Or(opts.Seed, cfg.Map.Seed, time.Now().UnixNano())

	om, err := telemetry.NewOutputManager(cmp.Or(opts.OutputDir, cfg.Telemetry.OutputDir))
	if err != nil {
		return nil, fmt.Errorf("opening output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("saving config: %w", err)
	}

	m := mapgen.BuildWith(cfg.Derived.Preset, cfg.Map.Width, cfg.Map.Height, seed, cfg.MapgenOptions())
	s := &Session{
		cfg:            cfg,
		seed:           seed,
		rng:            rand.New(rand.NewSource(seed)),
		model:          m.(termview.Map),
		heuristic:      cfg.Derived.Heuristic.Func(),
		perf:           telemetry.NewPerfCollector(cfg.Search.Runs),
		outputManager:  om,
		recordCallback: opts.RecordCallback,
	}
	s.env, _ = m.(*world.Environment)

	slog.Info("map built",
		"preset", cfg.Derived.Preset.String(),
		"width", cfg.Map.Width,
		"height", cfg.Map.Height,
		"seed", seed,
	)
	return s, nil
}

// Run performs the configured number of search runs.
func (s *Session) Run() error {
	for s.runs < s.cfg.Search.Runs {
		if _, err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step performs one run: pick connected endpoints, search, post-process,
// record, then advance moving obstacles. A step that fails to find valid
// endpoints is not counted as a run.
func (s *Session) Step() (telemetry.SearchRecord, error) {
	cfg := s.cfg
	run := s.runs

	start, goal, err := s.pickEndpoints()
	if err != nil {
		return telemetry.SearchRecord{}, err
	}
	if err := planner.ValidateEndpoints(s.model, start, goal); err != nil {
		return telemetry.SearchRecord{}, fmt.Errorf("run %d: %w", run, err)
	}

	s.runs++
	s.perf.StartRun()

	s.perf.StartPhase(telemetry.PhaseSearch)
	began := time.Now()
	res := planner.Run(cfg.Derived.Algorithm, s.model, start, goal, s.heuristic)
	rec := telemetry.NewSearchRecord(run, cfg.Derived.Algorithm, cfg.Derived.Heuristic, start, goal, res, time.Since(began))

	path := res.Path
	if res.Found && cfg.Search.Smooth {
		s.perf.StartPhase(telemetry.PhaseSmooth)
		path = refine.Smooth(s.model, path, cfg.Search.SmoothWindow)
		rec.Smoothed = true
	}
	if res.Found && cfg.Search.CheckCollision {
		s.perf.StartPhase(telemetry.PhaseRepair)
		path = refine.RepairCollisions(s.model, path, cfg.Search.SafetyDistance, s.rng)
		rec.Repaired = true
		rec.Unsafe = len(refine.Unsafe(s.model, path, cfg.Search.SafetyDistance))
	}
	if rec.Smoothed || rec.Repaired {
		rec.SetPath(s.model, path)
	}
	s.last, s.lastPath = res, path

	s.perf.StartPhase(telemetry.PhaseOutput)
	s.flushTelemetry(rec)

	s.perf.StartPhase(telemetry.PhaseTick)
	s.tickObstacles()
	s.perf.EndRun()

	return rec, nil
}

// pickEndpoints draws a random open start and a random goal reachable from it.
// The goal equals the start only when the start is isolated.
func (s *Session) pickEndpoints() (world.Cell, world.Cell, error) {
	open := s.cellsWhere(func(c world.Cell) bool {
		return !s.model.IsObstacle(c.X, c.Y)
	})
	if len(open) == 0 {
		return world.Cell{}, world.Cell{}, ErrNoOpenCells
	}
	start := open[s.rng.Intn(len(open))]

	reach := world.Reachable(s.model, start)
	targets := s.cellsWhere(func(c world.Cell) bool {
		return c != start && reach.Has(c)
	})
	if len(targets) == 0 {
		return start, start, nil
	}
	return start, targets[s.rng.Intn(len(targets))], nil
}

// cellsWhere lists matching cells in row-major order so seeded picks repeat.
func (s *Session) cellsWhere(keep func(world.Cell) bool) []world.Cell {
	var out []world.Cell
	for y := 0; y < s.model.Height(); y++ {
		for x := 0; x < s.model.Width(); x++ {
			if c := (world.Cell{X: x, Y: y}); keep(c) {
				out = append(out, c)
			}
		}
	}
	return out
}

func (s *Session) tickObstacles() {
	if s.env == nil {
		return
	}
	for i := 0; i < s.cfg.Dynamic.TicksPerRun; i++ {
		s.env.Tick(s.cfg.Dynamic.TickDT)
	}
}

// Model returns the map searched by the session.
func (s *Session) Model() termview.Map { return s.model }

// Runs returns the number of runs performed so far.
func (s *Session) Runs() int { return s.runs }

// Records returns every record produced so far.
func (s *Session) Records() []telemetry.SearchRecord { return s.records }

// Last returns the final path and explored set of the latest run.
func (s *Session) Last() ([]world.Cell, mapset.Set[world.Cell]) {
	return s.lastPath, s.last.Explored
}

// Render draws the latest run over the map.
func (s *Session) Render(colored bool) string {
	path, explored := s.Last()
	if colored {
		return termview.Render(s.model, path, explored)
	}
	return termview.RenderPlain(s.model, path, explored)
}
