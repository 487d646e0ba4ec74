package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pthm-cable/pathplan/config"
	"github.com/pthm-cable/pathplan/session"
	"github.com/pthm-cable/pathplan/termview"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = map.seed, then time-based)")
	preset := flag.String("preset", "", "Map preset: simple, maze, complex, advanced (empty = use config)")
	algorithm := flag.String("algorithm", "", "Search algorithm: astar, adaptive (empty = use config)")
	heuristic := flag.String("heuristic", "", "Heuristic: euclidean, manhattan, diagonal (empty = use config)")
	runs := flag.Int("runs", 0, "Number of searches (0 = use config)")
	printMap := flag.Bool("print", false, "Draw the last search on the terminal")
	plain := flag.Bool("plain", false, "Draw without colours")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *preset != "" {
		cfg.Map.Preset = *preset
	}
	if *algorithm != "" {
		cfg.Search.Algorithm = *algorithm
	}
	if *heuristic != "" {
		cfg.Search.Heuristic = *heuristic
	}
	if *runs > 0 {
		cfg.Search.Runs = *runs
	}
	if err := cfg.Finalize(); err != nil {
		slog.Error("invalid flags", "error", err)
		os.Exit(1)
	}

	s, err := session.New(session.Options{
		Config:    cfg,
		Seed:      *seed,
		OutputDir: *outputDir,
	})
	if err != nil {
		slog.Error("failed to start session", "error", err)
		os.Exit(1)
	}

	slog.Info("starting searches",
		"preset", cfg.Map.Preset,
		"algorithm", cfg.Search.Algorithm,
		"heuristic", cfg.Search.Heuristic,
		"runs", cfg.Search.Runs,
	)
	runErr := s.Run()
	if err := s.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	if runErr != nil {
		slog.Error("search run failed", "run", s.Runs(), "error", runErr)
		os.Exit(1)
	}

	if *printMap {
		fmt.Print(s.Render(!*plain))
		fmt.Println(termview.Legend(!*plain))
	}
}
