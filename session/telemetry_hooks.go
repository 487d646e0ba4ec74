package session

import (
	"log/slog"

	"github.com/pthm-cable/pathplan/telemetry"
)

// flushTelemetry records a finished run and hands it to every sink.
func (s *Session) flushTelemetry(rec telemetry.SearchRecord) {
	s.records = append(s.records, rec)

	if s.recordCallback != nil {
		s.recordCallback(rec)
	}

	if s.cfg.Telemetry.LogRuns {
		slog.Info("search", "record", rec)
	}

	if err := s.outputManager.WriteSearch(rec); err != nil {
		slog.Error("failed to write search", "error", err)
	}
}

// Summary aggregates every run so far.
func (s *Session) Summary() telemetry.Summary {
	return telemetry.Summarize(s.records)
}

// Close writes the summary and timing stats, then closes the output files.
func (s *Session) Close() error {
	summary := s.Summary()
	perfStats := s.perf.Stats()
	slog.Info("summary", "summary", summary, "perf", perfStats)

	if err := s.outputManager.WriteSummary(summary); err != nil {
		slog.Error("failed to write summary", "error", err)
	}
	if err := s.outputManager.WritePerf(perfStats, s.runs); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	return s.outputManager.Close()
}
