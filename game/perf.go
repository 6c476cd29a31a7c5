package game

import "log/slog"

// logPerfStats logs the frame timing of every effect seen so far and appends it to
// perf.csv.
func (g *Game) logPerfStats() {
	for _, name := range g.perf.Effects() {
		stats := g.perf.Stats(name)
		slog.Info("perf", "frame", g.frame, "stats", stats)
		if err := g.output.WritePerf(stats, g.frame); err != nil {
			slog.Warn("writing perf", "error", err)
		}
	}
}
