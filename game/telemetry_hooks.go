package game

import (
	"log/slog"

	"github.com/pthm-cable/rigid/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	tick := g.world.Tick()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	stats := g.collector.Flush(tick, g.world.Bodies())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.opts.LogStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
		if g.opts.SnapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// saveSnapshot captures the world and writes it to the snapshot directory.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	snapshot := telemetry.CaptureSnapshot(g.world, bookmark)

	path, err := telemetry.SaveSnapshot(snapshot, g.opts.SnapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.world.Tick())
}
