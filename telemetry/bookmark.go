package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkContactSurge    BookmarkType = "contact_surge"
	BookmarkDeepPenetration BookmarkType = "deep_penetration"
	BookmarkEnergySpike     BookmarkType = "energy_spike"
	BookmarkSettled         BookmarkType = "settled"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkThresholds tunes the detector.
type BookmarkThresholds struct {
	// DeepPenetration triggers when a window's deepest overlap exceeds it.
	DeepPenetration float64
	// SettledEnergy triggers settled when mean kinetic energy per dynamic
	// body stays below it.
	SettledEnergy float64
	// SettledWindows is how many consecutive quiet windows count as settled.
	SettledWindows int
}

// DefaultBookmarkThresholds suit bodies of unit size and mass.
func DefaultBookmarkThresholds() BookmarkThresholds {
	return BookmarkThresholds{
		DeepPenetration: 0.25,
		SettledEnergy:   0.05,
		SettledWindows:  3,
	}
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	thresholds BookmarkThresholds

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	quietWindows int  // consecutive windows under the settled threshold
	settled      bool // settled already reported; cleared by activity
	deep         bool // deep penetration already reported; cleared when shallow again
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, thresholds BookmarkThresholds) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for rolling averages
	}
	if thresholds.SettledWindows < 1 {
		thresholds.SettledWindows = 1
	}
	return &BookmarkDetector{
		thresholds:  thresholds,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkContactSurge(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkEnergySpike(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkDeepPenetration(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkSettled(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkContactSurge fires when contacts per step exceed twice the rolling
// average, e.g. when a falling row lands.
func (bd *BookmarkDetector) checkContactSurge(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.ContactsPerStep
	}
	avg := total / float64(len(history))
	if avg == 0 || stats.ContactsPerStep < 1 {
		return nil
	}

	if stats.ContactsPerStep > avg*2.0 {
		return &Bookmark{
			Type:        BookmarkContactSurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Contacts per step %.2f is %.1fx average (%.2f)", stats.ContactsPerStep, stats.ContactsPerStep/avg, avg),
		}
	}
	return nil
}

// checkEnergySpike fires when mean kinetic energy is more than twice the
// previous window's and the window saw collisions, so the rise is not
// just free fall under gravity.
func (bd *BookmarkDetector) checkEnergySpike(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) == 0 || stats.Collisions == 0 {
		return nil
	}
	prevIdx := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	prev := bd.history[prevIdx]
	if prev.EnergyMean <= 0 || prev.Collisions == 0 {
		return nil
	}

	if stats.EnergyMean > prev.EnergyMean*2.0 {
		return &Bookmark{
			Type:        BookmarkEnergySpike,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Kinetic energy rose from %.3f to %.3f with %d collisions", prev.EnergyMean, stats.EnergyMean, stats.Collisions),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkDeepPenetration(stats WindowStats) *Bookmark {
	if stats.PenetrationMax <= bd.thresholds.DeepPenetration {
		bd.deep = false
		return nil
	}
	if bd.deep {
		return nil
	}
	bd.deep = true
	return &Bookmark{
		Type:        BookmarkDeepPenetration,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Penetration %.3f exceeds %.3f", stats.PenetrationMax, bd.thresholds.DeepPenetration),
	}
}

func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	if stats.Dynamic == 0 {
		return nil
	}

	perBody := stats.EnergyMean / float64(stats.Dynamic)
	if perBody >= bd.thresholds.SettledEnergy {
		bd.quietWindows = 0
		bd.settled = false
		return nil
	}

	bd.quietWindows++
	if bd.settled || bd.quietWindows < bd.thresholds.SettledWindows {
		return nil
	}
	bd.settled = true
	return &Bookmark{
		Type:        BookmarkSettled,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Mean kinetic energy per body %.4f over %d windows", perBody, bd.quietWindows),
	}
}
