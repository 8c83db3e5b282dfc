package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_ContactSurge(t *testing.T) {
	bd := NewBookmarkDetector(10, DefaultBookmarkThresholds())

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 60), ContactsPerStep: 2, Dynamic: 5, EnergyMean: 10})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 300, ContactsPerStep: 6, Dynamic: 5, EnergyMean: 10})
	if !hasBookmark(bookmarks, BookmarkContactSurge) {
		t.Errorf("expected contact_surge bookmark, got %v", bookmarks)
	}
}

func TestBookmarkDetector_NoSurgeWithoutHistory(t *testing.T) {
	bd := NewBookmarkDetector(10, DefaultBookmarkThresholds())
	bd.Check(WindowStats{ContactsPerStep: 1})

	if bookmarks := bd.Check(WindowStats{ContactsPerStep: 50}); hasBookmark(bookmarks, BookmarkContactSurge) {
		t.Error("surge reported with fewer than 3 windows of history")
	}
}

func TestBookmarkDetector_EnergySpike(t *testing.T) {
	bd := NewBookmarkDetector(10, DefaultBookmarkThresholds())
	bd.Check(WindowStats{EnergyMean: 1, Collisions: 4, Dynamic: 1})

	bookmarks := bd.Check(WindowStats{EnergyMean: 3, Collisions: 4, Dynamic: 1})
	if !hasBookmark(bookmarks, BookmarkEnergySpike) {
		t.Errorf("expected energy_spike bookmark, got %v", bookmarks)
	}

	// free fall with no contacts is not a spike
	bd = NewBookmarkDetector(10, DefaultBookmarkThresholds())
	bd.Check(WindowStats{EnergyMean: 1, Dynamic: 1})
	if bookmarks := bd.Check(WindowStats{EnergyMean: 5, Dynamic: 1}); hasBookmark(bookmarks, BookmarkEnergySpike) {
		t.Error("free fall reported as an energy spike")
	}
}

func TestBookmarkDetector_DeepPenetrationOnce(t *testing.T) {
	bd := NewBookmarkDetector(10, DefaultBookmarkThresholds())

	tests := []struct {
		pen  float64
		want bool
	}{
		{0.05, false},
		{0.4, true},
		{0.5, false}, // still deep, already reported
		{0.1, false},
		{0.3, true}, // deep again after recovering
	}
	for i, tt := range tests {
		got := hasBookmark(bd.Check(WindowStats{PenetrationMax: tt.pen}), BookmarkDeepPenetration)
		if got != tt.want {
			t.Errorf("window %d (pen %v): bookmark = %v, want %v", i, tt.pen, got, tt.want)
		}
	}
}

func TestBookmarkDetector_Settled(t *testing.T) {
	bd := NewBookmarkDetector(10, BookmarkThresholds{DeepPenetration: 1, SettledEnergy: 0.05, SettledWindows: 3})

	var fired []int
	energies := []float64{5, 0.1, 0.1, 0.1, 0.1, 0.1, 3, 0.1, 0.1, 0.1}
	for i, e := range energies {
		// 0.09 over two bodies is under the per-body threshold
		if hasBookmark(bd.Check(WindowStats{WindowEndTick: int32(i), EnergyMean: e * 0.9, Dynamic: 2}), BookmarkSettled) {
			fired = append(fired, i)
		}
	}
	if len(fired) != 2 || fired[0] != 3 || fired[1] != 9 {
		t.Errorf("settled fired at windows %v, want [3 9]", fired)
	}
}
