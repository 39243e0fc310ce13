package main

import (
	"testing"
)

func TestAnalyticsTrackAndFlush(t *testing.T) {
	db := openTestDB(t)
	a := NewAnalytics(db)

	a.Track(EvtRunStart, 1, "sess-a", "")
	a.Track(EvtCrystal, 1, "sess-a", "")
	a.Track(EvtCrystal, 2, "sess-a", "")
	a.Track(EvtRunEnd, 1, "sess-a", `{"levels":3,"crystals":20,"duration":240}`)

	// Stop drains and flushes the queue
	a.Stop()

	counts, err := a.EventCounts(1)
	if err != nil {
		t.Fatalf("EventCounts: %v", err)
	}
	if counts[EvtCrystal] != 2 {
		t.Errorf("expected 2 crystal events, got %d", counts[EvtCrystal])
	}
	if counts[EvtRunStart] != 1 || counts[EvtRunEnd] != 1 {
		t.Errorf("run events miscounted: %v", counts)
	}

	dau, err := a.DAUCount()
	if err != nil {
		t.Fatalf("DAUCount: %v", err)
	}
	if dau != 2 {
		t.Errorf("expected 2 distinct players today, got %d", dau)
	}

	runs, avg, err := a.RunStats(1)
	if err != nil {
		t.Fatalf("RunStats: %v", err)
	}
	if runs != 1 {
		t.Errorf("expected 1 run, got %d", runs)
	}
	if avg != 240 {
		t.Errorf("expected average duration 240, got %f", avg)
	}
}

func TestAnalyticsNilDB(t *testing.T) {
	a := NewAnalytics(nil)
	a.Track(EvtRunStart, 1, "s", "")
	a.Stop() // must not panic without a database

	if _, err := a.DAUCount(); err != nil {
		t.Errorf("nil-db DAUCount should be a no-op: %v", err)
	}
}
