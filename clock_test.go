package main

import "testing"

func TestClockFirstDeltaIsZero(t *testing.T) {
	c := NewClock()
	if got := c.Delta(1000); got != 0 {
		t.Errorf("first delta should be 0, got %f", got)
	}
	if got := c.Delta(1016); got != 16 {
		t.Errorf("expected 16ms delta, got %f", got)
	}
}

func TestClockClampsLongStalls(t *testing.T) {
	c := NewClock()
	c.Delta(0)
	if got := c.Delta(5000); got != MaxFrameDeltaMs {
		t.Errorf("stall delta should clamp to %f, got %f", MaxFrameDeltaMs, got)
	}
	// The stall does not poison the next frame
	if got := c.Delta(5016); got != 16 {
		t.Errorf("post-stall delta should be 16, got %f", got)
	}
}

func TestClockRejectsBackwardTime(t *testing.T) {
	c := NewClock()
	c.Delta(1000)
	if got := c.Delta(900); got != 0 {
		t.Errorf("backward timestamp should give 0, got %f", got)
	}
	if got := c.Delta(916); got != 16 {
		t.Errorf("time resuming forward should give 16, got %f", got)
	}
}
