package main

// MaxFrameDeltaMs caps a single frame delta. A machine waking from a
// long stall should not replay seconds of attack timers in one tick.
const MaxFrameDeltaMs = 250.0

// Clock turns caller-supplied timestamps into frame deltas. Nothing
// inside the engine reads a wall clock; every timer advances only by
// the delta this produces, which is what keeps the whole subsystem
// testable without real timers.
type Clock struct {
	lastMs  float64
	started bool
}

// NewClock creates an unstarted clock; the first Delta call returns 0
func NewClock() *Clock {
	return &Clock{}
}

// Delta returns the elapsed milliseconds since the previous call,
// clamped to [0, MaxFrameDeltaMs].
func (c *Clock) Delta(nowMs float64) float64 {
	if !c.started {
		c.started = true
		c.lastMs = nowMs
		return 0
	}
	dt := nowMs - c.lastMs
	c.lastMs = nowMs
	if dt < 0 {
		return 0
	}
	if dt > MaxFrameDeltaMs {
		return MaxFrameDeltaMs
	}
	return dt
}
