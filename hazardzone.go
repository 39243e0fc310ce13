package main

const (
	HazardTickMs = 500.0 // damage interval while inside
)

// HazardZone is a stationary damaging field placed by a level layout:
// a radiation pocket the craft pays HP to cross. Zones never move and
// never expire on their own; the level tears them down.
type HazardZone struct {
	ID     string
	X, Y   float64
	Radius float64
	Damage int // per tick interval while inside

	sinceMs float64
}

// NewHazardZone creates a hazard field at the given position
func NewHazardZone(x, y, radius float64, damage int) *HazardZone {
	return &HazardZone{
		ID:     GenerateID(4),
		X:      x,
		Y:      y,
		Radius: radius,
		Damage: damage,
	}
}

// Tick advances the zone's damage clock and returns the damage owed to
// a craft that spent this tick inside. Zero while between intervals or
// when the craft is outside.
func (hz *HazardZone) Tick(dtMs float64, craftX, craftY, craftRadius float64) int {
	inside := CirclesOverlap(hz.X, hz.Y, hz.Radius, craftX, craftY, craftRadius)
	if !inside {
		hz.sinceMs = HazardTickMs // first touch bites immediately
		return 0
	}
	hz.sinceMs += dtMs
	if hz.sinceMs >= HazardTickMs {
		hz.sinceMs = 0
		return hz.Damage
	}
	return 0
}

// ToState converts to protocol state
func (hz *HazardZone) ToState() HazardState {
	return HazardState{
		ID:     hz.ID,
		X:      round1(hz.X),
		Y:      round1(hz.Y),
		Radius: hz.Radius,
	}
}
