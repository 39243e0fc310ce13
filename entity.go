package main

// PlayerEntityID is the reserved index id for the player craft. Entity
// ids are random hex, so it cannot collide.
const PlayerEntityID = "player"

// EntityKind tags a hittable entity in the broad-phase snapshot
type EntityKind int

const (
	EntityPlayer EntityKind = 0
	EntityDebris EntityKind = 1
	EntityMinion EntityKind = 2
	EntityProj   EntityKind = 3
)

// Hittable is the per-frame snapshot record the Director indexes: an
// id plus a bounds copy. The Director owns no entities through it.
type Hittable struct {
	ID     string
	X, Y   float64
	Radius float64
	Kind   EntityKind
}

// Bounds derives circular bounds from the snapshot position
func (h Hittable) Bounds() Bounds {
	return CircleBounds(h.X, h.Y, h.Radius)
}

// CapturedTTLMs is how long a captured actor survives being held. An
// actor held past it is digested: destroyed instead of expelled.
const CapturedTTLMs = 4000.0

// CapturedActor is an entity a capture attack has swallowed: removed
// from normal play, held by the attack cycle that took it, and either
// expelled as a projectile or destroyed when its TTL or the cycle
// runs out. It never outlives its cycle.
type CapturedActor struct {
	ID       string
	SourceID string // the entity that was swallowed
	X, Y     float64
	HeldMs   float64
}
