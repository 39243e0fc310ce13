package main

import "fmt"

// PlayerView is the read-only slice of player state the engine sees
// each tick: geometry plus the invulnerability flag the movement
// system maintains.
type PlayerView struct {
	X, Y         float64
	Radius       float64
	Invulnerable bool
}

// TickContext is assembled by the Director once per tick and passed
// into every encounter and resolver. Resolvers act on the world only
// through its sinks, never by reaching into another subsystem's
// lists.
type TickContext struct {
	DtMs          float64
	Player        PlayerView
	ProgressRatio float64 // clamped to [0,1] before the context is built
	Arena         Bounds
	Rng           *Rand
	Fx            func(FxEvent)

	// Sinks back into the Director
	SpawnProjectile func(p *Projectile)
	SpawnMinion     func(m *Minion)
	// Capture removes a hittable entity from normal play for the
	// current attack cycle. Returns false (a logged no-op) when the
	// id no longer refers to a live entity.
	Capture func(id string) (Hittable, bool)
	// NearbyHittables scans the tick's entity snapshot; it is not the
	// spatial index, which is only rebuilt after encounter updates.
	NearbyHittables func(b Bounds) []Hittable
}

// AttackResolver is the per-kind attack behavior. The state machine
// calls Begin exactly once on entry to Attacking, Update every tick
// while Attacking, and Retire exactly once on exit (or on forced
// reset). PlayerHit is consulted by the Director during collision
// resolution and must be false outside an active damage window.
//
// A resolver instance lives for one attack cycle. Nothing it created
// is evaluated after Retire, which is what rules out stale-hit bugs
// across cycles.
type AttackResolver interface {
	Begin(e *Encounter, ctx *TickContext)
	Update(e *Encounter, ctx *TickContext)
	PlayerHit(player PlayerView) bool
	Retire(e *Encounter, ctx *TickContext)
}

// impactReporter is implemented by resolvers whose hit has a natural
// impact point away from the player's center, like the laser beam.
type impactReporter interface {
	ImpactPoint(player PlayerView) (float64, float64)
}

// newResolver builds a fresh resolver for the drawn kind. A fresh
// instance per cycle keeps per-cycle state (captured sets, locked
// laser endpoints) from leaking between attacks.
func newResolver(kind AttackKind) (AttackResolver, error) {
	switch kind {
	case KindLunge:
		return &lungeResolver{}, nil
	case KindCapture:
		return &captureResolver{}, nil
	case KindBurst:
		return &burstResolver{}, nil
	case KindLaser:
		return &laserResolver{}, nil
	case KindMinions:
		return &minionResolver{}, nil
	}
	return nil, fmt.Errorf("no resolver for attack kind %d", kind)
}
