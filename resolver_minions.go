package main

import "math"

// minionResolver releases a brood of pursuers at attack start. The
// minions are handed to the Director immediately and live on their
// own lifetimes; retiring the attack does not recall them.
type minionResolver struct{}

func (r *minionResolver) Begin(e *Encounter, ctx *TickContext) {
	if ctx.SpawnMinion == nil {
		return
	}
	n := e.Profile.MinionCount
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		angle := e.Facing + (float64(i)/float64(n))*2*math.Pi
		dist := e.Profile.BodyRadius + MinionRadius + 4
		if ctx.Rng != nil {
			dist += ctx.Rng.Range(0, 12)
		}
		m := NewMinion(e.ID,
			e.X+math.Cos(angle)*dist,
			e.Y+math.Sin(angle)*dist,
			angle)
		ctx.SpawnMinion(m)
	}
}

func (r *minionResolver) Update(e *Encounter, ctx *TickContext) {}

func (r *minionResolver) PlayerHit(player PlayerView) bool {
	// The brood collides on its own; the spawn itself never hits
	return false
}

func (r *minionResolver) Retire(e *Encounter, ctx *TickContext) {}
