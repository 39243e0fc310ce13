package main

import "math"

// burstResolver fires a radial cone of projectiles toward the player
// at attack start. All the work happens in Begin; the spawned
// projectiles belong to the Director afterward and outlive the cycle
// on their own timers.
type burstResolver struct{}

func (r *burstResolver) Begin(e *Encounter, ctx *TickContext) {
	if ctx.SpawnProjectile == nil {
		return
	}
	n := e.Profile.BurstCount
	if n < 1 {
		n = 1
	}
	center := math.Atan2(ctx.Player.Y-e.Y, ctx.Player.X-e.X)
	for i := 0; i < n; i++ {
		frac := 0.0
		if n > 1 {
			frac = float64(i)/float64(n-1) - 0.5
		}
		angle := center + frac*e.Profile.BurstSpread
		if ctx.Rng != nil {
			angle += ctx.Rng.Range(-0.04, 0.04)
		}
		p := NewProjectile(e.ID,
			e.X+math.Cos(angle)*(e.Profile.BodyRadius+ProjectileRadius),
			e.Y+math.Sin(angle)*(e.Profile.BodyRadius+ProjectileRadius),
			angle, e.Profile.ProjectileSpeed, e.Profile.ProjectileLifeMs, e.Profile.AttackDamage)
		ctx.SpawnProjectile(p)
	}
}

func (r *burstResolver) Update(e *Encounter, ctx *TickContext) {}

func (r *burstResolver) PlayerHit(player PlayerView) bool {
	// Damage rides on the projectiles, which collide like any other
	return false
}

func (r *burstResolver) Retire(e *Encounter, ctx *TickContext) {}
