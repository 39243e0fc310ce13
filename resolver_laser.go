package main

import "math"

// laserResolver sweeps a targeting line after the player for the
// first part of the attack, then locks and fires. The endpoints are
// frozen at the moment the damaging sub-phase begins, so a player who
// keeps moving after the telegraph escapes the beam.
type laserResolver struct {
	x1, y1   float64
	x2, y2   float64
	damaging bool
	active   bool
}

func (r *laserResolver) Begin(e *Encounter, ctx *TickContext) {
	r.aim(e, ctx)
	r.active = true
}

func (r *laserResolver) Update(e *Encounter, ctx *TickContext) {
	lockMs := e.Profile.LaserLockFrac * e.Profile.AttackMs
	if e.StateTimer < lockMs {
		r.aim(e, ctx)
		return
	}
	r.damaging = true
}

// aim lays the beam from the body edge through the player's current
// position, at full configured length.
func (r *laserResolver) aim(e *Encounter, ctx *TickContext) {
	angle := math.Atan2(ctx.Player.Y-e.Y, ctx.Player.X-e.X)
	r.x1 = e.X + math.Cos(angle)*e.Profile.BodyRadius
	r.y1 = e.Y + math.Sin(angle)*e.Profile.BodyRadius
	r.x2 = r.x1 + math.Cos(angle)*e.Profile.LaserLength
	r.y2 = r.y1 + math.Sin(angle)*e.Profile.LaserLength
}

// Segment reports the beam endpoints for broadcast
func (r *laserResolver) Segment() (x1, y1, x2, y2 float64) {
	return r.x1, r.y1, r.x2, r.y2
}

func (r *laserResolver) PlayerHit(player PlayerView) bool {
	if !r.active || !r.damaging {
		return false
	}
	return SegmentHitsCircle(r.x1, r.y1, r.x2, r.y2, player.X, player.Y, player.Radius)
}

// ImpactPoint reports where along the beam the hit lands
func (r *laserResolver) ImpactPoint(player PlayerView) (float64, float64) {
	t := segmentCircleEntry(r.x1, r.y1, r.x2, r.y2, player.X, player.Y, player.Radius)
	if t < 0 {
		return player.X, player.Y
	}
	return r.x1 + t*(r.x2-r.x1), r.y1 + t*(r.y2-r.y1)
}

func (r *laserResolver) Retire(e *Encounter, ctx *TickContext) {
	r.damaging = false
	r.active = false
}
