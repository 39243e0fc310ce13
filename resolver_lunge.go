package main

import "math"

// lungePeakFrac is where in the attack the strike limb reaches full
// extension. The sinusoidal profile below rises to its peak here and
// holds it for the remainder of the attack.
const lungePeakFrac = 0.7

// lungeResolver extends a strike limb from the encounter's body
// toward the player's position at attack start. The hit test uses the
// current extended tip, not the body origin: the limb reaches well
// outside the body bounds and testing the body alone would produce
// false misses.
type lungeResolver struct {
	dirX, dirY float64
	tipX, tipY float64
	hitRadius  float64
	active     bool
}

func (r *lungeResolver) Begin(e *Encounter, ctx *TickContext) {
	d := Vec2{ctx.Player.X - e.X, ctx.Player.Y - e.Y}.Norm()
	if d.X == 0 && d.Y == 0 {
		d = Vec2{math.Cos(e.Facing), math.Sin(e.Facing)}
	}
	r.dirX, r.dirY = d.X, d.Y
	r.tipX, r.tipY = e.X, e.Y
	r.hitRadius = e.Profile.Range
	r.active = true
}

func (r *lungeResolver) Update(e *Encounter, ctx *TickContext) {
	frac := 1.0
	if e.Profile.AttackMs > 0 {
		frac = Clamp(e.StateTimer/e.Profile.AttackMs, 0, 1)
	}
	ext := e.Profile.Extension * extensionProfile(frac)
	r.tipX = e.X + r.dirX*ext
	r.tipY = e.Y + r.dirY*ext
}

// extensionProfile maps attack progress to limb extension in [0,1]:
// sinusoidal rise peaking at lungePeakFrac, then held.
func extensionProfile(frac float64) float64 {
	u := frac / lungePeakFrac
	if u > 1 {
		u = 1
	}
	return math.Sin(u * math.Pi / 2)
}

func (r *lungeResolver) PlayerHit(player PlayerView) bool {
	if !r.active {
		return false
	}
	return CirclesOverlap(r.tipX, r.tipY, r.hitRadius, player.X, player.Y, player.Radius)
}

func (r *lungeResolver) Retire(e *Encounter, ctx *TickContext) {
	// The limb retracts during cooldown; it stops being a hit source
	// the moment the attack ends.
	r.active = false
}
