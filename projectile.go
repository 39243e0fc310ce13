package main

import "math"

const (
	// How far past the arena edge a projectile may travel before it
	// is retired. Matches the largest sprite overhang on the client.
	projectileExitMargin = 40.0

	ProjectileRadius = 5.0
)

// Projectile is a hostile shot owned by the Director. It retires on
// lifetime expiry, on leaving the arena, or when consumed by a hit —
// independent of the phase of the encounter that spawned it.
type Projectile struct {
	ID       string
	OwnerID  string // encounter that fired it
	X, Y     float64
	VX, VY   float64
	Rotation float64
	LifeMs   float64
	Damage   int
	Radius   float64
	Alive    bool
}

// NewProjectile creates a projectile heading at the given angle
func NewProjectile(ownerID string, x, y, angle, speed, lifeMs float64, damage int) *Projectile {
	return &Projectile{
		ID:       GenerateID(3),
		OwnerID:  ownerID,
		X:        x,
		Y:        y,
		VX:       math.Cos(angle) * speed,
		VY:       math.Sin(angle) * speed,
		Rotation: angle,
		LifeMs:   lifeMs,
		Damage:   damage,
		Radius:   ProjectileRadius,
		Alive:    true,
	}
}

// Update advances the projectile by dtMs. No wrapping: a shot that
// leaves the arena is gone.
func (p *Projectile) Update(dtMs float64, arena Bounds) {
	if !p.Alive {
		return
	}
	dt := dtMs / 1000.0
	p.X += p.VX * dt
	p.Y += p.VY * dt
	p.LifeMs -= dtMs

	if p.LifeMs <= 0 {
		p.Alive = false
		return
	}
	exit := RectBounds(arena.X-projectileExitMargin, arena.Y-projectileExitMargin,
		arena.Width+2*projectileExitMargin, arena.Height+2*projectileExitMargin)
	if !exit.ContainsPoint(p.X, p.Y) {
		p.Alive = false
	}
}

// Bounds derives the projectile's circular bounds
func (p *Projectile) Bounds() Bounds {
	return CircleBounds(p.X, p.Y, p.Radius)
}
