package main

import "math"

const (
	MinionRadius   = 12.0
	MinionSpeed    = 220.0 // units/s
	MinionAccel    = 300.0
	MinionFriction = 0.96
	MinionTurn     = 4.0 // radians/s
	MinionLifeMs   = 20000.0
	MinionDamage   = 10
	MinionHP       = 20
)

// Minion is a pursuer released by a minion-spawn attack. Once spawned
// it belongs to the Director and updates independently; the encounter
// that released it keeps no reference. It detonates on contact with
// the player.
type Minion struct {
	ID       string
	OwnerID  string
	X, Y     float64
	VX, VY   float64
	Rotation float64
	HP       int
	LifeMs   float64
	Damage   int
	Radius   float64
	Alive    bool
}

// NewMinion creates a pursuer at the given position
func NewMinion(ownerID string, x, y, facing float64) *Minion {
	return &Minion{
		ID:       GenerateID(4),
		OwnerID:  ownerID,
		X:        x,
		Y:        y,
		Rotation: facing,
		HP:       MinionHP,
		LifeMs:   MinionLifeMs,
		Damage:   MinionDamage,
		Radius:   MinionRadius,
		Alive:    true,
	}
}

// Update steers the minion toward the player and moves it
func (m *Minion) Update(dtMs float64, playerX, playerY float64, arena Bounds) {
	if !m.Alive {
		return
	}
	dt := dtMs / 1000.0
	m.LifeMs -= dtMs
	if m.LifeMs <= 0 {
		m.Alive = false
		return
	}

	desired := math.Atan2(playerY-m.Y, playerX-m.X)
	m.Rotation = TurnToward(m.Rotation, desired, MinionTurn*dt)

	m.VX += math.Cos(m.Rotation) * MinionAccel * dt
	m.VY += math.Sin(m.Rotation) * MinionAccel * dt
	m.VX *= MinionFriction
	m.VY *= MinionFriction

	speed := math.Sqrt(m.VX*m.VX + m.VY*m.VY)
	if speed > MinionSpeed {
		scale := MinionSpeed / speed
		m.VX *= scale
		m.VY *= scale
	}

	m.X += m.VX * dt
	m.Y += m.VY * dt

	// Pursuers stay inside the arena instead of drifting out
	m.X = Clamp(m.X, arena.X, arena.X+arena.Width)
	m.Y = Clamp(m.Y, arena.Y, arena.Y+arena.Height)
}

// TakeDamage reduces HP and returns true if the minion died
func (m *Minion) TakeDamage(dmg int) bool {
	if !m.Alive {
		return false
	}
	m.HP -= dmg
	if m.HP <= 0 {
		m.HP = 0
		m.Alive = false
		return true
	}
	return false
}

// Bounds derives the minion's circular bounds
func (m *Minion) Bounds() Bounds {
	return CircleBounds(m.X, m.Y, m.Radius)
}
