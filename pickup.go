package main

import "math"

const (
	CrystalRadius    = 12.0
	CrystalValue     = 1
	CrystalTimeoutMs = 45000.0
)

// Crystal is a salvage pickup. Collecting crystals is how a level is
// cleared; every crystal banked nudges the progress ratio down and the
// encounter tempo up.
type Crystal struct {
	ID    string
	X, Y  float64
	VX, VY float64 // nonzero only while a magnet drags it
	Value int
	Life  float64 // ms
	Alive bool
}

// NewCrystal spawns a crystal at a random position away from edges
func NewCrystal() *Crystal {
	return &Crystal{
		ID:    GenerateID(4),
		X:     50 + gameRand.Float()*(ArenaWidth-100),
		Y:     50 + gameRand.Float()*(ArenaHeight-100),
		Value: CrystalValue,
		Life:  CrystalTimeoutMs,
		Alive: true,
	}
}

// NewCrystalAt spawns a crystal at a fixed position (level layouts)
func NewCrystalAt(x, y float64) *Crystal {
	c := NewCrystal()
	c.X = x
	c.Y = y
	return c
}

// Update ticks the crystal lifetime and applies magnet drift
func (c *Crystal) Update(dtMs float64) {
	if !c.Alive {
		return
	}
	dt := dtMs / 1000.0
	c.Life -= dtMs
	if c.Life <= 0 {
		c.Alive = false
		return
	}
	c.X += c.VX * dt
	c.Y += c.VY * dt
	c.VX = 0
	c.VY = 0
}

// Attract drags the crystal toward the given point for this tick
func (c *Crystal) Attract(x, y, pull float64) {
	angle := math.Atan2(y-c.Y, x-c.X)
	c.VX = math.Cos(angle) * pull
	c.VY = math.Sin(angle) * pull
}

// ToState converts to protocol state
func (c *Crystal) ToState() CrystalState {
	return CrystalState{
		ID: c.ID,
		X:  round1(c.X),
		Y:  round1(c.Y),
	}
}
