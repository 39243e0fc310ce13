package main

import "math"

const (
	CraftRadius   = 16.0
	CraftMaxHP    = 100
	CraftAccel    = 600.0 // units/s²
	CraftMaxSpeed = 340.0 // units/s
	CraftFriction = 0.97  // velocity multiplier per tick
	CraftBoostMul = 1.5
	CraftTurn     = 8.0 // radians/s max turn rate

	RespawnMs       = 3000.0
	SpawnProtectMs  = 2000.0 // invulnerability after spawn
	HitInvulnMs     = 800.0  // grace window after surviving a hit
	ArenaWidth      = 2400.0
	ArenaHeight     = 1600.0
)

// Craft is one player's salvage craft. Movement follows the pointer:
// the craft turns toward the target rotation and throttles down as the
// pointer nears the hull, so hovering over the craft parks it.
type Craft struct {
	ID       string
	Name     string
	X, Y     float64
	VX, VY   float64
	Rotation float64
	HP       int
	MaxHP    int
	Class    CraftClass
	Crystals int // collected this run
	Score    int
	Alive    bool
	Deaths   int

	AuthPlayerID int64 // 0 = guest

	RespawnT   float64 // ms until respawn
	InvulnMs   float64 // spawn protection remaining
	TargetR    float64
	TargetX    float64
	TargetY    float64
	SlowThresh float64
	Boosting   bool
}

// NewCraft creates a craft at a random arena position
func NewCraft(id, name string, class CraftClass) *Craft {
	def := GetClassDef(class)
	c := &Craft{
		ID:    id,
		Name:  name,
		HP:    def.MaxHP,
		MaxHP: def.MaxHP,
		Class: class,
		Alive: true,
	}
	c.placeRandom()
	c.InvulnMs = SpawnProtectMs
	return c
}

func (c *Craft) placeRandom() {
	c.X = ArenaWidth/4 + gameRand.Float()*ArenaWidth/2
	c.Y = ArenaHeight/4 + gameRand.Float()*ArenaHeight/2
}

// Update moves the craft one tick
func (c *Craft) Update(dtMs float64) {
	if !c.Alive {
		c.RespawnT -= dtMs
		if c.RespawnT <= 0 {
			c.Respawn()
		}
		return
	}
	dt := dtMs / 1000.0
	def := GetClassDef(c.Class)

	if c.InvulnMs > 0 {
		c.InvulnMs -= dtMs
		if c.InvulnMs < 0 {
			c.InvulnMs = 0
		}
	}

	c.Rotation = TurnToward(c.Rotation, c.TargetR, def.TurnSpeed*dt)

	accel := def.Accel * dt
	if c.Boosting {
		accel *= def.BoostMul
	}

	// Throttle down as the pointer approaches the craft
	dist := Distance(c.TargetX, c.TargetY, c.X, c.Y)
	thresh := c.SlowThresh
	if thresh < 20 {
		thresh = 20
	}
	const deadZone = 50.0
	speedFactor := 1.0
	if dist <= deadZone {
		accel = 0
		speedFactor = 0
	} else if dist < thresh {
		speedFactor = (dist - deadZone) / (thresh - deadZone)
		accel *= speedFactor
	}

	c.VX += math.Cos(c.Rotation) * accel
	c.VY += math.Sin(c.Rotation) * accel

	// Brake harder when the pointer sits near the craft so it parks
	friction := def.Friction
	if speedFactor < 1.0 {
		friction = 0.95 + speedFactor*(def.Friction-0.95)
	}
	c.VX *= friction
	c.VY *= friction

	maxSpd := def.MaxSpeed
	if c.Boosting {
		maxSpd *= def.BoostMul
	}
	speed := math.Sqrt(c.VX*c.VX + c.VY*c.VY)
	if speed > maxSpd {
		scale := maxSpd / speed
		c.VX *= scale
		c.VY *= scale
	}

	c.X += c.VX * dt
	c.Y += c.VY * dt

	// The arena has walls, not wraparound: encounters herd the craft
	// against them on purpose.
	c.X = Clamp(c.X, 0, ArenaWidth)
	c.Y = Clamp(c.Y, 0, ArenaHeight)
}

// Respawn resets the craft after destruction
func (c *Craft) Respawn() {
	c.placeRandom()
	c.VX = 0
	c.VY = 0
	c.HP = c.MaxHP
	c.Alive = true
	c.RespawnT = 0
	c.InvulnMs = SpawnProtectMs
}

// TakeDamage reduces HP and returns true if the craft was destroyed.
// Spawn protection makes it a no-op. Surviving a hit grants a short
// grace window so a boss body parked on the craft chips at it instead
// of shredding it every tick.
func (c *Craft) TakeDamage(dmg int) bool {
	if !c.Alive || c.InvulnMs > 0 {
		return false
	}
	c.HP -= dmg
	if c.HP <= 0 {
		c.HP = 0
		c.Alive = false
		c.RespawnT = RespawnMs
		return true
	}
	c.InvulnMs = HitInvulnMs
	return false
}

// Invulnerable reports whether the craft currently ignores damage
func (c *Craft) Invulnerable() bool {
	return c.InvulnMs > 0
}

// View is the read-only slice of craft state the encounter engine sees
func (c *Craft) View() PlayerView {
	return PlayerView{
		X:            c.X,
		Y:            c.Y,
		Radius:       GetClassDef(c.Class).Radius,
		Invulnerable: !c.Alive || c.Invulnerable(),
	}
}

// ToState converts to protocol state
func (c *Craft) ToState() CraftState {
	return CraftState{
		ID:       c.ID,
		Name:     c.Name,
		X:        c.X,
		Y:        c.Y,
		R:        c.Rotation,
		VX:       c.VX,
		VY:       c.VY,
		HP:       c.HP,
		MaxHP:    c.MaxHP,
		Class:    int(c.Class),
		Crystals: c.Crystals,
		Score:    c.Score,
		Alive:    c.Alive,
		Shielded: c.InvulnMs > 0,
	}
}

// gameRand is the shared non-deterministic source for spawn placement.
// Engine code takes an explicit *Rand instead; this one is only for
// cosmetic placement where determinism buys nothing.
var gameRand = NewRand(NewRandomSeed())
