package main

import "math"

const (
	DebrisRadius   = 40.0
	DebrisMinSpeed = 50.0
	DebrisMaxSpeed = 130.0
	DebrisSpinMin  = 0.5
	DebrisSpinMax  = 2.0
	DebrisDamage   = 15
)

// Debris is a drifting wreck chunk. It damages the craft on contact,
// and capture attacks can swallow it and spit it back as a shot.
type Debris struct {
	ID       string
	X, Y     float64
	VX, VY   float64
	Rotation float64
	Spin     float64
	Alive    bool
}

// NewDebris spawns a wreck chunk at a random arena edge heading inward
func NewDebris() *Debris {
	d := &Debris{
		ID:    GenerateID(4),
		Alive: true,
	}

	speed := DebrisMinSpeed + gameRand.Float()*(DebrisMaxSpeed-DebrisMinSpeed)
	d.Spin = DebrisSpinMin + gameRand.Float()*(DebrisSpinMax-DebrisSpinMin)
	if gameRand.Float() < 0.5 {
		d.Spin = -d.Spin
	}

	// Pick a random edge and aim at a point in the opposite half
	edge := int(gameRand.Float() * 4)
	var targetX, targetY float64
	switch edge {
	case 0: // left
		d.X = -DebrisRadius
		d.Y = gameRand.Float() * ArenaHeight
		targetX = ArenaWidth/2 + gameRand.Float()*ArenaWidth/2
		targetY = gameRand.Float() * ArenaHeight
	case 1: // right
		d.X = ArenaWidth + DebrisRadius
		d.Y = gameRand.Float() * ArenaHeight
		targetX = gameRand.Float() * ArenaWidth / 2
		targetY = gameRand.Float() * ArenaHeight
	case 2: // top
		d.X = gameRand.Float() * ArenaWidth
		d.Y = -DebrisRadius
		targetX = gameRand.Float() * ArenaWidth
		targetY = ArenaHeight/2 + gameRand.Float()*ArenaHeight/2
	default: // bottom
		d.X = gameRand.Float() * ArenaWidth
		d.Y = ArenaHeight + DebrisRadius
		targetX = gameRand.Float() * ArenaWidth
		targetY = gameRand.Float() * ArenaHeight / 2
	}
	angle := math.Atan2(targetY-d.Y, targetX-d.X)
	d.VX = math.Cos(angle) * speed
	d.VY = math.Sin(angle) * speed
	d.Rotation = gameRand.Float() * math.Pi * 2
	return d
}

// Update moves the debris and retires it once fully off-arena
func (d *Debris) Update(dtMs float64) {
	if !d.Alive {
		return
	}
	dt := dtMs / 1000.0
	d.X += d.VX * dt
	d.Y += d.VY * dt
	d.Rotation += d.Spin * dt

	margin := DebrisRadius * 2
	if d.X < -margin || d.X > ArenaWidth+margin ||
		d.Y < -margin || d.Y > ArenaHeight+margin {
		d.Alive = false
	}
}

// Hittable returns the broad-phase snapshot record for this chunk
func (d *Debris) Hittable() Hittable {
	return Hittable{ID: d.ID, X: d.X, Y: d.Y, Radius: DebrisRadius, Kind: EntityDebris}
}

// ToState converts to protocol state
func (d *Debris) ToState() DebrisState {
	return DebrisState{
		ID: d.ID,
		X:  round1(d.X),
		Y:  round1(d.Y),
		R:  math.Round(d.Rotation*100) / 100,
	}
}
